package service

import (
	"context"
	"fmt"
	"time"

	"carprice/internal/common"
	"carprice/internal/entity"
	"carprice/internal/logging"
	"carprice/internal/model"
	"carprice/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PredictorSource hands out the loaded price model.
type PredictorSource interface {
	Get(ctx context.Context) (model.Predictor, error)
}

// Estimate is the result shown to the user.
type Estimate struct {
	Price     float64              `json:"price"`
	Formatted string               `json:"formatted"`
	Features  entity.FeatureVector `json:"features"`
}

type Estimator struct {
	models  PredictorSource
	history repository.PredictionRepository
	logger  logging.Logger
	now     func() time.Time
}

func NewEstimator(models PredictorSource, history repository.PredictionRepository, logger logging.Logger) *Estimator {
	return &Estimator{
		models:  models,
		history: history,
		logger:  logger,
		now:     time.Now,
	}
}

// Ready loads the model if it is not loaded yet.
func (e *Estimator) Ready(ctx context.Context) error {
	if _, err := e.models.Get(ctx); err != nil {
		return fmt.Errorf("%w: %v", common.ErrModel, err)
	}
	return nil
}

// Estimate encodes form, runs a single-row prediction and records the
// result for username. Any model failure wraps common.ErrModel.
func (e *Estimator) Estimate(ctx context.Context, username string, form entity.CarForm) (Estimate, error) {
	features := form.Features()

	p, err := e.models.Get(ctx)
	if err != nil {
		return Estimate{}, fmt.Errorf("%w: load model: %v", common.ErrModel, err)
	}

	out, err := p.Predict(ctx, [][]float64{features.Slice()})
	if err != nil {
		return Estimate{}, fmt.Errorf("%w: predict: %v", common.ErrModel, err)
	}
	if len(out) == 0 {
		return Estimate{}, fmt.Errorf("%w: model returned no output", common.ErrModel)
	}

	est := Estimate{
		Price:     out[0],
		Formatted: FormatPrice(out[0]),
		Features:  features,
	}

	rec := entity.Prediction{
		ID:        uuid.NewString(),
		Username:  username,
		Car:       form,
		Features:  features,
		Price:     est.Price,
		CreatedAt: e.now(),
	}
	if err := e.history.Save(ctx, rec); err != nil {
		e.logger.Error(ctx, "record prediction", "user", username, "error", err)
	}

	e.logger.Info(ctx, "estimate", "user", username, "price", est.Price)
	return est, nil
}

func (e *Estimator) History(ctx context.Context, username string, limit int) ([]entity.Prediction, error) {
	if limit <= 0 {
		return []entity.Prediction{}, nil
	}
	return e.history.ListByUser(ctx, username, limit)
}

// FormatPrice renders a model output in lakhs, e.g. "₹1,234.56 Lakhs".
func FormatPrice(price float64) string {
	return message.NewPrinter(language.English).Sprintf("₹%.2f Lakhs", price)
}
