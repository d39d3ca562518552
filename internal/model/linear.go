package model

import (
	"context"
	"errors"
	"fmt"
)

// Linear is an ordinary least squares regressor: y = b + sum(w_i * x_i).
type Linear struct {
	Intercept    float64
	Coefficients []float64
}

func (l *Linear) validate(featureCount int) error {
	if len(l.Coefficients) == 0 {
		return errors.New("linear model has no coefficients")
	}
	if featureCount != 0 && featureCount != len(l.Coefficients) {
		return fmt.Errorf("feature_count %d does not match %d coefficients", featureCount, len(l.Coefficients))
	}
	return nil
}

func (l *Linear) Predict(ctx context.Context, rows [][]float64) ([]float64, error) {
	if err := checkRows(rows, len(l.Coefficients)); err != nil {
		return nil, err
	}

	out := make([]float64, len(rows))
	for i, row := range rows {
		y := l.Intercept
		for j, x := range row {
			y += l.Coefficients[j] * x
		}
		out[i] = y
	}
	return out, nil
}
