// Package model wraps the pre-trained price regressor. The model itself is
// opaque: callers only see Predictor.
package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"carprice/internal/common"
)

// Predictor maps a batch of feature rows to one scalar per row.
type Predictor interface {
	Predict(ctx context.Context, rows [][]float64) ([]float64, error)
}

const (
	KindLinear = "linear"
	KindForest = "forest"
)

// artifact is the on-disk export of a trained regressor.
type artifact struct {
	Kind         string    `json:"kind"`
	Version      string    `json:"version"`
	FeatureCount int       `json:"feature_count"`
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
	Trees        []Tree    `json:"trees"`
}

// LoadFile reads a JSON model artifact. Every failure wraps common.ErrModel.
func LoadFile(path string) (Predictor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read artifact: %v", common.ErrModel, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func Parse(data []byte) (Predictor, error) {
	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: decode artifact: %v", common.ErrModel, err)
	}

	switch a.Kind {
	case KindLinear:
		l := &Linear{Intercept: a.Intercept, Coefficients: a.Coefficients}
		if err := l.validate(a.FeatureCount); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrModel, err)
		}
		return l, nil
	case KindForest:
		f := &Forest{Trees: a.Trees, NumFeatures: a.FeatureCount}
		if err := f.validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrModel, err)
		}
		return f, nil
	case "":
		return nil, fmt.Errorf("%w: artifact has no kind", common.ErrModel)
	default:
		return nil, fmt.Errorf("%w: unsupported artifact kind %q", common.ErrModel, a.Kind)
	}
}

var errRowWidth = errors.New("row width does not match model")

func checkRows(rows [][]float64, width int) error {
	for i, r := range rows {
		if len(r) != width {
			return fmt.Errorf("%w: row %d has %d features, want %d", errRowWidth, i, len(r), width)
		}
	}
	return nil
}
