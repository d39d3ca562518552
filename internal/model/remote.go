package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Remote calls an inference service that hosts the regressor.
//
//	POST {"rows": [[...], ...]}  ->  {"predictions": [...]}
type Remote struct {
	url        string
	httpClient *http.Client
}

type remoteRequest struct {
	Rows [][]float64 `json:"rows"`
}

type remoteResponse struct {
	Predictions []float64 `json:"predictions"`
}

func NewRemote(url string, timeout time.Duration) *Remote {
	return &Remote{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (r *Remote) Predict(ctx context.Context, rows [][]float64) ([]float64, error) {
	body, err := json.Marshal(remoteRequest{Rows: rows})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call inference service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("inference service returned %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var out remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(out.Predictions) != len(rows) {
		return nil, fmt.Errorf("inference service returned %d predictions for %d rows", len(out.Predictions), len(rows))
	}
	return out.Predictions, nil
}
