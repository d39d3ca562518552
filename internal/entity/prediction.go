package entity

import "time"

// Prediction is one recorded estimate.
type Prediction struct {
	ID        string        `json:"id"`
	Username  string        `json:"username"`
	Car       CarForm       `json:"car"`
	Features  FeatureVector `json:"features"`
	Price     float64       `json:"price"`
	CreatedAt time.Time     `json:"created_at"`
}
