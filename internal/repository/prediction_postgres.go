package repository

import (
	"context"
	"database/sql"
	"fmt"

	"carprice/internal/entity"
	"github.com/lib/pq"
)

type PostgresPredictionRepository struct {
	db *sql.DB
}

func NewPostgresPredictionRepository(db *sql.DB) *PostgresPredictionRepository {
	return &PostgresPredictionRepository{db: db}
}

func (r *PostgresPredictionRepository) Save(ctx context.Context, p entity.Prediction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO predictions
		(id, username, fuel_type, ownership, transmission, manufacture_year,
		 kilometers_driven, mileage, engine_capacity, features, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, p.ID, p.Username, p.Car.FuelType, p.Car.Ownership, p.Car.Transmission, p.Car.ManufactureYear,
		p.Car.KilometersDriven, p.Car.Mileage, p.Car.EngineCapacity, pq.Array(p.Features.Slice()), p.Price, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert prediction: %w", err)
	}
	return nil
}

func (r *PostgresPredictionRepository) ListByUser(ctx context.Context, username string, limit int) ([]entity.Prediction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, fuel_type, ownership, transmission, manufacture_year,
		       kilometers_driven, mileage, engine_capacity, features, price, created_at
		FROM predictions
		WHERE username = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, username, limit)
	if err != nil {
		return nil, fmt.Errorf("query predictions: %w", err)
	}
	defer rows.Close()

	out := []entity.Prediction{}
	for rows.Next() {
		var (
			p        entity.Prediction
			features []float64
		)
		if err := rows.Scan(
			&p.ID,
			&p.Username,
			&p.Car.FuelType,
			&p.Car.Ownership,
			&p.Car.Transmission,
			&p.Car.ManufactureYear,
			&p.Car.KilometersDriven,
			&p.Car.Mileage,
			&p.Car.EngineCapacity,
			pq.Array(&features),
			&p.Price,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan prediction: %w", err)
		}
		copy(p.Features[:], features)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate predictions: %w", err)
	}
	return out, nil
}
