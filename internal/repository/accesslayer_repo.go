package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-access-admin/internal/model"
)

type AccessLayerRepository struct {
	pool *pgxpool.Pool
}

func NewAccessLayerRepository(pool *pgxpool.Pool) *AccessLayerRepository {
	return &AccessLayerRepository{pool: pool}
}

func (r *AccessLayerRepository) FindByID(ctx context.Context, id int) (model.AccessLayer, error) {
	var layer model.AccessLayer
	err := r.pool.QueryRow(ctx,
		`SELECT id, name FROM access_layers WHERE id = $1`, id).
		Scan(&layer.ID, &layer.Name)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.AccessLayer{}, model.ErrAccessLayerNotFound
	}
	if err != nil {
		return model.AccessLayer{}, fmt.Errorf("find access layer: %w", err)
	}
	return layer, nil
}

func (r *AccessLayerRepository) List(ctx context.Context) ([]model.AccessLayer, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM access_layers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list access layers: %w", err)
	}
	defer rows.Close()

	layers := make([]model.AccessLayer, 0)
	for rows.Next() {
		var layer model.AccessLayer
		if err := rows.Scan(&layer.ID, &layer.Name); err != nil {
			return nil, fmt.Errorf("scan access layer: %w", err)
		}
		layers = append(layers, layer)
	}
	return layers, rows.Err()
}
