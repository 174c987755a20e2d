package db

import (
	"context"

	"pickmycollege/internal/models"
)

// IncrementCounter upserts an analytics counter by the given delta.
func (d *DB) IncrementCounter(ctx context.Context, name string, delta int64) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO analytics_counters (name, count, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE
		SET count = analytics_counters.count + EXCLUDED.count, updated_at = NOW()
	`, name, delta)
	return err
}

// GetAllCounters returns all analytics counter rows for metrics export.
func (d *DB) GetAllCounters(ctx context.Context) ([]models.Counter, error) {
	rows, err := d.Pool.Query(ctx, `SELECT name, count, updated_at FROM analytics_counters`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counters []models.Counter
	for rows.Next() {
		var c models.Counter
		if err := rows.Scan(&c.Name, &c.Count, &c.UpdatedAt); err != nil {
			return nil, err
		}
		counters = append(counters, c)
	}
	return counters, rows.Err()
}
