package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"pickmycollege/internal/models"
)

// keyStateID is the single row holding the primary provider's rotation state.
const keyStateID = "perplexity_state"

// GetKeyState loads the persisted key rotation state. Returns (nil, nil)
// when no state has been saved yet.
func (d *DB) GetKeyState(ctx context.Context) (*models.KeyState, error) {
	var st models.KeyState
	err := d.Pool.QueryRow(ctx, `
		SELECT exhausted_keys, current_key_index, updated_at
		FROM api_key_state
		WHERE id = $1
	`, keyStateID).Scan(&st.ExhaustedKeys, &st.CurrentKeyIndex, &st.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// SaveKeyState upserts the key rotation state in a single round trip.
// Concurrent writers race benignly: the worst case is a redundant rotation
// step, corrected by the lazy index update on the next CurrentKey call.
func (d *DB) SaveKeyState(ctx context.Context, st *models.KeyState) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO api_key_state (id, exhausted_keys, current_key_index, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE
		SET exhausted_keys = EXCLUDED.exhausted_keys,
			current_key_index = EXCLUDED.current_key_index,
			updated_at = NOW()
	`, keyStateID, st.ExhaustedKeys, st.CurrentKeyIndex)
	return err
}
