package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mindcoach/internal/database"
	"mindcoach/internal/state"
)

// StateRepository stores one versioned app state record per user
type StateRepository struct {
	db database.DBTX
}

// NewStateRepository creates a new state repository
func NewStateRepository(db database.DBTX) *StateRepository {
	return &StateRepository{db: db}
}

// WithTx returns a repository that runs its statements inside tx
func (r *StateRepository) WithTx(tx *database.Tx) *StateRepository {
	return &StateRepository{db: tx}
}

// Load retrieves a user's state. It returns nil, nil when the user has no record.
func (r *StateRepository) Load(ctx context.Context, userID string) (*state.AppState, error) {
	var data string
	err := r.db.QueryRowContext(ctx, "SELECT data FROM app_states WHERE user_id = ?", userID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load state for %s: %w", userID, err)
	}

	s, err := state.Unmarshal([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("failed to load state for %s: %w", userID, err)
	}
	return &s, nil
}

// Exists reports whether a record exists for the user
func (r *StateRepository) Exists(ctx context.Context, userID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM app_states WHERE user_id = ?", userID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check state for %s: %w", userID, err)
	}
	return count > 0, nil
}

// Save inserts or replaces a user's state
func (r *StateRepository) Save(ctx context.Context, userID string, s state.AppState) error {
	data, err := state.Marshal(s)
	if err != nil {
		return err
	}

	query := r.db.GetDialect().UpsertStateQuery()
	if _, err := r.db.ExecContext(ctx, query, userID, state.StorageKey, state.SchemaVersion, string(data)); err != nil {
		return fmt.Errorf("failed to save state for %s: %w", userID, err)
	}
	return nil
}

// Delete removes a user's record
func (r *StateRepository) Delete(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM app_states WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("failed to delete state for %s: %w", userID, err)
	}
	return nil
}

// ListUserIDs returns every user with a stored record, ordered by id
func (r *StateRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT user_id FROM app_states ORDER BY user_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Count returns the number of stored records
func (r *StateRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM app_states").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count states: %w", err)
	}
	return count, nil
}

// DeleteAll removes every record and returns how many were removed
func (r *StateRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM app_states")
	if err != nil {
		return 0, fmt.Errorf("failed to clear states: %w", err)
	}
	return result.RowsAffected()
}
