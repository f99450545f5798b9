package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"restockd/models"
)

// PostgresStore keeps the log in a prediction_history table, one row per
// entry with the prediction held as jsonb.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates the store and ensures its table exists.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	query := `
        CREATE TABLE IF NOT EXISTS prediction_history (
            id BIGSERIAL PRIMARY KEY,
            recorded_at TIMESTAMPTZ NOT NULL,
            prediction JSONB NOT NULL,
            actual_quantity INT,
            actual_tier TEXT
        )
    `
	if _, err := pool.Exec(ctx, query); err != nil {
		return nil, fmt.Errorf("ensure prediction_history table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Append(entry models.HistoryEntry) error {
	prediction, err := json.Marshal(entry.Prediction)
	if err != nil {
		return fmt.Errorf("encode prediction: %w", err)
	}

	query := `
        INSERT INTO prediction_history (recorded_at, prediction, actual_quantity, actual_tier)
        VALUES ($1, $2, $3, $4)
    `
	_, err = s.pool.Exec(context.Background(), query,
		entry.Timestamp, prediction, entry.ActualQuantity, entry.ActualTier)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) All() ([]models.HistoryEntry, error) {
	query := `
        SELECT recorded_at, prediction, actual_quantity, actual_tier
        FROM prediction_history
        ORDER BY recorded_at ASC
    `
	rows, err := s.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	entries := []models.HistoryEntry{}
	for rows.Next() {
		var entry models.HistoryEntry
		var prediction []byte
		if err := rows.Scan(&entry.Timestamp, &prediction, &entry.ActualQuantity, &entry.ActualTier); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		if err := json.Unmarshal(prediction, &entry.Prediction); err != nil {
			return nil, fmt.Errorf("decode prediction: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
