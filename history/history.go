// Package history persists the append-only prediction log. Two backends
// exist: a JSON file for single-node deployments and Postgres when a
// DATABASE_URL is configured.
package history

import "restockd/models"

// Store is the append-only prediction log.
type Store interface {
	Append(entry models.HistoryEntry) error
	All() ([]models.HistoryEntry, error)
}
