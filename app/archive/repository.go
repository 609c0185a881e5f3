package archive

import (
	"fmt"
	"time"

	"github.com/presswatch/presswatch/app/digest"
	"github.com/presswatch/presswatch/app/roster"
)

// Repository handles archive database operations for digest runs.
type Repository struct {
	db *DB
}

func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// StoreRun writes one completed run and its items in a single transaction.
// Items are stored in roster order, matching the rendered output.
func (r *Repository) StoreRun(d *digest.Digest, entities []roster.Entity, lookbackHours float64, recordCount int) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO digest_runs (generated_at, lookback_hours, record_count, item_count)
		VALUES (?, ?, ?, ?)
	`, d.GeneratedAt.Format(time.RFC3339), lookbackHours, recordCount, d.TotalItems())
	if err != nil {
		return 0, fmt.Errorf("failed to store run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	for _, entity := range entities {
		for _, item := range d.ItemsByClient[entity.Name] {
			_, err := tx.Exec(`
				INSERT INTO digest_items (run_id, client, title, url, url_hash, source, published_at, sentiment)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, runID, item.Client, item.Title, item.URL, digest.HashURL(item.URL),
				item.Source, item.PublishedAt.Format(time.RFC3339), item.Sentiment)
			if err != nil {
				return 0, fmt.Errorf("failed to store item: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

// GetRunItemCount returns the number of archived items for a run.
func (r *Repository) GetRunItemCount(runID int64) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM digest_items WHERE run_id = ?", runID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get item count: %w", err)
	}
	return count, nil
}

// GetRunCount returns the total number of archived runs.
func (r *Repository) GetRunCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM digest_runs").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get run count: %w", err)
	}
	return count, nil
}
