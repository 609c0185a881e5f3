// Package archive persists completed digest runs to SQLite. The archive is
// write-only for the pipeline: nothing here feeds back into classification,
// so each run still starts with no cross-run memory.
package archive

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
}

func NewConnection(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to archive database: %w", err)
	}

	return &DB{db}, nil
}
