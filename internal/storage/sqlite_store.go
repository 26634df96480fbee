package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Alpharn/questionnaire/internal/models"
	"github.com/Alpharn/questionnaire/internal/utils"
	"github.com/Alpharn/questionnaire/pkg"
)

// SQLiteStore keeps the collection as a single serialized document in a
// key-value table, one row per storage key.
type SQLiteStore struct {
	db     *sql.DB
	key    string
	logger utils.Logger
}

// NewSQLiteStore opens (or creates) the database file and initializes the
// key-value table.
func NewSQLiteStore(path, key string, logger utils.Logger) (*SQLiteStore, error) {
	if key == "" {
		key = DefaultKey
	}

	db, err := pkg.OpenSQLite(path)
	if err != nil {
		return nil, err
	}

	if err = createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{
		db:     db,
		key:    key,
		logger: logger.With("store", "sqlite", "path", path),
	}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS local_store (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// Load reads the collection stored under the configured key. A missing row or
// a corrupt document loads as an empty collection.
func (s *SQLiteStore) Load(ctx context.Context) ([]models.Question, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM local_store WHERE key = ?", s.key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return []models.Question{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stored collection: %w", err)
	}
	return decodeCollection([]byte(value), s.logger), nil
}

// Save overwrites the document under the configured key.
func (s *SQLiteStore) Save(ctx context.Context, questions []models.Question) error {
	document, err := encodeCollection(questions)
	if err != nil {
		return fmt.Errorf("failed to encode collection: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO local_store (key, value) VALUES (?, ?)",
		s.key, string(document),
	)
	if err != nil {
		return fmt.Errorf("failed to write stored collection: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
