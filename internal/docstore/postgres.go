package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"club-signup/internal/common/config"
	apperrors "club-signup/internal/common/errors"
	"club-signup/internal/models"
)

const (
	uniqueViolation = pq.ErrorCode("23505")

	createDocumentsTable = `
		CREATE TABLE IF NOT EXISTS documents (
			collection TEXT        NOT NULL,
			id         TEXT        NOT NULL,
			body       JSONB       NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (collection, id)
		)`

	insertDocument = `
		INSERT INTO documents (collection, id, body, created_at)
		VALUES ($1, $2, $3, $4)`
)

// PostgresStore keeps documents as JSONB rows keyed by (collection, id).
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgres opens a connection pool from config.
func OpenPostgres(cfg config.PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}

// Migrate creates the documents table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createDocumentsTable); err != nil {
		return fmt.Errorf("create documents table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, collection, id string, app models.Application) error {
	body, err := json.Marshal(app)
	if err != nil {
		return apperrors.NewDocumentWriteFailedError(collection, id, err)
	}

	_, err = s.db.ExecContext(ctx, insertDocument, collection, id, string(body), time.Now().UTC())
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return apperrors.NewDocumentExistsError(collection, id)
		}
		return writeError(ctx, collection, id, err)
	}
	return nil
}

// Ping tests the database connection
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
