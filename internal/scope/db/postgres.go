package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// moviesSchema keeps each movie document as JSONB keyed by its hex id
const moviesSchema = `
CREATE TABLE IF NOT EXISTS movies (
	id  TEXT PRIMARY KEY CHECK (id ~ '^[0-9a-f]{24}$'),
	doc JSONB NOT NULL
)`

// PostgresStore reads movies from a JSONB table
type PostgresStore struct {
	db *DB
}

// NewPostgresStore creates a store over an open connection pool
func NewPostgresStore(db *DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the movies table if it does not exist
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.Pool().Exec(ctx, moviesSchema); err != nil {
		return fmt.Errorf("failed to create movies table: %w", err)
	}
	return nil
}

// Put inserts or replaces the document stored under id
func (s *PostgresStore) Put(ctx context.Context, id primitive.ObjectID, rec Record) error {
	_, err := s.db.Pool().Exec(ctx, `
		INSERT INTO movies (id, doc) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc
	`, id.Hex(), rec)
	if err != nil {
		return fmt.Errorf("failed to store movie %s: %w", id.Hex(), err)
	}
	return nil
}

// FindByID fetches one movie by id
func (s *PostgresStore) FindByID(ctx context.Context, id primitive.ObjectID) (Record, error) {
	var rec Record
	err := s.db.Pool().QueryRow(ctx, `SELECT doc FROM movies WHERE id = $1`, id.Hex()).Scan(&rec)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find movie %s: %w", id.Hex(), err)
	}
	return rec, nil
}

// Ping checks connectivity to Postgres
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Pool().Ping(ctx)
}

// Close closes the connection pool
func (s *PostgresStore) Close(_ context.Context) error {
	s.db.Close()
	return nil
}
