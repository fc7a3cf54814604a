package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fixed names of the movie catalog, shared by every backend
const (
	DatabaseName   = "sample_mflix"
	CollectionName = "movies"
)

// ErrNotFound is returned by a MovieFinder when no record exists under the key
var ErrNotFound = errors.New("movie not found")

// ErrInvalidID is returned by ParseID for anything that is not a 24 character hex key
var ErrInvalidID = errors.New("invalid movie id")

// Record is a stored movie document, passed through without interpretation
type Record map[string]any

// MovieFinder looks up a single movie by primary key
type MovieFinder interface {
	// FindByID returns the record stored under id, or ErrNotFound
	FindByID(ctx context.Context, id primitive.ObjectID) (Record, error)

	// Ping checks that the backing store is reachable
	Ping(ctx context.Context) error

	// Close releases the underlying connection
	Close(ctx context.Context) error
}

// ParseID converts a hex string into the canonical 12-byte key
func ParseID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id, nil
}

// Ensure all stores implement MovieFinder
var _ MovieFinder = (*MongoStore)(nil)
var _ MovieFinder = (*PostgresStore)(nil)
var _ MovieFinder = (*MemStore)(nil)
