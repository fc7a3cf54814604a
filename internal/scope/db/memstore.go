package db

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemStore keeps movies in process memory
type MemStore struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]Record
}

// NewMemStore creates an empty in-memory store
func NewMemStore() *MemStore {
	return &MemStore{docs: make(map[primitive.ObjectID]Record)}
}

// Add stores rec under id, replacing any previous record
func (s *MemStore) Add(id primitive.ObjectID, rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[id] = rec
}

// Count returns the number of stored movies
func (s *MemStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// FindByID returns the record stored under id
func (s *MemStore) FindByID(_ context.Context, id primitive.ObjectID) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec, nil
}

// Ping always succeeds
func (s *MemStore) Ping(_ context.Context) error { return nil }

// Close is a no-op
func (s *MemStore) Close(_ context.Context) error { return nil }
