package store

import (
	"context"

	"github.com/verte-zerg/trainlog/internal/model"
)

// MemoryStore keeps the collection in memory. It backs tests and dry runs.
type MemoryStore struct {
	records model.Collection
	saves   int
}

// NewMemory returns a store preloaded with a copy of records.
func NewMemory(records model.Collection) *MemoryStore {
	return &MemoryStore{records: records.Clone()}
}

// Load returns a copy of the stored collection.
func (s *MemoryStore) Load(ctx context.Context) (model.Collection, error) {
	return s.records.Clone(), nil
}

// Save replaces the stored collection with a copy of records.
func (s *MemoryStore) Save(ctx context.Context, records model.Collection) error {
	s.records = records.Clone()
	s.saves++
	return nil
}

// Saves reports how many times Save was called.
func (s *MemoryStore) Saves() int {
	return s.saves
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
