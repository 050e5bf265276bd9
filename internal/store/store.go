// Package store handles persistence of the record collection.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/verte-zerg/trainlog/internal/model"
)

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Store loads and saves the whole collection at once.
type Store interface {
	// Load returns the persisted collection. A missing or unparsable backing
	// file yields an empty collection, not an error.
	Load(ctx context.Context) (model.Collection, error)
	// Save replaces the persisted collection with records.
	Save(ctx context.Context, records model.Collection) error
	// Close releases any resources held by the store.
	Close() error
}

// Open returns the store for backend rooted at path.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendJSON:
		return NewJSON(path), nil
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q (expected json|sqlite)", backend)
	}
}

func unavailable(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", model.ErrStoreUnavailable, op, path, err)
}
