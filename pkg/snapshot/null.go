package snapshot

import "context"

// NullStore is a no-op store that never persists anything. Useful for
// tests and for running with persistence disabled.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() *NullStore { return &NullStore{} }

// Load always misses.
func (s *NullStore) Load(ctx context.Context, databaseID string) (*Snapshot, error) {
	return nil, nil
}

// Save does nothing.
func (s *NullStore) Save(ctx context.Context, snap *Snapshot) error { return nil }

// Clear does nothing.
func (s *NullStore) Clear(ctx context.Context, databaseID string) error { return nil }

// Close does nothing.
func (s *NullStore) Close() error { return nil }

// Ensure NullStore implements Store.
var _ Store = (*NullStore)(nil)
