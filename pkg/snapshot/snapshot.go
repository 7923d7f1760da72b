// Package snapshot persists the raw record sequence of the last successful
// fetch, keyed by a schema version and the database identifier.
//
// The store answers one question for the session flow: is there a usable
// last-good snapshot, or must the source be fetched? Staleness policy is
// not the store's concern — an explicit refresh always bypasses it. A
// snapshot whose schema version or database ID does not match is treated
// as a silent miss, never as an error.
package snapshot

import (
	"context"
	"time"

	"github.com/talegraph/talegraph/pkg/timeline"
)

// SchemaVersion is the current snapshot schema. Snapshots written with a
// different version are ignored on load.
const SchemaVersion = 1

// Snapshot is the persisted copy of one fetch: the verbatim raw record
// sequence plus the identity and time of the fetch.
type Snapshot struct {
	SchemaVersion int               `json:"schema_version"`
	DatabaseID    string            `json:"database_id"`
	FetchedAt     time.Time         `json:"fetched_at"`
	Records       []timeline.Record `json:"records"`
}

// New creates a snapshot of records fetched now for the given database.
func New(databaseID string, records []timeline.Record) *Snapshot {
	return &Snapshot{
		SchemaVersion: SchemaVersion,
		DatabaseID:    databaseID,
		FetchedAt:     time.Now().UTC(),
		Records:       records,
	}
}

// matches reports whether the snapshot is usable for the given database:
// current schema version and matching identifier.
func (s *Snapshot) matches(databaseID string) bool {
	return s.SchemaVersion == SchemaVersion && s.DatabaseID == databaseID
}

// Store persists and reloads snapshots.
type Store interface {
	// Load returns the stored snapshot for a database, or (nil, nil) on a
	// miss. Version or database-ID mismatches count as misses.
	Load(ctx context.Context, databaseID string) (*Snapshot, error)

	// Save persists the snapshot, replacing any previous one.
	Save(ctx context.Context, snap *Snapshot) error

	// Clear removes the stored snapshot for a database, if any.
	Clear(ctx context.Context, databaseID string) error

	// Close releases any resources held by the store.
	Close() error
}
