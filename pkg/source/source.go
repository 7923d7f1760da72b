// Package source defines the record source abstraction: anything that can
// return the full ordered record sequence of a timeline database.
//
// The primary backend is the Notion API ([github.com/talegraph/talegraph/pkg/notion]);
// [github.com/talegraph/talegraph/pkg/source/mongo] reads the same records
// from a MongoDB collection for deployments that mirror the database.
package source

import (
	"context"

	"github.com/talegraph/talegraph/pkg/notion"
	"github.com/talegraph/talegraph/pkg/timeline"
)

// Source returns the ordered sequence of raw records. Implementations
// handle pagination internally and return records in stable database
// order; fetch failures surface as coded errors to the caller.
type Source interface {
	// FetchAll retrieves every record of the configured database.
	FetchAll(ctx context.Context) ([]timeline.Record, error)

	// Name identifies the backend for logging ("notion", "mongo").
	Name() string
}

// NotionSource binds a Notion client to a database ID.
type NotionSource struct {
	client     *notion.Client
	databaseID string
}

// FromNotion creates a Source backed by the Notion API.
func FromNotion(client *notion.Client, databaseID string) *NotionSource {
	return &NotionSource{client: client, databaseID: databaseID}
}

// FetchAll retrieves all records from the Notion database.
func (s *NotionSource) FetchAll(ctx context.Context) ([]timeline.Record, error) {
	return s.client.FetchAll(ctx, s.databaseID)
}

// Name returns "notion".
func (s *NotionSource) Name() string { return "notion" }

// Ensure NotionSource implements Source.
var _ Source = (*NotionSource)(nil)
