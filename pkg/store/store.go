// Package store persists generated networks so they can be fetched by ID
// after the request that created them.
//
// [MemoryStore] keeps records in process for the CLI and tests;
// [MongoStore] is the shared backend for the HTTP server.
package store

import (
	"context"

	"github.com/matzehuels/roadnet/pkg/pipeline"
)

// DefaultListLimit bounds List when the caller passes a limit <= 0.
const DefaultListLimit = 50

// Store persists generation records.
type Store interface {
	// Save inserts or replaces the record with rec.ID.
	Save(ctx context.Context, rec *pipeline.Record) error
	// Get returns the record with id, or an ErrCodeNotFound error.
	Get(ctx context.Context, id string) (*pipeline.Record, error)
	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]*pipeline.Record, error)
	// Delete removes the record with id, or returns an ErrCodeNotFound error.
	Delete(ctx context.Context, id string) error
	// Close releases backend resources.
	Close(ctx context.Context) error
}
