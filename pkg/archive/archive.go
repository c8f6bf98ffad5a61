// Package archive provides durable storage for uploaded soundings.
//
// The server accepts sounding documents, assigns them an ID, and renders
// them on demand until they expire. Two backends:
//   - memory: for development and testing
//   - mongo: for production deployments
//
// Create a store:
//
//	// Development
//	store := archive.NewMemoryStore()
//
//	// Production
//	store, err := archive.NewMongoStore(ctx, archive.MongoConfig{
//	    URI:      "mongodb://localhost:27017",
//	    Database: "skewt",
//	})
//
// Archive and retrieve:
//
//	doc := archive.New(site, source, body, archive.DefaultTTL)
//	store.Put(ctx, doc)
//
//	doc, err := store.Get(ctx, id)
package archive

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for archive operations.
var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrExpired is returned when a document has exceeded its TTL.
	ErrExpired = errors.New("expired")
)

// DefaultTTL is the default retention for archived soundings.
const DefaultTTL = 7 * 24 * time.Hour

// Document is an archived sounding. Body holds the raw JSON document as
// uploaded; it is re-parsed at render time so the archive stays agnostic
// of the wire format version.
type Document struct {
	ID        string    `bson:"_id" json:"id"`
	Site      string    `bson:"site" json:"site"`
	Source    string    `bson:"source" json:"source"`
	Body      []byte    `bson:"body" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
}

// IsExpired returns true if the document has expired.
// A zero ExpiresAt means the document never expires.
func (d *Document) IsExpired() bool {
	return !d.ExpiresAt.IsZero() && time.Now().After(d.ExpiresAt)
}

// New creates a document with a fresh ID.
func New(site, source string, body []byte, ttl time.Duration) *Document {
	now := time.Now().UTC()
	doc := &Document{
		ID:        uuid.NewString(),
		Site:      site,
		Source:    source,
		Body:      body,
		CreatedAt: now,
	}
	if ttl > 0 {
		doc.ExpiresAt = now.Add(ttl)
	}
	return doc
}

// Store is the interface for archive storage backends.
type Store interface {
	// Get retrieves a document by ID.
	// Returns ErrNotFound if it doesn't exist, ErrExpired if it has expired.
	Get(ctx context.Context, id string) (*Document, error)

	// Put stores a document, replacing any existing one with the same ID.
	Put(ctx context.Context, doc *Document) error

	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired documents (may be a no-op when the
	// backend expires documents itself).
	Cleanup(ctx context.Context) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
