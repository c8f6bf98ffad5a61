package archive

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewDocument(t *testing.T) {
	body := []byte(`{"samples":[]}`)
	doc := New("OAK", "GFS", body, time.Hour)

	if doc.ID == "" {
		t.Error("New should assign an ID")
	}
	if doc.Site != "OAK" || doc.Source != "GFS" {
		t.Errorf("metadata = %s/%s, want OAK/GFS", doc.Site, doc.Source)
	}
	if doc.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	if !doc.ExpiresAt.After(doc.CreatedAt) {
		t.Error("ExpiresAt should be after CreatedAt")
	}
	if doc.IsExpired() {
		t.Error("fresh document should not be expired")
	}

	// Distinct IDs per document
	other := New("OAK", "GFS", body, time.Hour)
	if other.ID == doc.ID {
		t.Error("documents should get distinct IDs")
	}
}

func TestDocumentNoTTL(t *testing.T) {
	doc := New("OAK", "GFS", nil, 0)
	if !doc.ExpiresAt.IsZero() {
		t.Error("zero TTL should leave ExpiresAt unset")
	}
	if doc.IsExpired() {
		t.Error("document without TTL should never expire")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	doc := New("OAK", "GFS", []byte(`{"samples":[]}`), time.Hour)
	if err := s.Put(ctx, doc); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, err := s.Get(ctx, doc.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Site != "OAK" || string(got.Body) != `{"samples":[]}` {
		t.Errorf("Get returned wrong document: %+v", got)
	}

	// Returned document is a copy
	got.Site = "mutated"
	again, _ := s.Get(ctx, doc.ID)
	if again.Site != "OAK" {
		t.Error("Get should return a copy, not the stored document")
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get of missing ID = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete of missing ID: %v", err)
	}
}

func TestMemoryStoreExpiration(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	doc := New("OAK", "GFS", nil, time.Nanosecond)
	if err := s.Put(ctx, doc); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, err := s.Get(ctx, doc.ID); !errors.Is(err, ErrExpired) {
		t.Errorf("Get of expired document = %v, want ErrExpired", err)
	}

	// Cleanup removes it entirely
	if err := s.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup error: %v", err)
	}
	if _, err := s.Get(ctx, doc.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Cleanup = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	doc := New("OAK", "GFS", nil, time.Hour)
	_ = s.Put(ctx, doc)
	if err := s.Delete(ctx, doc.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := s.Get(ctx, doc.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete = %v, want ErrNotFound", err)
	}
}
