// Package memory provides an in-memory DocumentStore, used as the
// development backend and as the base for test doubles.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/ZaidRasheed/backend-admin-panel/pkg/upstream"
)

// Store is an in-memory document store keyed by collection and id.
// Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	data map[string]map[string]map[string]any // collection -> id -> fields
}

// NewStore creates an empty in-memory document store.
func NewStore() *Store {
	return &Store{data: make(map[string]map[string]map[string]any)}
}

// GetDocument returns a copy of the document's fields, or upstream.ErrNotFound.
func (s *Store) GetDocument(ctx context.Context, collection, id string) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.data[collection][id]
	if !ok {
		return nil, upstream.ErrNotFound
	}
	return copyFields(doc), nil
}

// SetDocument creates or fully replaces a document.
func (s *Store) SetDocument(ctx context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data[collection] == nil {
		s.data[collection] = make(map[string]map[string]any)
	}
	s.data[collection][id] = copyFields(fields)
	return nil
}

// UpdateDocument merges fields into an existing document. Documents that do
// not exist cannot be updated, matching remote document store semantics.
func (s *Store) UpdateDocument(ctx context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.data[collection][id]
	if !ok {
		return fmt.Errorf("cannot update %s/%s: %w", collection, id, upstream.ErrNotFound)
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

// DeleteDocument removes a document. Deleting an absent document succeeds.
func (s *Store) DeleteDocument(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data[collection], id)
	return nil
}

// Len reports the number of documents in a collection.
func (s *Store) Len(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data[collection])
}

func copyFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
