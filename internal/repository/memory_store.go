package repository

import (
	"context"
	"sync"
)

// MemoryDocumentStore keeps documents in process memory.
type MemoryDocumentStore struct {
	mu   sync.Mutex
	docs map[string]Document
}

// NewMemoryDocumentStore constructs an empty in-memory store.
func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{docs: make(map[string]Document)}
}

// Load returns a copy of the stored document.
func (m *MemoryDocumentStore) Load(_ context.Context, key string) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[key]
	if !ok {
		return Document{}, nil
	}
	return Document{Value: append([]byte(nil), doc.Value...), Version: doc.Version}, nil
}

// Save replaces the document when expected matches the stored version.
func (m *MemoryDocumentStore) Save(_ context.Context, key string, value []byte, expected int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.docs[key].Version != expected {
		return 0, ErrVersionConflict
	}
	next := expected + 1
	m.docs[key] = Document{Value: append([]byte(nil), value...), Version: next}
	return next, nil
}

// Delete removes the key.
func (m *MemoryDocumentStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, key)
	return nil
}
