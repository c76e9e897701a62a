package repository

import (
	"context"
	"errors"
)

// ErrVersionConflict is returned by DocumentStore.Save when the stored
// version no longer matches the version the caller loaded.
var ErrVersionConflict = errors.New("document version conflict")

// Document is a stored JSON value together with its optimistic version.
// Version 0 means the key has never been written.
type Document struct {
	Value   []byte
	Version int64
}

// DocumentStore persists whole JSON documents under string keys. Save only
// succeeds when expected equals the current version and returns the new one.
type DocumentStore interface {
	Load(ctx context.Context, key string) (Document, error)
	Save(ctx context.Context, key string, value []byte, expected int64) (int64, error)
	Delete(ctx context.Context, key string) error
}
