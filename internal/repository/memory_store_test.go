package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDocumentStoreVersioning(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDocumentStore()

	doc, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, int64(0), doc.Version)
	assert.Nil(t, doc.Value)

	v, err := store.Save(ctx, "k", []byte(`{"a":1}`), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	_, err = store.Save(ctx, "k", []byte(`{"a":2}`), 0)
	assert.ErrorIs(t, err, ErrVersionConflict)

	v, err = store.Save(ctx, "k", []byte(`{"a":3}`), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)

	doc, err = store.Load(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":3}`, string(doc.Value))

	require.NoError(t, store.Delete(ctx, "k"))
	doc, err = store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, int64(0), doc.Version)
}

func TestMemoryDocumentStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDocumentStore()
	payload := []byte(`"x"`)
	_, err := store.Save(ctx, "k", payload, 0)
	require.NoError(t, err)
	payload[1] = 'y'

	doc, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"x"`, string(doc.Value))
}
