package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisDocumentStore(t *testing.T) (*RedisDocumentStore, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	store := NewRedisDocumentStore(redis.NewClient(&redis.Options{Addr: server.Addr()}))
	t.Cleanup(func() { _ = store.Close() })
	return store, server
}

func TestRedisDocumentStoreVersioning(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisDocumentStore(t)
	key := "eduManage_students"

	doc, err := store.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(0), doc.Version)
	assert.Nil(t, doc.Value)

	v, err := store.Save(ctx, key, []byte(`[]`), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	_, err = store.Save(ctx, key, []byte(`[1]`), 0)
	assert.ErrorIs(t, err, ErrVersionConflict)

	v, err = store.Save(ctx, key, []byte(`[2]`), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)

	_, err = store.Save(ctx, key, []byte(`[3]`), 1)
	assert.ErrorIs(t, err, ErrVersionConflict)

	doc, err = store.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "[2]", string(doc.Value))
	assert.Equal(t, int64(2), doc.Version)
}

func TestRedisDocumentStoreLayout(t *testing.T) {
	ctx := context.Background()
	store, server := newRedisDocumentStore(t)
	key := "eduManage_attendance_v2"

	_, err := store.Save(ctx, key, []byte(`{"2024-01-15":{"S1":"present"}}`), 0)
	require.NoError(t, err)

	assert.Equal(t, `{"2024-01-15":{"S1":"present"}}`, server.HGet(key, "value"))
	assert.Equal(t, "1", server.HGet(key, "version"))

	require.NoError(t, store.Delete(ctx, key))
	assert.False(t, server.Exists(key))

	doc, err := store.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(0), doc.Version)
}

func TestRedisDocumentStoreUnreachable(t *testing.T) {
	ctx := context.Background()
	store := NewRedisDocumentStore(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1}))
	defer store.Close()

	_, err := store.Load(ctx, "eduManage_students")
	assert.Error(t, err)

	_, err = store.Save(ctx, "eduManage_students", []byte(`[]`), 0)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrVersionConflict)
}

func TestStoreMutateOverRedis(t *testing.T) {
	ctx := context.Background()
	docs, _ := newRedisDocumentStore(t)
	store := NewStore(docs, StoreOptions{})

	require.NoError(t, store.SeedDemoData(ctx))
	students, err := store.Students(ctx)
	require.NoError(t, err)
	assert.Len(t, students, len(DemoStudents()))

	version, err := store.Version(ctx, DocStudents)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}
