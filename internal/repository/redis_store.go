package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	fieldValue   = "value"
	fieldVersion = "version"
)

// RedisDocumentStore keeps each document in a hash holding the JSON value and
// its version. Conditional writes run inside WATCH/MULTI.
type RedisDocumentStore struct {
	client *redis.Client
}

// NewRedisDocumentStore constructs the store.
func NewRedisDocumentStore(client *redis.Client) *RedisDocumentStore {
	return &RedisDocumentStore{client: client}
}

// Load fetches a document; a missing hash yields the zero Document.
func (r *RedisDocumentStore) Load(ctx context.Context, key string) (Document, error) {
	vals, err := r.client.HMGet(ctx, key, fieldValue, fieldVersion).Result()
	if err != nil {
		return Document{}, fmt.Errorf("redis hmget %s: %w", key, err)
	}
	raw, ok := vals[0].(string)
	if !ok {
		return Document{}, nil
	}
	versionRaw, _ := vals[1].(string)
	version, err := strconv.ParseInt(versionRaw, 10, 64)
	if err != nil {
		return Document{}, fmt.Errorf("parse version for %s: %w", key, err)
	}
	return Document{Value: []byte(raw), Version: version}, nil
}

// Save writes the document when the stored version still equals expected.
func (r *RedisDocumentStore) Save(ctx context.Context, key string, value []byte, expected int64) (int64, error) {
	next := expected + 1
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.HGet(ctx, key, fieldVersion).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != expected {
			return ErrVersionConflict
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, fieldValue, value, fieldVersion, next)
			return nil
		})
		return err
	}, key)
	switch {
	case err == nil:
		return next, nil
	case errors.Is(err, ErrVersionConflict), errors.Is(err, redis.TxFailedErr):
		return 0, ErrVersionConflict
	default:
		return 0, fmt.Errorf("redis save %s: %w", key, err)
	}
}

// Delete removes the hash.
func (r *RedisDocumentStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (r *RedisDocumentStore) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
