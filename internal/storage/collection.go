package storage

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Collection is a typed JSON view over a single key of a Store.
type Collection[T any] struct {
	store Store
	key   string
}

// NewCollection returns a Collection bound to key.
func NewCollection[T any](store Store, key string) *Collection[T] {
	return &Collection[T]{store: store, key: key}
}

// Key returns the collection key.
func (c *Collection[T]) Key() string {
	return c.key
}

// Load reads and decodes the collection.
// Returns ErrNotFound (wrapped) when the key is absent.
func (c *Collection[T]) Load(ctx context.Context) (T, error) {
	var v T
	data, err := c.store.Load(ctx, c.key)
	if err != nil {
		return v, fmt.Errorf("failed to load %s: %w", c.key, err)
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("failed to decode %s: %w", c.key, err)
	}
	return v, nil
}

// Save encodes v and replaces the stored collection.
func (c *Collection[T]) Save(ctx context.Context, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}
	if err := c.store.Save(ctx, c.key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", c.key, err)
	}
	return nil
}
