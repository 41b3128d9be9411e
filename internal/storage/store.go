// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
)

// Collection keys. Each key holds one whole collection as a JSON blob.
const (
	ProductsKey = "vereinskasse-products"
	ReceiptsKey = "pos-receipts"
)

// ErrNotFound is returned by Store.Load when nothing is stored under a key.
var ErrNotFound = errors.New("collection not found")

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks . Store

// Store defines the interface for whole-collection blob storage.
// This abstraction allows swapping storage backends (SQLite, files, memory)
// without changing the catalog or ledger.
type Store interface {
	// Load returns the blob stored under key.
	// Returns ErrNotFound if the key has never been saved.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the blob stored under key.
	// The write is atomic: readers see either the old or the new blob.
	Save(ctx context.Context, key string, data []byte) error

	// Close releases any resources held by the store.
	Close() error
}
