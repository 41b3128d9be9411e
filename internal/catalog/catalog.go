// Package catalog implements the product catalog: the list of sellable
// products, persisted as one collection and seeded with defaults.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mmynk/vereinskasse/internal/models"
	"github.com/mmynk/vereinskasse/internal/storage"
)

// Catalog owns the product list.
// Every mutation rewrites the whole collection; write failures are logged
// and never returned, the in-memory state stays authoritative.
type Catalog struct {
	mu         sync.RWMutex
	products   []models.Product
	collection *storage.Collection[[]models.Product]
}

// New loads the catalog from store.
// A missing, unreadable or corrupt collection falls back to Defaults().
func New(ctx context.Context, store storage.Store) *Catalog {
	c := &Catalog{
		collection: storage.NewCollection[[]models.Product](store, storage.ProductsKey),
	}

	products, err := c.collection.Load(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		slog.Info("No stored catalog, using defaults")
		products = Defaults()
	case err != nil:
		slog.Error("Failed to load products from storage", "error", err)
		products = Defaults()
	case products == nil:
		products = []models.Product{}
	}

	c.products = products
	slog.Info("Catalog loaded", "products", len(c.products))
	return c
}

// Products returns a copy of the catalog in display order.
func (c *Catalog) Products() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Product(nil), c.products...)
}

// ByCategory returns the products of one category.
// An empty category returns all products.
func (c *Catalog) ByCategory(category models.Category) []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := []models.Product{}
	for _, p := range c.products {
		if category == "" || p.Category == category {
			result = append(result, p)
		}
	}
	return result
}

// Get returns the product with the given id.
func (c *Catalog) Get(id string) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(id); i >= 0 {
		return c.products[i], true
	}
	return models.Product{}, false
}

// Add appends a product and reports whether it did.
// An id already in the catalog is left untouched; use Save to replace.
func (c *Catalog) Add(ctx context.Context, p models.Product) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indexOf(p.ID) >= 0 {
		return false
	}
	c.products = append(c.products, p)
	c.persist(ctx)
	return true
}

// Update replaces the product with the same id in place.
// Unknown ids are ignored.
func (c *Catalog) Update(ctx context.Context, p models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(p.ID)
	if i < 0 {
		return
	}
	c.products[i] = p
	c.persist(ctx)
}

// Save upserts by id: an existing product is replaced in place,
// a new one is appended. It reports whether the product was new.
func (c *Catalog) Save(ctx context.Context, p models.Product) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	created := false
	if i := c.indexOf(p.ID); i >= 0 {
		c.products[i] = p
	} else {
		c.products = append(c.products, p)
		created = true
	}
	c.persist(ctx)
	return created
}

// Delete removes the product with the given id and reports whether it existed.
// Completed receipts hold snapshots, so nothing cascades.
func (c *Catalog) Delete(ctx context.Context, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.products = append(c.products[:i:i], c.products[i+1:]...)
	c.persist(ctx)
	return true
}

// ResetToDefaults replaces the whole catalog with the seed list.
func (c *Catalog) ResetToDefaults(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.products = Defaults()
	c.persist(ctx)
}

func (c *Catalog) indexOf(id string) int {
	for i, p := range c.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// persist must be called with c.mu held.
func (c *Catalog) persist(ctx context.Context) {
	if err := c.collection.Save(ctx, c.products); err != nil {
		slog.Error("Failed to save products to storage", "error", err)
	}
}
