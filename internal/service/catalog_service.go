package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/vereinskasse/internal/catalog"
	"github.com/mmynk/vereinskasse/internal/models"
)

// CatalogService implements vereinskasse.v1.CatalogService.
type CatalogService struct {
	catalog *catalog.Catalog
}

func NewCatalogService(c *catalog.Catalog) *CatalogService {
	return &CatalogService{catalog: c}
}

// ListProducts returns the catalog, optionally filtered by category.
func (s *CatalogService) ListProducts(ctx context.Context, req *connect.Request[ListProductsRequest]) (*connect.Response[ListProductsResponse], error) {
	if req.Msg.Category == "" {
		return connect.NewResponse(&ListProductsResponse{Products: s.catalog.Products()}), nil
	}

	category, err := models.ParseCategory(req.Msg.Category)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return connect.NewResponse(&ListProductsResponse{Products: s.catalog.ByCategory(category)}), nil
}

// SaveProduct validates the editor form and upserts the product.
// Invalid input leaves the catalog untouched.
func (s *CatalogService) SaveProduct(ctx context.Context, req *connect.Request[SaveProductRequest]) (*connect.Response[SaveProductResponse], error) {
	slog.Info("SaveProduct request received",
		"product_id", req.Msg.ID,
		"name", req.Msg.Name,
		"price", req.Msg.Price,
	)

	draft := catalog.Draft{
		ID:       req.Msg.ID,
		Name:     req.Msg.Name,
		Price:    req.Msg.Price,
		Category: req.Msg.Category,
		Icon:     req.Msg.Icon,
	}
	product, err := draft.Validate()
	if err != nil {
		if errors.Is(err, catalog.ErrEmptyName) || errors.Is(err, catalog.ErrInvalidPrice) || errors.Is(err, catalog.ErrUnknownCategory) {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		slog.Error("SaveProduct failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	created := s.catalog.Save(ctx, product)
	slog.Info("Product saved", "product_id", product.ID, "created", created)

	return connect.NewResponse(&SaveProductResponse{Product: product, Created: created}), nil
}

// DeleteProduct removes a product. Sales history keeps its snapshot.
// Unknown ids are a no-op and report Deleted false.
func (s *CatalogService) DeleteProduct(ctx context.Context, req *connect.Request[DeleteProductRequest]) (*connect.Response[DeleteProductResponse], error) {
	if req.Msg.ID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("id is required"))
	}

	deleted := s.catalog.Delete(ctx, req.Msg.ID)
	if deleted {
		slog.Info("Product deleted", "product_id", req.Msg.ID)
	}

	return connect.NewResponse(&DeleteProductResponse{Deleted: deleted}), nil
}

// ResetProducts replaces the catalog with the built-in defaults.
func (s *CatalogService) ResetProducts(ctx context.Context, req *connect.Request[ResetProductsRequest]) (*connect.Response[ResetProductsResponse], error) {
	s.catalog.ResetToDefaults(ctx)
	slog.Warn("Catalog reset to defaults")
	return connect.NewResponse(&ResetProductsResponse{Products: s.catalog.Products()}), nil
}
