package service

import (
	"context"

	"github.com/google/uuid"

	"campease/internal/domain"
	"campease/internal/redis"
	"campease/internal/repository"
)

// CatalogService handles the gear catalog. Writes invalidate the product
// cache so cart lookups stop serving the stale entry.
type CatalogService struct {
	productRepo repository.ProductRepository
	cache       *redis.CacheStore
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(productRepo repository.ProductRepository, cache *redis.CacheStore) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		cache:       cache,
	}
}

// ProductInput contains the writable catalog fields of a product.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	ImageURL    string
	Stock       int
}

// ListProducts retrieves the full catalog.
func (s *CatalogService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.productRepo.GetAll(ctx)
}

// GetProduct retrieves a product by ID.
func (s *CatalogService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	if productID == "" {
		return nil, ErrInvalidProductID
	}

	return s.productRepo.GetByID(ctx, productID)
}

// CreateProduct adds a product to the catalog.
func (s *CatalogService) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := &domain.Product{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Stock:       input.Stock,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// UpdateProduct overwrites a product's catalog fields and evicts its cache
// entry.
func (s *CatalogService) UpdateProduct(ctx context.Context, productID string, input ProductInput) (*domain.Product, error) {
	if productID == "" {
		return nil, ErrInvalidProductID
	}

	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := &domain.Product{
		ID:          productID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Stock:       input.Stock,
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateProduct(ctx, productID)
	}

	return product, nil
}

func validateProductInput(input ProductInput) error {
	if input.Name == "" {
		return ErrMissingFields
	}
	if input.Price <= 0 {
		return ErrInvalidPrice
	}
	return nil
}
