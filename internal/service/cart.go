package service

import (
	"context"

	"github.com/google/uuid"

	"campease/internal/domain"
	"campease/internal/redis"
	"campease/internal/repository"
)

// CartService handles cart mutations. Product name, price and image are
// captured onto the line at add-to-cart time.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	cache       *redis.CacheStore
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, cache *redis.CacheStore) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		cache:       cache,
	}
}

// GetCart retrieves the user's cart lines.
func (s *CartService) GetCart(ctx context.Context, userID string) ([]*domain.CartItem, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	return s.cartRepo.GetByUserID(ctx, userID)
}

// AddItem adds a product to the user's cart, summing quantities when the
// product is already there.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) error {
	if userID == "" {
		return ErrInvalidUserID
	}

	if productID == "" {
		return ErrInvalidProductID
	}

	if quantity < 1 {
		return ErrInvalidQuantity
	}

	product, err := s.lookupProduct(ctx, productID)
	if err != nil {
		return err
	}

	return s.cartRepo.Upsert(ctx, &domain.CartItem{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  quantity,
		ImageURL:  product.ImageURL,
	})
}

// UpdateQuantity sets the quantity of a cart line.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	if userID == "" {
		return ErrInvalidUserID
	}

	if productID == "" {
		return ErrInvalidProductID
	}

	if quantity < 1 {
		return ErrInvalidQuantity
	}

	return s.cartRepo.UpdateQuantity(ctx, userID, productID, quantity)
}

// RemoveItem deletes a cart line.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) error {
	if userID == "" {
		return ErrInvalidUserID
	}

	if productID == "" {
		return ErrInvalidProductID
	}

	return s.cartRepo.Remove(ctx, userID, productID)
}

// ClearCart empties the user's cart.
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrInvalidUserID
	}

	return s.cartRepo.Clear(ctx, userID)
}

// lookupProduct reads a product through the cache.
func (s *CartService) lookupProduct(ctx context.Context, productID string) (*domain.Product, error) {
	if s.cache != nil {
		cached, err := s.cache.GetProduct(ctx, productID)
		if err == nil && cached != nil {
			return &domain.Product{
				ID:       cached.ID,
				Name:     cached.Name,
				Price:    cached.Price,
				ImageURL: cached.ImageURL,
				Stock:    cached.Stock,
			}, nil
		}
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetProduct(ctx, &redis.CachedProduct{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			ImageURL: product.ImageURL,
			Stock:    product.Stock,
		})
	}

	return product, nil
}
