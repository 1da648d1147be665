package service

import (
	"context"
	"math"
	"time"

	"campease/internal/checkout"
	"campease/internal/repository"
)

// CheckoutService turns a cart snapshot into an external hosted checkout
// session. It never touches the settlement ledger.
type CheckoutService struct {
	cartRepo repository.CartRepository
	provider checkout.Provider

	currency   string
	successURL string
	cancelURL  string
	timeout    time.Duration
}

// CheckoutConfig holds the session parameters shared by all sessions.
type CheckoutConfig struct {
	Currency   string
	SuccessURL string
	CancelURL  string
	Timeout    time.Duration
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(cartRepo repository.CartRepository, provider checkout.Provider, cfg CheckoutConfig) *CheckoutService {
	return &CheckoutService{
		cartRepo:   cartRepo,
		provider:   provider,
		currency:   cfg.Currency,
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
		timeout:    cfg.Timeout,
	}
}

// CreateCheckoutSession fetches the customer's cart and requests a hosted
// checkout session for it. Returns the external session id.
func (s *CheckoutService) CreateCheckoutSession(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", ErrInvalidUserID
	}

	items, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}

	if len(items) == 0 {
		return "", ErrEmptyCart
	}

	lineItems := make([]checkout.LineItem, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, checkout.LineItem{
			Name:       item.Name,
			UnitAmount: MinorUnits(item.UnitPrice),
			Quantity:   item.Quantity,
		})
	}

	providerCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.provider.CreateSession(providerCtx, checkout.CreateSessionParams{
		CustomerID: userID,
		LineItems:  lineItems,
		Currency:   s.currency,
		SuccessURL: s.successURL,
		CancelURL:  s.cancelURL,
	})
}

// MinorUnits converts a price to the provider's integer minor currency
// units (cents).
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}
