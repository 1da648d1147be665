package checkout

import (
	"context"
	"errors"
)

var (
	// ErrNotConfigured is returned when the provider credentials are missing.
	ErrNotConfigured = errors.New("checkout provider is not configured")

	// ErrProviderTimeout is returned when a provider call exceeds its
	// deadline. Distinct from a declined or failed payment; safe to retry.
	ErrProviderTimeout = errors.New("checkout provider timed out")

	// ErrProviderUnavailable is returned when the provider cannot be
	// reached or answers with an unexpected status.
	ErrProviderUnavailable = errors.New("checkout provider unavailable")
)

// SessionStatus is the payment status of a hosted checkout session as
// reported by the provider.
type SessionStatus string

const (
	SessionStatusPaid   SessionStatus = "paid"
	SessionStatusUnpaid SessionStatus = "unpaid"
)

// LineItem describes one cart line in the provider's terms. UnitAmount is in
// minor currency units (cents).
type LineItem struct {
	Name       string `json:"name"`
	UnitAmount int64  `json:"unit_amount"`
	Quantity   int    `json:"quantity"`
}

// CreateSessionParams are the inputs for a hosted checkout session.
type CreateSessionParams struct {
	CustomerID string
	LineItems  []LineItem
	Currency   string
	SuccessURL string
	CancelURL  string
}

// Session is a hosted checkout session as reported by the provider.
type Session struct {
	ID         string
	Status     SessionStatus
	CustomerID string
}

// Provider is the interface to the external hosted-checkout processor.
type Provider interface {
	// CreateSession requests a hosted checkout session and returns its id.
	CreateSession(ctx context.Context, params CreateSessionParams) (string, error)

	// GetSession retrieves a session and its payment status.
	GetSession(ctx context.Context, sessionID string) (*Session, error)
}
