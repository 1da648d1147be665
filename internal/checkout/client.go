package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client is an HTTP implementation of Provider against a hosted-checkout
// REST API.
type Client struct {
	http      *resty.Client
	secretKey string
}

// ClientConfig holds the provider connection settings.
type ClientConfig struct {
	BaseURL   string
	SecretKey string
	Timeout   time.Duration
}

// NewClient creates a new provider client.
func NewClient(cfg ClientConfig) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		http:      httpClient,
		secretKey: cfg.SecretKey,
	}
}

type createSessionRequest struct {
	LineItems  []LineItem        `json:"line_items"`
	Currency   string            `json:"currency"`
	SuccessURL string            `json:"success_url"`
	CancelURL  string            `json:"cancel_url"`
	Metadata   map[string]string `json:"metadata"`
}

type sessionResponse struct {
	ID       string            `json:"id"`
	Status   string            `json:"payment_status"`
	Metadata map[string]string `json:"metadata"`
}

// CreateSession requests a hosted checkout session and returns its id.
func (c *Client) CreateSession(ctx context.Context, params CreateSessionParams) (string, error) {
	if c.secretKey == "" {
		return "", ErrNotConfigured
	}

	body := createSessionRequest{
		LineItems:  params.LineItems,
		Currency:   params.Currency,
		SuccessURL: params.SuccessURL,
		CancelURL:  params.CancelURL,
		Metadata:   map[string]string{"customer_id": params.CustomerID},
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.secretKey).
		SetBody(body).
		Post("/v1/checkout/sessions")
	if err != nil {
		return "", c.mapTransportError(err)
	}

	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		return "", fmt.Errorf("%w: session creation failed with status %d", ErrProviderUnavailable, resp.StatusCode())
	}

	var session sessionResponse
	if err := json.Unmarshal(resp.Body(), &session); err != nil {
		return "", fmt.Errorf("parse session response: %w", err)
	}

	if session.ID == "" {
		return "", fmt.Errorf("%w: session id missing from response", ErrProviderUnavailable)
	}

	return session.ID, nil
}

// GetSession retrieves a session and its payment status.
func (c *Client) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	if c.secretKey == "" {
		return nil, ErrNotConfigured
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.secretKey).
		Get("/v1/checkout/sessions/" + sessionID)
	if err != nil {
		return nil, c.mapTransportError(err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("%w: session %s not found", ErrProviderUnavailable, sessionID)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: session lookup failed with status %d", ErrProviderUnavailable, resp.StatusCode())
	}

	var session sessionResponse
	if err := json.Unmarshal(resp.Body(), &session); err != nil {
		return nil, fmt.Errorf("parse session response: %w", err)
	}

	return &Session{
		ID:         session.ID,
		Status:     SessionStatus(session.Status),
		CustomerID: session.Metadata["customer_id"],
	}, nil
}

func (c *Client) mapTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrProviderTimeout
	}

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrProviderTimeout
	}

	return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
}
