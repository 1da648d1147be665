package service

import "errors"

var (
	// ErrInvalidUserID is returned when the user ID is empty.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidProductID is returned when the product ID is empty.
	ErrInvalidProductID = errors.New("invalid product id")

	// ErrInvalidSessionID is returned when the checkout session ID is empty.
	ErrInvalidSessionID = errors.New("invalid checkout session id")

	// ErrInvalidTransactionID is returned when the transaction ID is empty.
	ErrInvalidTransactionID = errors.New("invalid transaction id")

	// ErrInvalidQuantity is returned when a cart quantity is below one.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	// ErrEmptyCart is returned when an operation requires a non-empty cart.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrPaymentNotCompleted is returned when the provider reports the
	// session as anything other than paid.
	ErrPaymentNotCompleted = errors.New("payment not completed")

	// ErrSessionCustomerMismatch is returned when the session belongs to a
	// different customer than the one confirming it.
	ErrSessionCustomerMismatch = errors.New("checkout session belongs to another customer")

	// ErrSettlementInProgress is returned when another settlement already
	// holds the customer's lock.
	ErrSettlementInProgress = errors.New("settlement already in progress for this customer")

	// ErrCartNotCleared is returned when the cart still holds lines after
	// the settlement cleared it. Signals a bug or a lost update, not a
	// user error.
	ErrCartNotCleared = errors.New("cart was not cleared during settlement")

	// ErrPriceChanged is returned when price re-validation is enabled and a
	// cart line no longer matches the current product price.
	ErrPriceChanged = errors.New("product price changed since it was added to the cart")

	// ErrMissingRefundReason is returned when a refund has no reason.
	ErrMissingRefundReason = errors.New("refund reason is required")

	// ErrAlreadyRefunded is returned when a transaction was already
	// refunded.
	ErrAlreadyRefunded = errors.New("transaction already refunded")

	// ErrEmailTaken is returned when registering with an email that is
	// already in use.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrMissingFields is returned when required request fields are empty.
	ErrMissingFields = errors.New("missing required fields")

	// ErrInvalidPrice is returned when a catalog price is not positive.
	ErrInvalidPrice = errors.New("price must be greater than zero")
)
