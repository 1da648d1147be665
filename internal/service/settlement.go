package service

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"campease/internal/checkout"
	"campease/internal/domain"
	"campease/internal/repository"
)

// SettlementLocker guards the read-cart to clear-cart sequence against a
// concurrent confirmation for the same customer.
type SettlementLocker interface {
	AcquireSettlementLock(ctx context.Context, userID string, ttl time.Duration) (bool, error)
	ReleaseSettlementLock(ctx context.Context, userID string) error
}

// SettlementService drives the transition of a paid cart into durable
// payment, rental and transaction records.
type SettlementService struct {
	store          repository.Store
	settlementRepo repository.SettlementRepository
	userRepo       repository.UserRepository
	productRepo    repository.ProductRepository
	provider       checkout.Provider
	lock           SettlementLocker
	notifications  *NotificationService
	receipts       *ReceiptService

	lockTTL              time.Duration
	providerTimeout      time.Duration
	lockPriceAtAddToCart bool
}

// SettlementConfig holds settlement workflow settings.
type SettlementConfig struct {
	LockTTL              time.Duration
	ProviderTimeout      time.Duration
	LockPriceAtAddToCart bool
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(
	store repository.Store,
	settlementRepo repository.SettlementRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	provider checkout.Provider,
	lock SettlementLocker,
	notifications *NotificationService,
	receipts *ReceiptService,
	cfg SettlementConfig,
) *SettlementService {
	return &SettlementService{
		store:                store,
		settlementRepo:       settlementRepo,
		userRepo:             userRepo,
		productRepo:          productRepo,
		provider:             provider,
		lock:                 lock,
		notifications:        notifications,
		receipts:             receipts,
		lockTTL:              cfg.LockTTL,
		providerTimeout:      cfg.ProviderTimeout,
		lockPriceAtAddToCart: cfg.LockPriceAtAddToCart,
	}
}

// ConfirmPaymentRequest contains the parameters for confirming a payment.
type ConfirmPaymentRequest struct {
	UserID    string
	SessionID string
}

// ConfirmPaymentResult is the outcome of a successful settlement.
type ConfirmPaymentResult struct {
	Settlement  *domain.Settlement
	Transaction *domain.Transaction
	Receipt     *domain.Receipt
}

// ConfirmPayment verifies the checkout session with the provider and, if it
// is paid, settles the customer's cart: one payment record, one rented
// product entry per line, one transaction, and an emptied cart, all under a
// single database transaction correlated by a settlement id.
func (s *SettlementService) ConfirmPayment(ctx context.Context, req ConfirmPaymentRequest) (*ConfirmPaymentResult, error) {
	if req.UserID == "" {
		return nil, ErrInvalidUserID
	}

	if req.SessionID == "" {
		return nil, ErrInvalidSessionID
	}

	// Never trust a client-supplied success flag; ask the provider.
	providerCtx, cancel := context.WithTimeout(ctx, s.providerTimeout)
	session, err := s.provider.GetSession(providerCtx, req.SessionID)
	cancel()
	if err != nil {
		return nil, err
	}

	if session.Status != checkout.SessionStatusPaid {
		return nil, ErrPaymentNotCompleted
	}

	if session.CustomerID != "" && session.CustomerID != req.UserID {
		return nil, ErrSessionCustomerMismatch
	}

	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	// One settlement per customer at a time.
	acquired, err := s.lock.AcquireSettlementLock(ctx, req.UserID, s.lockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, ErrSettlementInProgress
	}
	defer func() {
		if err := s.lock.ReleaseSettlementLock(context.WithoutCancel(ctx), req.UserID); err != nil {
			log.Printf("failed to release settlement lock for user %s: %v", req.UserID, err)
		}
	}()

	// Tagged-state settlement record: PENDING before any effect is applied,
	// COMMITTED in the same transaction as the effects.
	settlement := &domain.Settlement{
		ID:     uuid.New().String(),
		UserID: req.UserID,
		Status: domain.SettlementStatusPending,
	}

	if err := s.settlementRepo.Create(ctx, settlement); err != nil {
		return nil, err
	}

	transaction, err := s.applySettlement(ctx, settlement, user)
	if err != nil {
		if markErr := s.settlementRepo.UpdateStatus(context.WithoutCancel(ctx), settlement.ID, domain.SettlementStatusFailed); markErr != nil {
			log.Printf("failed to mark settlement %s failed: %v", settlement.ID, markErr)
		}
		return nil, err
	}

	settlement.Status = domain.SettlementStatusCommitted
	settlement.TotalAmount = transaction.TotalAmount

	if s.notifications != nil {
		_ = s.notifications.NotifyPaymentConfirmed(ctx, user, transaction)
	}

	var receipt *domain.Receipt
	if s.receipts != nil {
		receipt, _ = s.receipts.GenerateReceipt(ctx, user, transaction)
	}

	return &ConfirmPaymentResult{
		Settlement:  settlement,
		Transaction: transaction,
		Receipt:     receipt,
	}, nil
}

// GetSettlement retrieves one of the caller's settlements, so an in-flight
// or failed settlement stays observable. Settlements belonging to another
// customer are reported as not found.
func (s *SettlementService) GetSettlement(ctx context.Context, userID, settlementID string) (*domain.Settlement, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	if settlementID == "" {
		return nil, repository.ErrNotFound
	}

	settlement, err := s.settlementRepo.GetByID(ctx, settlementID)
	if err != nil {
		return nil, err
	}

	if settlement.UserID != userID {
		return nil, repository.ErrNotFound
	}

	return settlement, nil
}

// applySettlement performs the settlement writes inside one transaction.
func (s *SettlementService) applySettlement(ctx context.Context, settlement *domain.Settlement, user *domain.User) (*domain.Transaction, error) {
	var transaction *domain.Transaction

	err := s.store.ExecTx(ctx, func(tx repository.Tx) error {
		// The cart is the source of truth; fetch it fresh under a row
		// lock, never from the request payload.
		items, err := tx.Carts().GetByUserIDForUpdate(ctx, user.ID)
		if err != nil {
			return err
		}

		if len(items) == 0 {
			return ErrEmptyCart
		}

		if !s.lockPriceAtAddToCart {
			if err := s.revalidatePrices(ctx, items); err != nil {
				return err
			}
		}

		totalAmount := domain.CartTotal(items)
		paymentDate := time.Now().UTC()

		paymentItems := make([]domain.PaymentItem, 0, len(items))
		rentals := make([]*domain.RentedProduct, 0, len(items))
		for _, item := range items {
			paymentItems = append(paymentItems, domain.PaymentItem{
				ProductID: item.ProductID,
				Name:      item.Name,
				UnitPrice: item.UnitPrice,
				Quantity:  item.Quantity,
				ImageURL:  item.ImageURL,
			})
			rentals = append(rentals, &domain.RentedProduct{
				ID:           uuid.New().String(),
				UserID:       user.ID,
				SettlementID: settlement.ID,
				ProductID:    item.ProductID,
				Name:         item.Name,
				UnitPrice:    item.UnitPrice,
				Quantity:     item.Quantity,
				ImageURL:     item.ImageURL,
				RentedAt:     paymentDate,
			})
		}

		record := &domain.PaymentRecord{
			ID:           uuid.New().String(),
			SettlementID: settlement.ID,
			UserID:       user.ID,
			TotalAmount:  totalAmount,
			PaymentDate:  paymentDate,
		}

		if err := tx.PaymentRecords().Create(ctx, record); err != nil {
			return err
		}

		if err := tx.Rentals().CreateBatch(ctx, rentals); err != nil {
			return err
		}

		if err := tx.Carts().Clear(ctx, user.ID); err != nil {
			return err
		}

		// Post-condition check on the clear.
		count, err := tx.Carts().CountByUserID(ctx, user.ID)
		if err != nil {
			return err
		}
		if count != 0 {
			return ErrCartNotCleared
		}

		transaction = &domain.Transaction{
			ID:            uuid.New().String(),
			SettlementID:  settlement.ID,
			CustomerID:    user.ID,
			CustomerName:  user.Name,
			CustomerEmail: user.Email,
			TotalAmount:   totalAmount,
			PaymentDate:   paymentDate,
			Items:         paymentItems,
		}

		if err := tx.Transactions().Create(ctx, transaction); err != nil {
			return err
		}

		// The settlement row carries the settled total; write it in the
		// same transaction that flips it to COMMITTED.
		return tx.Settlements().Commit(ctx, settlement.ID, totalAmount)
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

// revalidatePrices rejects cart lines whose captured unit price no longer
// matches the current product price.
func (s *SettlementService) revalidatePrices(ctx context.Context, items []*domain.CartItem) error {
	for _, item := range items {
		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if math.Abs(product.Price-item.UnitPrice) > 1e-9 {
			return ErrPriceChanged
		}
	}
	return nil
}
