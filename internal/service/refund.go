package service

import (
	"context"
	"errors"
	"log"
	"time"

	"campease/internal/domain"
	"campease/internal/repository"
)

// RefundService reverses previously settled transactions.
type RefundService struct {
	store           repository.Store
	transactionRepo repository.TransactionRepository
	userRepo        repository.UserRepository
	notifications   *NotificationService
}

// NewRefundService creates a new RefundService.
func NewRefundService(
	store repository.Store,
	transactionRepo repository.TransactionRepository,
	userRepo repository.UserRepository,
	notifications *NotificationService,
) *RefundService {
	return &RefundService{
		store:           store,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		notifications:   notifications,
	}
}

// RefundRequest contains the parameters for refunding a transaction.
type RefundRequest struct {
	TransactionID string
	Reason        string
}

// RefundResult is the outcome of a refund.
type RefundResult struct {
	Transaction *domain.Transaction

	// MirrorUpdated is false when the customer's payment record for this
	// settlement could not be found. The transaction is still refunded.
	MirrorUpdated bool
}

// Refund marks a transaction refunded, exactly once, and flips the same
// flags on the customer's mirrored payment record. The two are matched by
// settlement id.
func (s *RefundService) Refund(ctx context.Context, req RefundRequest) (*RefundResult, error) {
	if req.TransactionID == "" {
		return nil, ErrInvalidTransactionID
	}

	if req.Reason == "" {
		return nil, ErrMissingRefundReason
	}

	transaction, err := s.transactionRepo.GetByID(ctx, req.TransactionID)
	if err != nil {
		return nil, err
	}

	if transaction.Refunded {
		return nil, ErrAlreadyRefunded
	}

	user, err := s.userRepo.GetByID(ctx, transaction.CustomerID)
	if err != nil {
		return nil, err
	}

	refundDate := time.Now().UTC()
	mirrorUpdated := true

	err = s.store.ExecTx(ctx, func(tx repository.Tx) error {
		// The WHERE refunded = FALSE guard makes this the idempotency
		// barrier under concurrent refund requests.
		if err := tx.Transactions().MarkRefunded(ctx, transaction.ID, req.Reason, refundDate); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrAlreadyRefunded
			}
			return err
		}

		err := tx.PaymentRecords().MarkRefunded(ctx, transaction.SettlementID, req.Reason, refundDate)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// Zero rows either means the mirror is gone or it already
				// carries the refund flags. The ledger stays authoritative;
				// surface the divergence instead of failing the refund.
				record, lookupErr := tx.PaymentRecords().GetBySettlementID(ctx, transaction.SettlementID)
				if lookupErr == nil && record.Refunded {
					log.Printf("refund %s: payment record for settlement %s already carries the refund",
						transaction.ID, transaction.SettlementID)
					return nil
				}
				log.Printf("refund %s: no payment record found for settlement %s, customer history is out of sync",
					transaction.ID, transaction.SettlementID)
				mirrorUpdated = false
				return nil
			}
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	transaction.Refunded = true
	transaction.RefundReason = req.Reason
	transaction.RefundDate = &refundDate

	if s.notifications != nil {
		_ = s.notifications.NotifyRefundIssued(ctx, user, transaction)
	}

	return &RefundResult{
		Transaction:   transaction,
		MirrorUpdated: mirrorUpdated,
	}, nil
}

// ListTransactions retrieves all transactions for the finance dashboard.
func (s *RefundService) ListTransactions(ctx context.Context) ([]*domain.Transaction, error) {
	return s.transactionRepo.GetAll(ctx)
}
