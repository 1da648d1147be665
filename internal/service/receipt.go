package service

import (
	"context"

	"github.com/google/uuid"

	"campease/internal/domain"
)

// ReceiptService handles receipt generation.
type ReceiptService struct {
	notificationService *NotificationService
}

// NewReceiptService creates a new ReceiptService.
func NewReceiptService(notificationService *NotificationService) *ReceiptService {
	return &ReceiptService{
		notificationService: notificationService,
	}
}

// GenerateReceipt builds a receipt for a settled transaction and notifies
// the customer it is ready.
func (s *ReceiptService) GenerateReceipt(ctx context.Context, user *domain.User, transaction *domain.Transaction) (*domain.Receipt, error) {
	if transaction == nil {
		return nil, ErrInvalidTransactionID
	}

	itemCount := 0
	for _, item := range transaction.Items {
		itemCount += item.Quantity
	}

	receipt := &domain.Receipt{
		ID:            uuid.New().String(),
		SettlementID:  transaction.SettlementID,
		TransactionID: transaction.ID,
		CustomerID:    user.ID,
		CustomerName:  user.Name,
		TotalAmount:   transaction.TotalAmount,
		ItemCount:     itemCount,
		PaymentDate:   transaction.PaymentDate,
		CreatedAt:     transaction.PaymentDate,
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyReceiptReady(ctx, receipt)
	}

	return receipt, nil
}
