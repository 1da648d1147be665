package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"campease/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationPaymentConfirmed NotificationType = "PAYMENT_CONFIRMED"
	NotificationRefundIssued     NotificationType = "REFUND_ISSUED"
	NotificationReceiptReady     NotificationType = "RECEIPT_READY"
)

// Notification represents a notification to be sent.
type Notification struct {
	ID          string
	Type        NotificationType
	RecipientID string
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// NotificationService handles notification delivery.
type NotificationService struct {
	// In a real system, this would have:
	// - Email client (SendGrid)
	// - Push notification client (FCM, APNS)
	// - WebSocket connections for real-time
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyPaymentConfirmed notifies the customer that their payment settled.
func (s *NotificationService) NotifyPaymentConfirmed(ctx context.Context, user *domain.User, transaction *domain.Transaction) error {
	notification := Notification{
		Type:        NotificationPaymentConfirmed,
		RecipientID: user.ID,
		Title:       "Payment Confirmed",
		Message:     fmt.Sprintf("Your payment of $%.2f was received. Your gear is ready for pickup.", transaction.TotalAmount),
		Data: map[string]interface{}{
			"transaction_id": transaction.ID,
			"settlement_id":  transaction.SettlementID,
			"total_amount":   transaction.TotalAmount,
			"item_count":     len(transaction.Items),
		},
		CreatedAt: time.Now(),
	}
	s.send(ctx, notification)
	return nil
}

// NotifyRefundIssued notifies the customer that a refund was issued.
func (s *NotificationService) NotifyRefundIssued(ctx context.Context, user *domain.User, transaction *domain.Transaction) error {
	notification := Notification{
		Type:        NotificationRefundIssued,
		RecipientID: user.ID,
		Title:       "Refund Issued",
		Message:     fmt.Sprintf("A refund of $%.2f has been issued: %s", transaction.TotalAmount, transaction.RefundReason),
		Data: map[string]interface{}{
			"transaction_id": transaction.ID,
			"total_amount":   transaction.TotalAmount,
			"refund_reason":  transaction.RefundReason,
		},
		CreatedAt: time.Now(),
	}
	s.send(ctx, notification)
	return nil
}

// NotifyReceiptReady notifies the customer that their receipt is available.
func (s *NotificationService) NotifyReceiptReady(ctx context.Context, receipt *domain.Receipt) error {
	notification := Notification{
		Type:        NotificationReceiptReady,
		RecipientID: receipt.CustomerID,
		Title:       "Receipt Ready",
		Message:     fmt.Sprintf("Your rental receipt for $%.2f is ready.", receipt.TotalAmount),
		Data: map[string]interface{}{
			"receipt_id":     receipt.ID,
			"transaction_id": receipt.TransactionID,
		},
		CreatedAt: time.Now(),
	}
	s.send(ctx, notification)
	return nil
}

// send delivers a notification. Currently logs; delivery channels plug in
// here.
func (s *NotificationService) send(ctx context.Context, notification Notification) {
	notification.ID = uuid.New().String()
	log.Printf("[NOTIFICATION] type=%s recipient=%s title=%q message=%q",
		notification.Type, notification.RecipientID, notification.Title, notification.Message)
}
