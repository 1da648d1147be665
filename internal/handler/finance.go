package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campease/internal/domain"
	"campease/internal/service"
)

// FinanceHandler handles HTTP requests for the finance dashboard.
type FinanceHandler struct {
	refundService *service.RefundService
}

// NewFinanceHandler creates a new FinanceHandler.
func NewFinanceHandler(refundService *service.RefundService) *FinanceHandler {
	return &FinanceHandler{refundService: refundService}
}

// RefundRequest is the HTTP request body for a refund.
type RefundRequest struct {
	Reason string `json:"reason"`
}

// RefundResponse is the HTTP response for a processed refund.
type RefundResponse struct {
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id"`
	MirrorUpdated bool   `json:"mirror_updated"`
}

// TransactionResponse is one transaction in HTTP responses.
type TransactionResponse struct {
	ID            string     `json:"id"`
	SettlementID  string     `json:"settlement_id"`
	CustomerID    string     `json:"customer_id"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email"`
	TotalAmount   float64    `json:"total_amount"`
	PaymentDate   time.Time  `json:"payment_date"`
	Refunded      bool       `json:"refunded"`
	RefundReason  string     `json:"refund_reason,omitempty"`
	RefundDate    *time.Time `json:"refund_date,omitempty"`
}

// Refund handles POST /v1/finance/refund/:transactionId
func (h *FinanceHandler) Refund(c *gin.Context) {
	transactionID := c.Param("transactionId")

	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.refundService.Refund(c.Request.Context(), service.RefundRequest{
		TransactionID: transactionID,
		Reason:        req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, RefundResponse{
		Message:       "transaction refunded",
		TransactionID: result.Transaction.ID,
		MirrorUpdated: result.MirrorUpdated,
	})
}

// ListTransactions handles GET /v1/finance/transactions
func (h *FinanceHandler) ListTransactions(c *gin.Context) {
	transactions, err := h.refundService.ListTransactions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TransactionResponse, 0, len(transactions))
	for _, transaction := range transactions {
		response = append(response, toTransactionResponse(transaction))
	}

	respondJSON(c, http.StatusOK, response)
}

func toTransactionResponse(transaction *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            transaction.ID,
		SettlementID:  transaction.SettlementID,
		CustomerID:    transaction.CustomerID,
		CustomerName:  transaction.CustomerName,
		CustomerEmail: transaction.CustomerEmail,
		TotalAmount:   transaction.TotalAmount,
		PaymentDate:   transaction.PaymentDate,
		Refunded:      transaction.Refunded,
		RefundReason:  transaction.RefundReason,
		RefundDate:    transaction.RefundDate,
	}
}
