package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campease/internal/middleware"
	"campease/internal/service"
)

// PaymentHandler handles HTTP requests for checkout and settlement.
type PaymentHandler struct {
	checkoutService   *service.CheckoutService
	settlementService *service.SettlementService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(checkoutService *service.CheckoutService, settlementService *service.SettlementService) *PaymentHandler {
	return &PaymentHandler{
		checkoutService:   checkoutService,
		settlementService: settlementService,
	}
}

// CreateSessionResponse is the HTTP response for session creation.
type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

// ConfirmPaymentRequest is the HTTP request body for confirming a payment.
type ConfirmPaymentRequest struct {
	SessionID string `json:"session_id"`
}

// ConfirmPaymentResponse is the HTTP response for a settled payment.
type ConfirmPaymentResponse struct {
	Message       string  `json:"message"`
	TransactionID string  `json:"transaction_id"`
	SettlementID  string  `json:"settlement_id"`
	TotalAmount   float64 `json:"total_amount"`
	ReceiptID     string  `json:"receipt_id,omitempty"`
}

// SettlementResponse is one settlement in HTTP responses.
type SettlementResponse struct {
	ID          string  `json:"id"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"total_amount"`
}

// CreateCheckoutSession handles POST /v1/payment/create-checkout-session
func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	sessionID, err := h.checkoutService.CreateCheckoutSession(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, CreateSessionResponse{SessionID: sessionID})
}

// ConfirmPayment handles POST /v1/payment/confirm-payment
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.settlementService.ConfirmPayment(c.Request.Context(), service.ConfirmPaymentRequest{
		UserID:    userID,
		SessionID: req.SessionID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	response := ConfirmPaymentResponse{
		Message:       "payment confirmed and order settled",
		TransactionID: result.Transaction.ID,
		SettlementID:  result.Settlement.ID,
		TotalAmount:   result.Transaction.TotalAmount,
	}
	if result.Receipt != nil {
		response.ReceiptID = result.Receipt.ID
	}

	respondJSON(c, http.StatusOK, response)
}

// GetSettlement handles GET /v1/payment/settlements/:id
func (h *PaymentHandler) GetSettlement(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	settlement, err := h.settlementService.GetSettlement(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, SettlementResponse{
		ID:          settlement.ID,
		Status:      string(settlement.Status),
		TotalAmount: settlement.TotalAmount,
	})
}
