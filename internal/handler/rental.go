package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campease/internal/middleware"
	"campease/internal/repository"
)

// RentalHandler handles HTTP requests for rented products.
type RentalHandler struct {
	rentalRepo  repository.RentalRepository
	paymentRepo repository.PaymentRecordRepository
}

// NewRentalHandler creates a new RentalHandler.
func NewRentalHandler(rentalRepo repository.RentalRepository, paymentRepo repository.PaymentRecordRepository) *RentalHandler {
	return &RentalHandler{rentalRepo: rentalRepo, paymentRepo: paymentRepo}
}

// RentedProductResponse is one rented product in HTTP responses.
type RentedProductResponse struct {
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	ImageURL  string    `json:"image_url"`
	RentedAt  time.Time `json:"rented_at"`
}

// PaymentRecordResponse is one payment history entry in HTTP responses.
type PaymentRecordResponse struct {
	ID           string     `json:"id"`
	SettlementID string     `json:"settlement_id"`
	TotalAmount  float64    `json:"total_amount"`
	PaymentDate  time.Time  `json:"payment_date"`
	Refunded     bool       `json:"refunded"`
	RefundReason string     `json:"refund_reason,omitempty"`
	RefundDate   *time.Time `json:"refund_date,omitempty"`
}

// ListRentals handles GET /v1/rentals
func (h *RentalHandler) ListRentals(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	rentals, err := h.rentalRepo.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RentedProductResponse, 0, len(rentals))
	for _, rental := range rentals {
		response = append(response, RentedProductResponse{
			ProductID: rental.ProductID,
			Name:      rental.Name,
			UnitPrice: rental.UnitPrice,
			Quantity:  rental.Quantity,
			ImageURL:  rental.ImageURL,
			RentedAt:  rental.RentedAt,
		})
	}

	respondJSON(c, http.StatusOK, response)
}

// ListPayments handles GET /v1/payments/history
func (h *RentalHandler) ListPayments(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	records, err := h.paymentRepo.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]PaymentRecordResponse, 0, len(records))
	for _, record := range records {
		response = append(response, PaymentRecordResponse{
			ID:           record.ID,
			SettlementID: record.SettlementID,
			TotalAmount:  record.TotalAmount,
			PaymentDate:  record.PaymentDate,
			Refunded:     record.Refunded,
			RefundReason: record.RefundReason,
			RefundDate:   record.RefundDate,
		})
	}

	respondJSON(c, http.StatusOK, response)
}
