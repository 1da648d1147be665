package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campease/internal/domain"
	"campease/internal/middleware"
	"campease/internal/service"
)

// CartHandler handles HTTP requests for the cart.
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// AddItemRequest is the HTTP request body for adding a cart line.
type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// UpdateItemRequest is the HTTP request body for changing a line quantity.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemResponse is one cart line in HTTP responses.
type CartItemResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url"`
}

// CartResponse is the HTTP response for the cart.
type CartResponse struct {
	Items       []CartItemResponse `json:"items"`
	TotalAmount float64            `json:"total_amount"`
}

// GetCart handles GET /v1/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	items, err := h.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toCartResponse(items))
}

// AddItem handles POST /v1/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.cartService.AddItem(c.Request.Context(), userID, req.ProductID, req.Quantity); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, gin.H{"message": "item added to cart"})
}

// UpdateItem handles PUT /v1/cart/items/:productId
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	productID := c.Param("productId")

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.cartService.UpdateQuantity(c.Request.Context(), userID, productID, req.Quantity); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"message": "cart updated"})
}

// RemoveItem handles DELETE /v1/cart/items/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	productID := c.Param("productId")

	if err := h.cartService.RemoveItem(c.Request.Context(), userID, productID); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"message": "item removed from cart"})
}

// ClearCart handles DELETE /v1/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	if err := h.cartService.ClearCart(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"message": "cart cleared"})
}

func toCartResponse(items []*domain.CartItem) CartResponse {
	response := CartResponse{
		Items:       make([]CartItemResponse, 0, len(items)),
		TotalAmount: domain.CartTotal(items),
	}

	for _, item := range items {
		response.Items = append(response.Items, CartItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			ImageURL:  item.ImageURL,
		})
	}

	return response
}
