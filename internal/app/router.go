package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"campease/internal/domain"
	"campease/internal/handler"
	"campease/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler    *handler.AuthHandler
	ProductHandler *handler.ProductHandler
	CartHandler    *handler.CartHandler
	PaymentHandler *handler.PaymentHandler
	FinanceHandler *handler.FinanceHandler
	RentalHandler  *handler.RentalHandler
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
	JWTSecret      string
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	requireAuth := middleware.RequireAuth(deps.JWTSecret)

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Auth routes.
		auth := v1.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
		}

		// Catalog routes. Reads are public, writes are inventory-only.
		requireCatalogWrite := middleware.RequireRole(domain.RoleInventory, domain.RoleAdmin)
		products := v1.Group("/products")
		{
			products.GET("", deps.ProductHandler.GetAll)
			products.GET("/:id", deps.ProductHandler.GetByID)
			products.POST("", requireAuth, requireCatalogWrite, deps.ProductHandler.Create)
			products.PUT("/:id", requireAuth, requireCatalogWrite, deps.ProductHandler.Update)
		}

		// Cart routes.
		cart := v1.Group("/cart", requireAuth)
		{
			cart.GET("", deps.CartHandler.GetCart)
			cart.DELETE("", deps.CartHandler.ClearCart)
			cart.POST("/items", deps.CartHandler.AddItem)
			cart.PUT("/items/:productId", deps.CartHandler.UpdateItem)
			cart.DELETE("/items/:productId", deps.CartHandler.RemoveItem)
		}

		// Payment routes.
		payment := v1.Group("/payment", requireAuth)
		{
			payment.POST("/create-checkout-session", deps.PaymentHandler.CreateCheckoutSession)
			payment.POST("/confirm-payment", deps.PaymentHandler.ConfirmPayment)
			payment.GET("/settlements/:id", deps.PaymentHandler.GetSettlement)
		}

		// Customer history routes.
		v1.GET("/rentals", requireAuth, deps.RentalHandler.ListRentals)
		v1.GET("/payments/history", requireAuth, deps.RentalHandler.ListPayments)

		// Finance dashboard routes.
		finance := v1.Group("/finance", requireAuth, middleware.RequireRole(domain.RoleFinance, domain.RoleAdmin))
		{
			finance.GET("/transactions", deps.FinanceHandler.ListTransactions)
			finance.POST("/refund/:transactionId", deps.FinanceHandler.Refund)
		}
	}

	return router
}
