// internal/router/router.go
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/javajoker/vinyl-storefront/internal/config"
	"github.com/javajoker/vinyl-storefront/internal/handlers"
	"github.com/javajoker/vinyl-storefront/internal/middleware"
	"github.com/javajoker/vinyl-storefront/internal/services"
)

// Services are the application services the routes are bound to.
type Services struct {
	Catalog  *services.CatalogService
	Carts    *services.CartService
	Checkout *services.CheckoutService
}

// NewServices wires the cart and checkout services around a loaded (or
// not yet loaded) catalog.
func NewServices(cfg *config.Config, catalog *services.CatalogService, storage services.CartStorage) Services {
	carts := services.NewCartService(storage, catalog, cfg.Cart.KeyPrefix)
	return Services{
		Catalog:  catalog,
		Carts:    carts,
		Checkout: services.NewCheckoutService(carts, cfg.Checkout),
	}
}

func Initialize(svc Services, cfg *config.Config) *gin.Engine {
	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(svc.Catalog)
	cartHandler := handlers.NewCartHandler(svc.Carts, svc.Catalog)
	checkoutHandler := handlers.NewCheckoutHandler(svc.Checkout, svc.Catalog)

	generalLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
	cartLimiter := middleware.NewRateLimiter(rate.Limit(cfg.Cart.MutationRate), cfg.Cart.MutationBurst)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware())
	r.Use(generalLimiter.Middleware())

	// Health check
	r.GET("/health", healthHandler(svc))

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Catalog routes (public, no session needed)
		catalog := v1.Group("/catalog")
		{
			catalog.GET("", catalogHandler.GetCatalog)
			catalog.GET("/bounds", catalogHandler.GetBounds)
			catalog.GET("/genres", catalogHandler.GetGenres)
			catalog.GET("/:id", catalogHandler.GetItem)
		}

		// Cart routes
		cart := v1.Group("/cart")
		cart.Use(middleware.Session(cfg.Cart))
		{
			cart.GET("", cartHandler.GetCart)

			mutations := cart.Group("")
			mutations.Use(cartLimiter.Middleware())
			{
				mutations.POST("/items", cartHandler.AddItem)
				mutations.PUT("/items/:index", cartHandler.UpdateItem)
				mutations.DELETE("/items/:index", cartHandler.RemoveItem)
				mutations.DELETE("", cartHandler.EmptyCart)
			}
		}

		// Checkout routes
		checkout := v1.Group("/checkout")
		{
			checkout.POST("", middleware.Session(cfg.Cart), checkoutHandler.Checkout)
			checkout.POST("/buy-now", middleware.Session(cfg.Cart), cartLimiter.Middleware(), checkoutHandler.BuyNow)

			// read by the external checkout page; the token is the credential
			checkout.GET("/cart", checkoutHandler.GetHandoffCart)
		}
	}

	return r
}

func healthHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		storage := "ok"
		if err := svc.Carts.Storage().Ping(ctx); err != nil {
			storage = "unavailable"
		}

		status := "healthy"
		code := http.StatusOK
		if storage != "ok" {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":         status,
			"version":        "1.0.0",
			"catalog_loaded": svc.Catalog.Loaded(),
			"cart_storage":   storage,
		})
	}
}
