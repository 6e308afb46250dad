// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/contact"
	"github.com/your-org/storefront-backend/internal/domain/session"
	"github.com/your-org/storefront-backend/internal/domain/settings"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-backend/internal/pkg/email"
	"gorm.io/gorm"
)

// SetupRoutes wires all API routes. Shared state lives here: one cart store
// so mutations serialize per cart, and one session broker so login and
// logout reach mounted gates.
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) {
	broker := session.NewBroker()
	cartStore := cart.NewStore(db, redisClient, cfg, logger)
	settingsService := settings.NewService(db, cfg)
	checkoutService := checkout.NewService(cfg, cartStore, settingsService)
	contactService := contact.NewService(cfg, email.NewMailer(cfg), settingsService)

	authHandler := handlers.NewAuthHandler(db, broker, cfg)
	productHandler := handlers.NewProductHandler(db, cfg)
	cartHandler := handlers.NewCartHandler(cartStore, cfg)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, cfg)
	settingsHandler := handlers.NewSettingsHandler(settingsService, cfg)
	contactHandler := handlers.NewContactHandler(contactService, cfg)
	adminHandler := handlers.NewAdminHandler(db, redisClient, broker, cfg)

	// Authentication
	auth := rg.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/profile", authHandler.GetProfile)
		}
	}

	// Catalog (public, optional auth for personalization)
	products := rg.Group("/products")
	products.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/categories", productHandler.GetCategories)
		products.GET("/slug/:slug", productHandler.GetProductBySlug)
		products.GET("/:id", productHandler.GetProduct)
	}

	// Cart (guest sessions or authenticated users)
	cartGroup := rg.Group("/cart")
	cartGroup.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.GET("/count", cartHandler.GetCartCount)
		cartGroup.POST("/items", cartHandler.AddToCart)
		cartGroup.PUT("/items/:id", cartHandler.UpdateCartItem)
		cartGroup.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cartGroup.DELETE("", cartHandler.ClearCart)
	}
	merge := rg.Group("/cart")
	merge.Use(middleware.AuthMiddleware(cfg))
	{
		merge.POST("/merge", cartHandler.MergeGuestCart)
	}

	// Checkout hand-off (guests included; WhatsApp is the only channel)
	checkoutGroup := rg.Group("/checkout")
	checkoutGroup.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		checkoutGroup.POST("/whatsapp", checkoutHandler.CreateHandoff)
	}

	// Public site settings and contact form
	rg.GET("/settings", settingsHandler.GetSettings)
	rg.POST("/contact", contactHandler.Submit)

	// Admin area
	admin := rg.Group("/admin")
	{
		// The gate itself is public: it is what decides whether the admin
		// client renders, redirects to login, or shows a diagnostic.
		admin.GET("/gate/:view", adminHandler.GateCheck)

		protected := admin.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		protected.Use(middleware.AdminMiddleware())
		{
			protected.GET("/dashboard", adminHandler.Dashboard)

			adminProducts := protected.Group("/products")
			{
				adminProducts.GET("", productHandler.AdminGetProducts)
				adminProducts.POST("", productHandler.AdminCreateProduct)
				adminProducts.PUT("/:id", productHandler.AdminUpdateProduct)
				adminProducts.DELETE("/:id", productHandler.AdminDeleteProduct)
			}

			protected.PUT("/settings", settingsHandler.UpdateSettings)
		}
	}
}
