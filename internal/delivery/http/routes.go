package http

import (
	"github.com/gin-gonic/gin"
	"github.com/marlondridley/FarME/config"
	"github.com/marlondridley/FarME/internal/domain"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Marketplace discovery: public, richer when authenticated
		v1.GET("/explore", OptionalAuth(handler.users), handler.Explore)

		// Farm profiles
		farms := v1.Group("/farms")
		{
			farms.GET("", handler.ListFarms)
			farms.GET("/:id", handler.GetFarm)
			farms.PUT("/profile", RequireAuth(handler.users), RequireRole(domain.RoleFarmer), handler.SaveProfile)
		}

		// Product catalog
		v1.GET("/products", handler.ListProducts)

		// Orders
		orders := v1.Group("/orders", RequireAuth(handler.users))
		{
			orders.POST("", handler.PlaceOrder)
			orders.GET("", RequireRole(domain.RoleFarmer), handler.FarmOrders)
			orders.GET("/:id", handler.GetOrder)
		}

		// Generative suggestion flows
		suggestions := v1.Group("/suggestions", RequireAuth(handler.users))
		{
			suggestions.POST("/crops", RequireRole(domain.RoleFarmer), handler.SuggestCrops)
			suggestions.POST("/produce", handler.DiscoverProduce)
			suggestions.POST("/recipes", handler.SuggestRecipes)
		}

		// Accounts
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", handler.Signup)
			auth.GET("/me", RequireAuth(handler.users), handler.Me)
		}
	}

	return router
}
