package api

import (
	"health_tracker/internal/middleware" // Custom package for middleware
	"health_tracker/internal/repository" // Repository operations
	"net/http"                           // HTTP status codes

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// RouterConfig wires the HTTP surface
type RouterConfig struct {
	Store     *repository.Store // Repository operations
	Redis     *redis.Client     // Optional list cache
	JWTSecret string            // Empty disables token checks
}

// NewRouter builds the gin engine serving every repository operation
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()                      // Gin router instance
	r.Use(gin.Logger(), gin.Recovery()) // Request logging and panic recovery

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protected := r.Group("")
	if cfg.JWTSecret != "" {
		protected.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret)) // Protect everything below with JWT
	}

	// User routes
	protected.POST("/users", CreateUserHandler(cfg.Store, cfg.Redis)) // Create user endpoint
	protected.GET("/users", ListUsersHandler(cfg.Store, cfg.Redis))   // List users endpoint

	// Routes owned by one user
	owned := protected.Group("/users/:name")
	owned.Use(middleware.SameUserMiddleware())
	owned.DELETE("", DeleteUserHandler(cfg.Store, cfg.Redis)) // Delete user endpoint
	owned.POST("/goal", CreateGoalHandler(cfg.Store))         // Create goal endpoint
	owned.GET("/goal", GetGoalHandler(cfg.Store))             // Get goal endpoint
	owned.POST("/plans", AddMealPlanHandler(cfg.Store))       // Add meal plan endpoint
	owned.GET("/plans", ListMealPlansHandler(cfg.Store))      // List meal plans endpoint

	// Food entry routes
	protected.POST("/entries", AddFoodEntryHandler(cfg.Store, cfg.Redis))   // Add food entry endpoint
	protected.GET("/entries", ListFoodEntriesHandler(cfg.Store, cfg.Redis)) // List food entries endpoint

	return r
}
