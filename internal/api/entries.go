package api

import (
	"health_tracker/internal/repository" // Repository operations
	"net/http"                           // HTTP status codes

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// FoodEntryRequest represents a food entry submission
type FoodEntryRequest struct {
	User     string `json:"user" binding:"required"`     // Owning user name
	Food     string `json:"food" binding:"required"`     // Food item
	Calories *int   `json:"calories" binding:"required"` // Calorie count, zero allowed
	Date     string `json:"date" binding:"required"`     // YYYY-MM-DD
}

// AddFoodEntryHandler records a food entry
func AddFoodEntryHandler(store *repository.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FoodEntryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		id, err := store.AddFoodEntry(c.Request.Context(), req.User, req.Food, *req.Calories, req.Date)
		if err != nil {
			respondError(c, "Add food entry", err)
			return
		}
		invalidate(c.Request.Context(), rdb, entriesNamespace) // Invalidate cached entry lists
		logrus.WithFields(logrus.Fields{
			"entry_id": id,            // Entry ID
			"user":     req.User,      // User name
			"calories": *req.Calories, // Calorie count
			"date":     req.Date,      // Consumption date
		}).Info("Food entry added")
		c.JSON(http.StatusCreated, gin.H{"id": id})
	}
}

// ListFoodEntriesHandler lists entries, optionally filtered by user and date
func ListFoodEntriesHandler(store *repository.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := repository.EntryFilter{
			User: c.Query("user"), // Optional user filter
			Date: c.Query("date"), // Optional date filter
		}
		var cached []repository.FoodEntryView // Try to get cached response
		cacheKey, found := readCache(c, rdb, entriesNamespace, "user="+filter.User+":date="+filter.Date, &cached)
		if found {
			c.JSON(http.StatusOK, gin.H{"entries": cached, "cached": true}) // Indicate response is from cache
			return
		}
		entries, err := store.ListFoodEntries(c.Request.Context(), filter)
		if err != nil {
			respondError(c, "List food entries", err)
			return
		}
		writeCache(c.Request.Context(), rdb, cacheKey, entries) // Cache the response
		c.JSON(http.StatusOK, gin.H{"entries": entries, "cached": false})
	}
}
