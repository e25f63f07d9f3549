package api

import (
	"health_tracker/internal/domain"     // Importing domain models
	"health_tracker/internal/repository" // Repository operations
	"net/http"                           // HTTP status codes

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// CreateUserRequest represents a user creation request
type CreateUserRequest struct {
	Name string `json:"name" binding:"required"` // User name must be provided
}

// CreateUserHandler registers a new user
func CreateUserHandler(store *repository.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		id, err := store.CreateUser(c.Request.Context(), req.Name) // Attempt to create the user
		if err != nil {
			respondError(c, "Create user", err)
			return
		}
		invalidate(c.Request.Context(), rdb, usersNamespace) // Invalidate cached user lists
		logrus.WithFields(logrus.Fields{
			"user_id": id,       // User ID
			"name":    req.Name, // User name
		}).Info("User created")
		c.JSON(http.StatusCreated, gin.H{"id": id, "name": req.Name})
	}
}

// ListUsersHandler returns all users in insertion order
func ListUsersHandler(store *repository.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cached []domain.User // Try to get cached response
		cacheKey, found := readCache(c, rdb, usersNamespace, "all", &cached)
		if found {
			c.JSON(http.StatusOK, gin.H{"users": cached, "cached": true}) // Indicate response is from cache
			return
		}
		users, err := store.AllUsers(c.Request.Context()) // Fetch users
		if err != nil {
			respondError(c, "List users", err)
			return
		}
		writeCache(c.Request.Context(), rdb, cacheKey, users) // Cache the response
		c.JSON(http.StatusOK, gin.H{"users": users, "cached": false})
	}
}

// DeleteUserHandler removes a user and all of its data. The caller must pass
// confirm=true.
func DeleteUserHandler(store *repository.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name") // User to delete
		if c.Query("confirm") != "true" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Deleting a user removes all of their data; repeat with confirm=true"})
			return
		}
		if err := store.DeleteUser(c.Request.Context(), name); err != nil {
			respondError(c, "Delete user", err)
			return
		}
		invalidate(c.Request.Context(), rdb, usersNamespace, entriesNamespace) // Entries of the user are gone too
		c.JSON(http.StatusOK, gin.H{"message": "User '" + name + "' and all associated data have been deleted."})
	}
}
