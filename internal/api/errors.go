package api

import (
	"health_tracker/internal/repository" // Repository error kinds
	"net/http"                           // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// respondError maps a repository failure onto an HTTP status
func respondError(c *gin.Context, action string, err error) {
	switch repository.Kind(err) {
	case repository.KindValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()}) // Malformed input
	case repository.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()}) // Referenced row absent
	case repository.KindConflict:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()}) // Uniqueness conflict
	default:
		// Log the error with context
		logrus.WithFields(logrus.Fields{
			"action": action,       // Failed operation
			"path":   c.FullPath(), // Route
			"error":  err.Error(),  // Error message
		}).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": action + " failed"})
	}
}
