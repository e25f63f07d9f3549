package api

import (
	"health_tracker/internal/repository" // Repository operations
	"net/http"                           // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// GoalRequest represents calorie targets
type GoalRequest struct {
	DailyCalories  *int `json:"daily_calories" binding:"required"`  // Daily target
	WeeklyCalories *int `json:"weekly_calories" binding:"required"` // Weekly target
}

// MealPlanRequest represents a weekly plan
type MealPlanRequest struct {
	WeekNumber int    `json:"week_number" binding:"required"` // YYYYWW
	Details    string `json:"details"`                        // Optional free text
}

// CreateGoalHandler sets the one goal a user may have
func CreateGoalHandler(store *repository.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GoalRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		id, err := store.CreateGoal(c.Request.Context(), c.Param("name"), *req.DailyCalories, *req.WeeklyCalories)
		if err != nil {
			respondError(c, "Create goal", err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": id})
	}
}

// GetGoalHandler returns a user's goal
func GetGoalHandler(store *repository.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		goal, err := store.GetGoal(c.Request.Context(), c.Param("name"))
		if err != nil {
			respondError(c, "Get goal", err)
			return
		}
		c.JSON(http.StatusOK, goal)
	}
}

// AddMealPlanHandler records a meal plan for a week
func AddMealPlanHandler(store *repository.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MealPlanRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		id, err := store.AddMealPlan(c.Request.Context(), c.Param("name"), req.WeekNumber, req.Details)
		if err != nil {
			respondError(c, "Add meal plan", err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": id})
	}
}

// ListMealPlansHandler returns a user's meal plans ordered by week
func ListMealPlansHandler(store *repository.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		plans, err := store.ListMealPlans(c.Request.Context(), c.Param("name"))
		if err != nil {
			respondError(c, "List meal plans", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"meal_plans": plans})
	}
}
