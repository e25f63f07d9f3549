package domain

// MealPlan Model
type MealPlan struct {
	ID         uint    `gorm:"primaryKey" json:"id"`          // Primary key
	UserID     uint    `gorm:"not null;index" json:"user_id"` // Foreign key to User
	WeekNumber int     `gorm:"not null" json:"week_number"`   // Year and ISO week, e.g. 202523
	Details    *string `json:"details,omitempty"`             // Free-text plan, NULL when absent
}
