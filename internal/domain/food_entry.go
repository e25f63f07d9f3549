package domain

import "gorm.io/datatypes" // Calendar date column type

// DateLayout is the canonical calendar date form accepted and printed everywhere.
const DateLayout = "2006-01-02"

// FoodEntry Model
type FoodEntry struct {
	ID       uint           `gorm:"primaryKey"`                   // Primary key
	UserID   uint           `gorm:"not null;index"`               // Foreign key to User
	FoodName string         `gorm:"not null"`                     // Name of the food item
	Calories int            `gorm:"not null;check:calories >= 0"` // Calorie count, never negative
	Date     datatypes.Date `gorm:"not null;index"`               // Consumption date
}
