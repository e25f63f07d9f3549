package domain

// User Model
type User struct {
	ID          uint        `gorm:"primaryKey" json:"id"`                                    // Primary key, assigned by the store
	Name        string      `gorm:"uniqueIndex;not null" json:"name"`                        // Unique display name
	FoodEntries []FoodEntry `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"` // One-to-many relationship with FoodEntry
	Goal        *Goal       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"` // One-to-one relationship with Goal
	MealPlans   []MealPlan  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"` // One-to-many relationship with MealPlan
}
