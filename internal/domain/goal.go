package domain

// Goal Model
type Goal struct {
	ID             uint `gorm:"primaryKey" json:"id"`                // Primary key
	UserID         uint `gorm:"uniqueIndex;not null" json:"user_id"` // Foreign key to User, at most one goal per user
	DailyCalories  int  `gorm:"not null" json:"daily_calories"`      // Daily calorie target
	WeeklyCalories int  `gorm:"not null" json:"weekly_calories"`     // Weekly calorie target
}
