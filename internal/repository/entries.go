package repository

import (
	"context" // Request scoping

	"health_tracker/internal/domain" // Importing domain models

	"github.com/pkg/errors" // Error wrapping
	"gorm.io/datatypes"     // Calendar date column type
	"gorm.io/gorm"          // GORM ORM library
)

// EntryFilter narrows ListFoodEntries. Empty fields do not filter.
type EntryFilter struct {
	User string // Owning user name
	Date string // Consumption date, YYYY-MM-DD
}

// FoodEntryView is a food entry resolved to its owner's name
type FoodEntryView struct {
	ID       uint   `json:"id"`        // Entry ID
	UserName string `json:"user"`      // Owning user name
	FoodName string `json:"food_name"` // Food item
	Calories int    `json:"calories"`  // Calorie count
	Date     string `json:"date"`      // YYYY-MM-DD
}

type entryRow struct {
	ID       uint
	UserName string
	FoodName string
	Calories int
	Date     datatypes.Date
}

// AddFoodEntry records a consumption for an existing user
func (s *Store) AddFoodEntry(ctx context.Context, userName, foodName string, calories int, date string) (uint, error) {
	if foodName == "" {
		return 0, errors.Wrap(ErrMissingField, "food name")
	}
	var id uint
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := findUser(tx, userName)
		if err != nil {
			return err
		}
		day, err := ParseDate(date)
		if err != nil {
			return err
		}
		if calories < 0 {
			return errors.Wrapf(ErrInvalidCalories, "got %d", calories)
		}
		entry := domain.FoodEntry{
			UserID:   user.ID,  // Resolved owner
			FoodName: foodName, // Food item
			Calories: calories, // Calorie count
			Date:     day,      // Consumption date
		}
		if err := tx.Create(&entry).Error; err != nil {
			return errors.Wrap(err, "failed to create food entry")
		}
		id = entry.ID
		return nil
	})
	return id, err
}

// ListFoodEntries returns the entries matching every supplied filter, oldest
// first. An unknown user or a malformed date fails before any entry is read.
func (s *Store) ListFoodEntries(ctx context.Context, filter EntryFilter) ([]FoodEntryView, error) {
	tx := s.conn(ctx)
	query := tx.Table("food_entries").
		Select("food_entries.id, food_entries.food_name, food_entries.calories, food_entries.date, COALESCE(users.name, 'N/A') AS user_name").
		Joins("LEFT JOIN users ON users.id = food_entries.user_id")

	if filter.User != "" {
		user, err := findUser(tx, filter.User)
		if err != nil {
			return nil, err
		}
		query = query.Where("food_entries.user_id = ?", user.ID)
	}
	if filter.Date != "" {
		day, err := ParseDate(filter.Date)
		if err != nil {
			return nil, err
		}
		query = query.Where("food_entries.date = ?", day)
	}

	var rows []entryRow
	if err := query.Order("food_entries.id").Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list food entries")
	}
	views := make([]FoodEntryView, len(rows))
	for i, r := range rows {
		views[i] = FoodEntryView{
			ID:       r.ID,
			UserName: r.UserName,
			FoodName: r.FoodName,
			Calories: r.Calories,
			Date:     FormatDate(r.Date),
		}
	}
	return views, nil
}

// DailyCalories sums a user's calories for one day
func (s *Store) DailyCalories(ctx context.Context, userName, date string) (int, error) {
	tx := s.conn(ctx)
	user, err := findUser(tx, userName)
	if err != nil {
		return 0, err
	}
	day, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	var total int
	err = tx.Model(&domain.FoodEntry{}).
		Select("COALESCE(SUM(calories), 0)").
		Where("user_id = ? AND date = ?", user.ID, day).
		Scan(&total).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to sum calories")
	}
	return total, nil
}
