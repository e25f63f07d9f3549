package repository

import (
	"context" // Request scoping

	"health_tracker/internal/domain" // Importing domain models

	"github.com/pkg/errors" // Error wrapping
	"gorm.io/gorm"          // GORM ORM library
)

// ValidWeekNumber reports whether week encodes YYYYWW with an ISO week 1..53
func ValidWeekNumber(week int) bool {
	year, wk := week/100, week%100
	return year >= 1000 && year <= 9999 && wk >= 1 && wk <= 53
}

// AddMealPlan records a plan for one week. Empty details are stored as NULL.
func (s *Store) AddMealPlan(ctx context.Context, userName string, week int, details string) (uint, error) {
	if !ValidWeekNumber(week) {
		return 0, errors.Wrapf(ErrInvalidWeek, "got %d", week)
	}
	var id uint
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := findUser(tx, userName)
		if err != nil {
			return err
		}
		plan := domain.MealPlan{UserID: user.ID, WeekNumber: week}
		if details != "" {
			plan.Details = &details
		}
		if err := tx.Create(&plan).Error; err != nil {
			return errors.Wrap(err, "failed to create meal plan")
		}
		id = plan.ID
		return nil
	})
	return id, err
}

// ListMealPlans returns the plans of a user ordered by week
func (s *Store) ListMealPlans(ctx context.Context, userName string) ([]domain.MealPlan, error) {
	tx := s.conn(ctx)
	user, err := findUser(tx, userName)
	if err != nil {
		return nil, err
	}
	plans := []domain.MealPlan{}
	if err := tx.Where("user_id = ?", user.ID).Order("week_number, id").Find(&plans).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list meal plans")
	}
	return plans, nil
}
