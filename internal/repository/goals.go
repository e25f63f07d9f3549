package repository

import (
	"context" // Request scoping

	"health_tracker/internal/domain" // Importing domain models

	"github.com/pkg/errors" // Error wrapping
	"gorm.io/gorm"          // GORM ORM library
)

// CreateGoal stores the calorie targets of a user. A user holds at most one
// goal; a second attempt yields ErrDuplicateGoal.
func (s *Store) CreateGoal(ctx context.Context, userName string, daily, weekly int) (uint, error) {
	if daily < 0 || weekly < 0 {
		return 0, errors.Wrapf(ErrInvalidCalories, "daily %d, weekly %d", daily, weekly)
	}
	var id uint
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := findUser(tx, userName)
		if err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&domain.Goal{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to check goal")
		}
		if count > 0 {
			return errors.Wrapf(ErrDuplicateGoal, "user %q", userName)
		}
		goal := domain.Goal{UserID: user.ID, DailyCalories: daily, WeeklyCalories: weekly}
		if err := tx.Create(&goal).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errors.Wrapf(ErrDuplicateGoal, "user %q", userName)
			}
			return errors.Wrap(err, "failed to create goal")
		}
		id = goal.ID
		return nil
	})
	return id, err
}

// GetGoal returns the goal of a user
func (s *Store) GetGoal(ctx context.Context, userName string) (*domain.Goal, error) {
	tx := s.conn(ctx)
	user, err := findUser(tx, userName)
	if err != nil {
		return nil, err
	}
	var goal domain.Goal
	err = tx.Where("user_id = ?", user.ID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(ErrGoalNotFound, "user %q", userName)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load goal")
	}
	return &goal, nil
}
