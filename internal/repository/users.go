package repository

import (
	"context" // Request scoping
	"iter"    // Lazy sequences

	"health_tracker/internal/domain" // Importing domain models

	"github.com/pkg/errors"      // Error wrapping
	"github.com/sirupsen/logrus" // Structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// CreateUser inserts a user and returns its id. An existing name yields
// ErrDuplicateUser and leaves the table untouched.
func (s *Store) CreateUser(ctx context.Context, name string) (uint, error) {
	if name == "" {
		return 0, errors.Wrap(ErrMissingField, "user name")
	}
	var id uint
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.User{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to check user name")
		}
		if count > 0 {
			return errors.Wrapf(ErrDuplicateUser, "user %q", name)
		}
		user := domain.User{Name: name}
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errors.Wrapf(ErrDuplicateUser, "user %q", name) // Lost a race on the unique index
			}
			return errors.Wrap(err, "failed to create user")
		}
		id = user.ID
		return nil
	})
	return id, err
}

// ListUsers returns every user in insertion order. The sequence is lazy and
// restartable: each range runs a fresh query and closes its rows when done.
func (s *Store) ListUsers(ctx context.Context) iter.Seq2[domain.User, error] {
	return func(yield func(domain.User, error) bool) {
		tx := s.conn(ctx)
		rows, err := tx.Model(&domain.User{}).Order("id").Rows()
		if err != nil {
			yield(domain.User{}, errors.Wrap(err, "failed to list users"))
			return
		}
		defer rows.Close() // Release the connection on every exit path
		for rows.Next() {
			var user domain.User
			if err := tx.ScanRows(rows, &user); err != nil {
				yield(domain.User{}, errors.Wrap(err, "failed to scan user"))
				return
			}
			if !yield(user, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(domain.User{}, errors.Wrap(err, "failed to list users"))
		}
	}
}

// AllUsers drains ListUsers into a slice
func (s *Store) AllUsers(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	for user, err := range s.ListUsers(ctx) {
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// DeleteUser removes a user together with its food entries, goal and meal
// plans in one transaction. Any failure rolls every deletion back.
func (s *Store) DeleteUser(ctx context.Context, name string) error {
	var removed struct{ entries, goals, plans int64 }
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := findUser(tx, name)
		if err != nil {
			return err
		}
		// Delete associated food entries
		res := tx.Where("user_id = ?", user.ID).Delete(&domain.FoodEntry{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "failed to delete food entries")
		}
		removed.entries = res.RowsAffected
		// Delete associated goal
		res = tx.Where("user_id = ?", user.ID).Delete(&domain.Goal{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "failed to delete goal")
		}
		removed.goals = res.RowsAffected
		// Delete associated meal plans
		res = tx.Where("user_id = ?", user.ID).Delete(&domain.MealPlan{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "failed to delete meal plans")
		}
		removed.plans = res.RowsAffected
		// Delete the user
		if err := tx.Delete(user).Error; err != nil {
			return errors.Wrap(err, "failed to delete user row")
		}
		return nil // Commit transaction
	})
	if err != nil {
		if Kind(err) == KindInternal {
			logrus.WithFields(logrus.Fields{
				"user":  name,        // User name
				"error": err.Error(), // Error message
			}).Error("User deletion rolled back") // Log cascade failure
		}
		return err
	}
	logrus.WithFields(logrus.Fields{
		"user":         name,            // User name
		"food_entries": removed.entries, // Deleted food entries
		"goals":        removed.goals,   // Deleted goals
		"meal_plans":   removed.plans,   // Deleted meal plans
	}).Info("User deleted")
	return nil
}

// GetUser resolves a user by name
func (s *Store) GetUser(ctx context.Context, name string) (*domain.User, error) {
	return findUser(s.conn(ctx), name)
}
