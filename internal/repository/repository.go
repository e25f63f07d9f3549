// Package repository implements every persistence operation of the health
// tracker. Each exported method is its own transaction boundary; no entity
// fetched here outlives the call that produced it.
package repository

import (
	"context" // Request scoping
	"time"    // Date parsing

	"health_tracker/internal/domain" // Importing domain models

	"github.com/pkg/errors" // Error wrapping
	"gorm.io/datatypes"     // Calendar date column type
	"gorm.io/gorm"          // GORM ORM library
)

// Store runs repository operations against one storage handle
type Store struct {
	db *gorm.DB
}

// New wraps an opened and migrated storage handle
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle, mainly for tests and migrations
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// findUser resolves a user by name inside tx
func findUser(tx *gorm.DB, name string) (*domain.User, error) {
	if name == "" {
		return nil, errors.Wrap(ErrMissingField, "user name")
	}
	var user domain.User
	err := tx.Where("name = ?", name).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(ErrUserNotFound, "user %q", name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to look up user %q", name)
	}
	return &user, nil
}

// ParseDate accepts only the canonical YYYY-MM-DD form
func ParseDate(value string) (datatypes.Date, error) {
	t, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return datatypes.Date{}, errors.Wrapf(ErrInvalidDate, "%q", value)
	}
	return datatypes.Date(t), nil
}

// FormatDate renders a stored date in the canonical form
func FormatDate(date datatypes.Date) string {
	return time.Time(date).Format(domain.DateLayout)
}
