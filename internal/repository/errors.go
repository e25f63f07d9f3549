package repository

import "github.com/pkg/errors"

// Validation errors
var (
	ErrMissingField    = errors.New("missing required field")
	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidCalories = errors.New("calories must not be negative")
	ErrInvalidWeek     = errors.New("invalid week number, expected YYYYWW")
)

// Not-found conditions
var (
	ErrUserNotFound = errors.New("user not found")
	ErrGoalNotFound = errors.New("goal not found")
)

// Uniqueness conflicts
var (
	ErrDuplicateUser = errors.New("user already exists")
	ErrDuplicateGoal = errors.New("goal already exists for user")
)

// ErrorKind groups repository failures by how a caller should report them.
type ErrorKind int

const (
	KindInternal   ErrorKind = iota // Storage or transaction failure
	KindValidation                  // Malformed input, nothing attempted
	KindNotFound                    // Referenced row absent
	KindConflict                    // Uniqueness would be violated
)

// Kind classifies err. Anything not produced by this package is KindInternal.
func Kind(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrMissingField), errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrInvalidCalories), errors.Is(err, ErrInvalidWeek):
		return KindValidation
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrGoalNotFound):
		return KindNotFound
	case errors.Is(err, ErrDuplicateUser), errors.Is(err, ErrDuplicateGoal):
		return KindConflict
	}
	return KindInternal
}
