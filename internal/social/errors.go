package social

import (
	"errors"
	"fmt"
)

// ErrUserNotFound reports that a user id has no document.
type ErrUserNotFound struct {
	UserID string
}

func (e ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrInvalidOperation reports a relationship precondition failure.
// The operation was rejected before any write happened.
type ErrInvalidOperation struct {
	Operation string
	UserID    string
	TargetID  string
	Reason    string
}

func (e ErrInvalidOperation) Error() string {
	return fmt.Sprintf("cannot %s %s -> %s: %s", e.Operation, e.UserID, e.TargetID, e.Reason)
}

// IsNotFound reports whether err is a missing-user failure.
func IsNotFound(err error) bool {
	var notFound ErrUserNotFound
	return errors.As(err, &notFound)
}

// IsInvalidOperation reports whether err is a rejected relationship
// precondition.
func IsInvalidOperation(err error) bool {
	var invalid ErrInvalidOperation
	return errors.As(err, &invalid)
}
