package leaderboard

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateName is returned when a player name is already taken.
	ErrDuplicateName = errors.New("duplicate player name")
	// ErrNotFound is returned when a referenced player does not exist.
	ErrNotFound = errors.New("player not found")
	// ErrInvalidArgument is returned for structurally invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Role names which side of a match an unresolved name was given for.
type Role string

const (
	RoleNone   Role = ""
	RoleWinner Role = "winner"
	RoleLoser  Role = "loser"
)

// NotFoundError reports the name that could not be resolved.
type NotFoundError struct {
	Name string
	Role Role
}

func (e *NotFoundError) Error() string {
	if e.Role != RoleNone {
		return fmt.Sprintf("%s '%s' not found", e.Role, e.Name)
	}
	return fmt.Sprintf("player '%s' not found", e.Name)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// DuplicateNameError reports the name that already exists.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("player '%s' already exists", e.Name)
}

func (e *DuplicateNameError) Is(target error) bool { return target == ErrDuplicateName }

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
