package store

import (
	"errors"
	"fmt"
)

// Common store errors.
var (
	// ErrNotFound is the generic form of the entity-specific not found
	// errors below; errors.Is(err, ErrNotFound) matches any of them.
	ErrNotFound = errors.New("entity not found")

	// ErrTaskNotFound indicates the requested task does not exist, or is
	// not visible to the caller when ownership is part of the lookup.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)

	// ErrCategoryNotFound indicates the referenced category does not exist.
	ErrCategoryNotFound = fmt.Errorf("%w: category", ErrNotFound)

	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)
)
