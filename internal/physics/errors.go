package physics

import (
	"errors"

	"github.com/san-kum/physlab/internal/vec"
)

// Configuration errors. These are rejected synchronously; numeric edge cases
// never produce an error.
var (
	// ErrInvalidID indicates an empty object or force id.
	ErrInvalidID = errors.New("physics: invalid id")

	// ErrDuplicateID indicates an object id that is already registered.
	ErrDuplicateID = errors.New("physics: duplicate object id")

	// ErrMissingType indicates an object or force without a type.
	ErrMissingType = errors.New("physics: type is required")

	// ErrInvalidForce indicates a force descriptor that cannot be registered.
	ErrInvalidForce = errors.New("physics: invalid force")

	// ErrUnknownObjectType indicates an object type with no registered variant.
	ErrUnknownObjectType = errors.New("physics: unknown object type")

	// ErrUnknownItem indicates an item name missing from the attribute catalog.
	ErrUnknownItem = errors.New("physics: unknown catalog item")

	// ErrDivideByZero is returned by vector division by exactly zero.
	ErrDivideByZero = vec.ErrDivideByZero
)
