package seed

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for seeding.
var (
	// ErrUnsupportedPolicy indicates a policy that cannot be seeded.
	ErrUnsupportedPolicy = errors.New("unsupported policy")

	// ErrUnsupportedType indicates a type name or decoded value with no
	// property mapping.
	ErrUnsupportedType = errors.New("unsupported value type")

	// ErrInvalidValue indicates a value that cannot be converted to its
	// declared type.
	ErrInvalidValue = errors.New("invalid value")
)

// DeclarationError reports the configuration key whose declaration failed.
type DeclarationError struct {
	// Key is the composite key of the declaration.
	Key string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *DeclarationError) Error() string {
	return fmt.Sprintf("seed %q: %v", e.Key, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *DeclarationError) Unwrap() error {
	return e.Err
}

// UndefinedVariableError lists variables referenced but not defined.
type UndefinedVariableError struct {
	// Names is the list of undefined variable names.
	Names []string
}

// Error implements the error interface.
func (e *UndefinedVariableError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("undefined variable: %s", e.Names[0])
	}
	return fmt.Sprintf("undefined variables: %s", strings.Join(e.Names, ", "))
}
