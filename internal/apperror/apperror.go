// Package apperror defines the typed errors the core returns to its callers.
// The UI maps them to blocking validation messages or a generic failure notice,
// so no storage details leak into what the user sees.
package apperror

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is wrapped by services when a list, product or recipe does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is wrapped when an operation would break a referential rule,
	// e.g. deleting a product still used by a shopping list.
	ErrConflict = errors.New("conflict")
)

// InvalidSelection reports a malformed entry in a submitted product selection.
// Index is the position of the entry in the submitted slice.
type InvalidSelection struct {
	Index     int
	ProductID string
	Reason    string
}

func (e *InvalidSelection) Error() string {
	if e.ProductID == "" {
		return fmt.Sprintf("invalid selection at entry %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("invalid selection at entry %d (product %s): %s", e.Index, e.ProductID, e.Reason)
}

func NewInvalidSelection(index int, productID, reason string) *InvalidSelection {
	return &InvalidSelection{Index: index, ProductID: productID, Reason: reason}
}

// ProductNotFound is raised when a line item references a product that is gone.
// Cost aggregation treats it as a skip, never as a failure.
type ProductNotFound struct {
	ID uuid.UUID
}

func (e *ProductNotFound) Error() string {
	return fmt.Sprintf("product %s not found", e.ID)
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Detail, e.Fields)
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation failed", Fields: fields}
}

// IsInvalidSelection reports whether err carries an *InvalidSelection.
func IsInvalidSelection(err error) bool {
	var sel *InvalidSelection
	return errors.As(err, &sel)
}
