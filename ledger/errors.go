/*
errors.go - Centralized error types for the ledger and engine layers

PURPOSE:
  All sentinel errors in one place for consistency and discoverability.
  The engine package wraps these with per-ingredient context.

ERROR CATEGORIES:
  1. Data errors - empty or unusable ledger input
  2. Lookup errors - references to unknown ingredients or menu items
  3. Store errors - persistence-level failures

USAGE:
  Callers branch with errors.Is:

    if errors.Is(err, ledger.ErrIngredientNotFound) {
        // treat as "no data", not a failure
    }

SEE ALSO:
  - store.go: store implementations return these
  - engine: wraps these with ingredient/menu-item context
*/
package ledger

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEmptyDataset is returned when an operation needs ledger rows and the
	// dataset has none. Report-style operations return empty results instead.
	ErrEmptyDataset = errors.New("dataset is empty")

	// ErrIngredientNotFound is returned when a named ingredient appears in no
	// ledger and cannot be matched to one.
	ErrIngredientNotFound = errors.New("ingredient not found")

	// ErrMenuItemNotFound is returned when a menu item appears in neither the
	// sales ledger nor the recipe matrix.
	ErrMenuItemNotFound = errors.New("menu item not found")

	// ErrInvalidPeriod is returned when a requested window ends before it starts
	// or has a non-positive horizon.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrUnknownStrategy is returned for an unrecognized forecast method name.
	ErrUnknownStrategy = errors.New("unknown forecast strategy")

	// ErrStoreClosed is returned by store operations after Close.
	ErrStoreClosed = errors.New("store is closed")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// NotFoundError identifies which name failed to resolve and in which ledger.
type NotFoundError struct {
	Name   string
	Ledger string // "purchases", "usage", "sales", "shipments", "master"
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%q not found in %s ledger", e.Name, e.Ledger)
}

func (e *NotFoundError) Unwrap() error { return ErrIngredientNotFound }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNoData reports whether the error means "nothing to compute" rather than
// an actual failure.
func IsNoData(err error) bool {
	return errors.Is(err, ErrEmptyDataset) ||
		errors.Is(err, ErrIngredientNotFound) ||
		errors.Is(err, ErrMenuItemNotFound)
}

// IsClientError reports whether the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrUnknownStrategy)
}
