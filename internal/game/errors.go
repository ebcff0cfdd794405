/*
Package game
File: errors.go
Description:
    Structured domain errors. Every failure carries a machine-readable Code
    and metadata naming the offending entity (item, ingredient, required item).
    Callers compare with errors.Is against the exported sentinels.
*/

package game

import "errors"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an error that did not come from this package.
	CodeUnknown Code = "UNKNOWN"

	// Craft errors
	CodeNotCraftable           Code = "NOT_CRAFTABLE"
	CodeItemDisabled           Code = "ITEM_DISABLED"
	CodeInvalidAmount          Code = "INVALID_AMOUNT"
	CodeMissingPrerequisite    Code = "MISSING_PREREQUISITE"
	CodeInsufficientBalance    Code = "INSUFFICIENT_BALANCE"
	CodeInsufficientIngredient Code = "INSUFFICIENT_INGREDIENT"

	// Farm errors
	CodeFarmNotFound Code = "FARM_NOT_FOUND"

	// Catalog errors
	CodeInvalidCatalog Code = "INVALID_CATALOG"
)

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Human readable message
	Metadata map[string]string // Offending entity (item, ingredient, requires...)
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Sentinels for errors.Is comparisons. They match any *Error with the same code.
var (
	ErrNotCraftable           = &Error{Code: CodeNotCraftable, Message: "item is not craftable"}
	ErrItemDisabled           = &Error{Code: CodeItemDisabled, Message: "item is disabled"}
	ErrInvalidAmount          = &Error{Code: CodeInvalidAmount, Message: "invalid amount"}
	ErrMissingPrerequisite    = &Error{Code: CodeMissingPrerequisite, Message: "missing prerequisite"}
	ErrInsufficientBalance    = &Error{Code: CodeInsufficientBalance, Message: "insufficient balance"}
	ErrInsufficientIngredient = &Error{Code: CodeInsufficientIngredient, Message: "insufficient ingredient"}
	ErrFarmNotFound           = &Error{Code: CodeFarmNotFound, Message: "farm not found"}
	ErrInvalidCatalog         = &Error{Code: CodeInvalidCatalog, Message: "invalid catalog"}
)

func newError(code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata}
}

// CodeOf extracts the domain code from err, or CodeUnknown.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}
