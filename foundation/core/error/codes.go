// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used to classify failures across the
//              grocer tool: catalog grammar failures, field coercion, shopping
//              list formatting, aggregation lookups, storage and configuration.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-16
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-16 v0.2.0: Replaced platform codes with catalog and pricing codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Catalog and shopping list parsing
	CodeGrammar       Code = "GRAMMAR"
	CodeFieldCoercion Code = "FIELD_COERCION"
	CodeItemFormat    Code = "ITEM_FORMAT"
	CodeUnitMismatch  Code = "UNIT_MISMATCH"
	CodeEmptyCatalog  Code = "EMPTY_CATALOG"

	// Storage
	CodeStorageError     Code = "STORAGE_ERROR"
	CodeUnsupportedStore Code = "UNSUPPORTED_STORE"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// Category groups a code into a coarse family used for log fields
func (c Code) Category() string {
	switch c {
	case CodeGrammar, CodeFieldCoercion, CodeItemFormat:
		return "parse"
	case CodeNotFound, CodeUnitMismatch, CodeEmptyCatalog:
		return "pricing"
	case CodeStorageError, CodeUnsupportedStore:
		return "storage"
	case CodeConfigError, CodeInvalidConfig:
		return "config"
	case CodeInvalidInput:
		return "input"
	default:
		return "general"
	}
}
