// Package service implements the business rules of the marketplace,
// chiefly the resource-ownership policy: which verified subject may
// read, mutate or delete which records, and with what implicit filters.
package service

import "errors"

// Sentinel errors mapped to HTTP statuses by the handler layer.
var (
	// ErrInvalidID means a resource identifier is not structurally
	// valid. Checked before any query runs.
	ErrInvalidID = errors.New("invalid resource id")

	// ErrForbidden means an authenticated subject asked for records on
	// behalf of a different identity.
	ErrForbidden = errors.New("forbidden access")

	// ErrNotFound means a structurally valid identifier matched no
	// record. Used only for public lookups; owner-scoped operations
	// answer with a zero-effect result instead.
	ErrNotFound = errors.New("not found")

	// ErrUserExists signals the duplicate-user short circuit. It is an
	// informational outcome, not a failure.
	ErrUserExists = errors.New("user already exists")

	// ErrValidation means a required field is missing or malformed.
	ErrValidation = errors.New("invalid request")
)
