package domain

import "errors"

var (
	// ErrNotFound indicates that a requested record was not found.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidStatus indicates a transaction status outside the enumerated set.
	ErrInvalidStatus = errors.New("invalid transaction status")
	// ErrPhoneNumberNotRegistered indicates a transaction insert referencing a
	// number with no phone_numbers row (foreign key violation).
	ErrPhoneNumberNotRegistered = errors.New("phone number not registered")
	// ErrSchemaMissing indicates the underlying tables do not exist; callers
	// translate this into a "database not configured" diagnostic.
	ErrSchemaMissing = errors.New("database schema missing")
)
