package storage

import "errors"

// Common client storage errors
var (
	// ErrRulerNotFound indicates that ruler was not found in the catalog
	ErrRulerNotFound = errors.New("ruler not found")

	// ErrCoinNotFound indicates that catalog coin was not found
	ErrCoinNotFound = errors.New("catalog coin not found")

	// ErrUserCoinNotFound indicates that user coin was not found or is deleted
	ErrUserCoinNotFound = errors.New("user coin not found")

	// ErrAuthNotFound indicates that no authentication data exists
	ErrAuthNotFound = errors.New("authentication data not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
