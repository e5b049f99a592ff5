package db

import "errors"

// Domain-level database error sentinels.
var (
	// Branding errors
	ErrBrandingNotFound = errors.New("branding not configured")

	// Footprint surface errors
	ErrDuplicateSurface = errors.New("surface domain already exists")

	// Returned while the settings circuit breaker is open
	ErrSettingsUnavailable = errors.New("settings store unavailable")
)
