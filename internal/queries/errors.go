package queries

import "errors"

// Validation errors are returned before any data is read.
var (
	ErrMissingClientCode = errors.New("clientCode is required")
	ErrMissingQueryID    = errors.New("queryId is required")
	ErrMissingQueryType  = errors.New("queryType is required")
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrInvalidConfig     = errors.New("invalid query config")
)

// Not-found errors abort the execution.
var (
	ErrClientNotFound = errors.New("client not found")
	ErrQueryNotFound  = errors.New("query not found")
)

// IsValidation reports whether err rejects the request itself.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingClientCode) ||
		errors.Is(err, ErrMissingQueryID) ||
		errors.Is(err, ErrMissingQueryType) ||
		errors.Is(err, ErrInvalidIdentifier) ||
		errors.Is(err, ErrInvalidConfig)
}

// IsNotFound reports whether err names a client or query that does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrClientNotFound) || errors.Is(err, ErrQueryNotFound)
}
