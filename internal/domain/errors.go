package domain

import "errors"

// Error kinds surfaced to the HTTP layer. Callers classify failures with
// errors.Is and map them to status codes; the wrapped message carries the
// human-readable detail.
var (
	ErrValidation         = errors.New("validation failed")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrStorage            = errors.New("storage failure")
	ErrNotFound           = errors.New("not found")
)
