package domain

import "errors"

var (
	// ErrStateNotFound is returned when a page contains no embedded product
	// state. This is an expected outcome for non-product pages, not a fault.
	ErrStateNotFound = errors.New("product state not found in page")

	// ErrMalformedState is returned when the embedded state is present but
	// is not valid JSON or lacks the top-level product object.
	ErrMalformedState = errors.New("malformed product state")

	// ErrProductNotFound is returned when no crawled product matches the
	// requested SKU.
	ErrProductNotFound = errors.New("product not found")

	// ErrFetchFailed is returned when the page request fails at transport
	// level or with a non-success status.
	ErrFetchFailed = errors.New("page fetch failed")

	// ErrCompletionFailed is returned when the completion backend responds
	// with a non-success status. Callers treat it as a soft failure.
	ErrCompletionFailed = errors.New("completion request failed")

	// ErrCompletionSchema is returned when the backend responds successfully
	// but its payload does not parse into the expected record schema.
	ErrCompletionSchema = errors.New("completion payload does not match schema")

	// ErrInvalidRequest is returned when request parameters are invalid.
	ErrInvalidRequest = errors.New("invalid request parameters")
)
