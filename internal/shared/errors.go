package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// API and service errors
	ErrAPIRequest          = fmt.Errorf("API request failed")
	ErrNotFound            = fmt.Errorf("resource not found")
	ErrUnexpectedResponse  = fmt.Errorf("unexpected API response")
	ErrServiceUnavailable  = fmt.Errorf("service unavailable")
	ErrRateLimiterCanceled = fmt.Errorf("rate limiter wait canceled")

	// Mapping errors
	ErrMissingField = fmt.Errorf("missing required field")
	ErrInvalidDate  = fmt.Errorf("invalid event date")

	// Input validation errors
	ErrMissingArgument   = fmt.Errorf("missing required argument")
	ErrInvalidArgument   = fmt.Errorf("invalid argument")
	ErrUnsupportedFormat = fmt.Errorf("unsupported export format")
)
