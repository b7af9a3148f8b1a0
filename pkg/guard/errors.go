package guard

import "errors"

var (
	// ErrInvalidPolicy is returned when a policy document cannot be decoded or fails validation.
	ErrInvalidPolicy = errors.New("guard: invalid policy")

	// ErrBodyTooLarge is returned when a request body exceeds Config.MaxBodySize.
	ErrBodyTooLarge = errors.New("guard: request body too large")

	// ErrInvalidBody is returned when a JSON body cannot be decoded for inspection.
	ErrInvalidBody = errors.New("guard: invalid request body")
)
