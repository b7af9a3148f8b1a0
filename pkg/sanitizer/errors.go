package sanitizer

import "errors"

// Errors returned by the structured-payload helpers. Field sanitizers and
// detectors never return errors.
var (
	// ErrInvalidJSON is returned when a payload cannot be decoded as JSON.
	ErrInvalidJSON = errors.New("sanitizer: invalid JSON payload")

	// ErrUnsupportedType is returned by FromAny for Go values that have no
	// structured-payload equivalent (channels, funcs, structs, ...).
	ErrUnsupportedType = errors.New("sanitizer: unsupported value type")

	// ErrMaxDepthExceeded is returned when a payload nests deeper than the
	// conversion limit, including self-referencing maps.
	ErrMaxDepthExceeded = errors.New("sanitizer: payload nesting too deep")

	// ErrInvalidNumber is returned by NumberValue for text that is not a JSON number.
	ErrInvalidNumber = errors.New("sanitizer: invalid number literal")
)
