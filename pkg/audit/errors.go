package audit

import "errors"

var (
	// ErrEventValidation indicates event validation failed
	ErrEventValidation = errors.New("audit: event validation failed")

	// ErrStorageClosed indicates the storage no longer accepts events
	ErrStorageClosed = errors.New("audit: storage is closed")

	// ErrBufferFull indicates the async buffer is full and the events were dropped
	ErrBufferFull = errors.New("audit: async buffer is full")
)
