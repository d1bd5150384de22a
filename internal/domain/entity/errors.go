package entity

import "errors"

// Layout errors. Operations wrap them with the offending id; match with errors.Is.
var (
	// ErrNotFound means an operation referenced an id absent from the tree.
	ErrNotFound = errors.New("node not found")
	// ErrInvalidOperation means an operation would break a layout invariant.
	ErrInvalidOperation = errors.New("invalid layout operation")
	// ErrMalformedDocument means a persisted layout could not be loaded.
	ErrMalformedDocument = errors.New("malformed layout document")
	// ErrUnknownContentType means a tab references content the host did not register.
	ErrUnknownContentType = errors.New("unknown content type")
)
