package notification

import "errors"

var (
	// ErrMethodNotFound is returned by Call when the name matches no registered type pattern.
	ErrMethodNotFound = errors.New("notification.method_not_found")

	// ErrInvalidArgument is returned by Call when a dynamic argument has an unsupported type.
	ErrInvalidArgument = errors.New("notification.invalid_argument")
)
