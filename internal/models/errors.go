package models

import "errors"

var (
	ErrInvalidRange      = errors.New("invalid range")
	ErrUnsupportedOutput = errors.New("unsupported output")
)

// ArgumentError reports a malformed or missing command line argument.
type ArgumentError struct {
	Err error
}

func (e *ArgumentError) Error() string {
	return "invalid arguments: " + e.Err.Error()
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}
