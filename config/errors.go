package config

import (
	"errors"
	"strconv"
)

// ErrNilSource is returned when a nil Source is added to a Builder.
var ErrNilSource = errors.New("config: nil source")

// SourceError wraps a failure while loading a single source, adding the
// source name for context.
type SourceError struct {
	Name string
	Err  error
}

// Error implements the error interface.
func (e SourceError) Error() string {
	// Example: config: source "file:app.yaml": no such file or directory
	return "config: source " + strconv.Quote(e.Name) + ": " + e.Err.Error()
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e SourceError) Unwrap() error { return e.Err }

// BindError wraps a failure while decoding a subtree into a struct.
type BindError struct {
	Prefix string
	Err    error
}

// Error implements the error interface.
func (e BindError) Error() string {
	// Example: config: bind "server": cannot unmarshal ...
	return "config: bind " + strconv.Quote(e.Prefix) + ": " + e.Err.Error()
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e BindError) Unwrap() error { return e.Err }
