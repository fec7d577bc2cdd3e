package di

import (
	"errors"
	"reflect"
	"strconv"
)

var (
	// ErrNilConstructor is returned when a registration is created with a nil
	// constructor function.
	ErrNilConstructor = errors.New("di: nil constructor")

	// ErrNilCollection is returned when a registration helper is applied to a
	// nil Collection.
	ErrNilCollection = errors.New("di: nil collection")
)

// AlreadyRegisteredError is returned when a service type is registered twice
// in the same Collection.
type AlreadyRegisteredError struct{ Type reflect.Type }

// Error implements the error interface.
func (e AlreadyRegisteredError) Error() string {
	// Example: di: service "*pkg.DB" already registered
	return "di: service " + strconv.Quote(e.Type.String()) + " already registered"
}

// NotRegisteredError is returned when a service type is resolved but was
// never registered.
//
// It is used by TryGet to distinguish "missing" from "wrong type".
type NotRegisteredError struct{ Type reflect.Type }

// Error implements the error interface.
func (e NotRegisteredError) Error() string {
	// Example: di: service "*pkg.DB" is not registered
	return "di: service " + strconv.Quote(e.Type.String()) + " is not registered"
}

// WrongTypeError is returned when a registration exists but the stored value
// cannot be asserted to the requested type.
//
// This can only happen with AddFor, where the constructor's dynamic result
// type is not checked at compile time.
type WrongTypeError struct {
	// Type is the service type requested.
	Type reflect.Type

	// GotType is reflect.TypeOf(value).String() for the constructed value.
	GotType string
}

// Error implements the error interface.
func (e WrongTypeError) Error() string {
	// Example: di: service "pkg.Store" has wrong type (*pkg.Logger)
	return "di: service " + strconv.Quote(e.Type.String()) + " has wrong type (" + e.GotType + ")"
}

// ConstructError wraps an error returned by a service constructor, adding
// the service type for context.
type ConstructError struct {
	Type reflect.Type
	Err  error
}

// Error implements the error interface.
func (e ConstructError) Error() string {
	// Example: di: constructing "*pkg.DB": dial failed
	return "di: constructing " + strconv.Quote(e.Type.String()) + ": " + e.Err.Error()
}

// Unwrap exposes the constructor's error for errors.Is / errors.As.
func (e ConstructError) Unwrap() error { return e.Err }
