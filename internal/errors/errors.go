package errors

import (
	"encoding/json"
	"errors"
)

// QueryErr is raised when customers query failed either on network or on server side.
// Message of the underlying error is kept as is, since it is shown to the user verbatim.
type QueryErr struct {
	operation string
	cause     error
}

func (e *QueryErr) Error() string {
	return e.cause.Error()
}

func (e *QueryErr) Unwrap() error {
	return e.cause
}

// Operation returns name of GraphQL operation which failed
func (e *QueryErr) Operation() string {
	return e.operation
}

func (e *QueryErr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Operation string `json:"operation"`
		Message   string `json:"message"`
	}{Operation: e.operation, Message: e.Error()})
}

// NewQueryErr wraps cause into QueryErr
func NewQueryErr(operation string, cause error) *QueryErr {
	return &QueryErr{
		operation: operation,
		cause:     cause,
	}
}

// IsQueryErr reports whether err has QueryErr in its chain
func IsQueryErr(err error) bool {
	var qe *QueryErr
	return errors.As(err, &qe)
}

// BusinessErr is raised when user action can't be applied to the current state
type BusinessErr struct {
	target  string
	message string
}

func (e *BusinessErr) Error() string {
	return e.message
}

func (e *BusinessErr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Target  string `json:"target"`
		Message string `json:"message"`
	}{Target: e.target, Message: e.message})
}

func NewBusinessErr(target string, msg string) error {
	return &BusinessErr{
		target:  target,
		message: msg,
	}
}
