// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package apperr defines the labeled failures returned by the data-access
// procedures. Every error carries a Kind so the transport can pick a status
// code and a human-readable Message safe to show to callers.
package apperr

import "errors"

// Kind classifies a failure.
type Kind string

const (
	Validation    Kind = "validation"
	NotFound      Kind = "not_found"
	Constraint    Kind = "constraint_violation"
	Configuration Kind = "configuration"
	Internal      Kind = "internal"
)

// Error is a labeled failure wrapping an optional underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns an error of the given kind with no underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap returns an error of the given kind wrapping err.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Invalid reports rejected input before it reaches storage.
func Invalid(message string) *Error {
	return New(Validation, message)
}

// Missing reports a lookup that matched no row, e.g. Missing("post").
func Missing(entity string) *Error {
	return New(NotFound, entity+" not found")
}

// KindOf returns the Kind of the first *Error in err's chain, or Internal
// when err carries no label. KindOf(nil) is "".
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err is labeled with kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// MessageOf returns the human-readable message for err. Unlabeled errors
// get a generic message so driver details never leak to callers.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}
