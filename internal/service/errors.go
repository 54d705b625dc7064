package service

import (
	"errors"
	"fmt"
)

// Kind classifies a failed operation for callers and the HTTP layer.
type Kind string

const (
	KindConfiguration         Kind = "CONFIGURATION_ERROR"
	KindGenerationParse       Kind = "GENERATION_PARSE_ERROR"
	KindGenerationInvalid     Kind = "GENERATION_INVALID"
	KindGenerationUnavailable Kind = "GENERATION_UNAVAILABLE"
	KindValidation            Kind = "VALIDATION_ERROR"
	KindSessionNotFound       Kind = "SESSION_NOT_FOUND"
	KindFeedbackGeneration    Kind = "FEEDBACK_GENERATION_ERROR"
	KindPersistence           Kind = "PERSISTENCE_ERROR"
	KindInternal              Kind = "INTERNAL_ERROR"
)

// Error is returned by every ProblemSessionService operation.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// ClientFault reports whether the failure was caused by the caller's input.
func (e *Error) ClientFault() bool {
	return e.Kind == KindValidation || e.Kind == KindSessionNotFound
}

// KindOf returns the Kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}
