package problem

import "fmt"

// ParseError means no JSON object could be recovered from the generator reply.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse generated problem: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// InvalidError means the reply decoded but does not describe a usable problem.
type InvalidError struct {
	Fragment string
	Err      error
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid generated problem: %v", e.Err)
}

func (e *InvalidError) Unwrap() error { return e.Err }
