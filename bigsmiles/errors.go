package bigsmiles

import "fmt"

// Position tracks a source location for error messages.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset into source
}

// ParseError is the base error type for all bigsmiles errors.
type ParseError struct {
	Message string
	Pos     Position
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("col %d: %s", e.Pos.Column, e.Message)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error { return e.Cause }

// TokenizeError reports input that matches no token pattern.
type TokenizeError struct{ ParseError }

// FieldError reports a malformed bracket-atom or bonding-descriptor body.
type FieldError struct{ ParseError }

// ScopeError reports unbalanced or misused branch, stochastic-object, or
// bracket scopes.
type ScopeError struct{ ParseError }

// RingError reports a ring index opened but never closed, closed twice, or
// used an odd number of times.
type RingError struct{ ParseError }

// ElementError reports a bare element symbol that is only allowed in
// bracket form.
type ElementError struct {
	ParseError
	Symbol string
}

func (e *ElementError) Error() string {
	msg := fmt.Sprintf("element %q must be written in brackets; only B, C, N, O, P, S, F, Cl, Br, I may appear bare", e.Symbol)
	if e.Pos.Line > 0 {
		return fmt.Sprintf("col %d: %s", e.Pos.Column, msg)
	}
	return msg
}

// SyntaxError reports a token-sequence violation (bond at start of input,
// branch opened first in a scope, stochastic object without descriptors, ...).
type SyntaxError struct{ ParseError }

func newTokenizeError(msg string, pos Position) error {
	return &TokenizeError{ParseError{Message: msg, Pos: pos}}
}

func newFieldError(msg string) error {
	return &FieldError{ParseError{Message: msg}}
}

func newScopeError(msg string) error {
	return &ScopeError{ParseError{Message: msg}}
}

func newRingError(msg string) error {
	return &RingError{ParseError{Message: msg}}
}

func newSyntaxError(msg string) error {
	return &SyntaxError{ParseError{Message: msg}}
}
