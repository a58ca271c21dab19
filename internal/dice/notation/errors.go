package notation

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a notation failure.
type ErrorKind int

const (
	KindUnexpectedCharacter ErrorKind = iota + 1
	KindEmptyExpression
	KindMalformedExpression
	KindDiceTooLarge
	KindNumberTooLarge
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnexpectedCharacter:
		return "unexpected character"
	case KindEmptyExpression:
		return "empty expression"
	case KindMalformedExpression:
		return "malformed expression"
	case KindDiceTooLarge:
		return "dice too large"
	case KindNumberTooLarge:
		return "number too large"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching against *ParseError values.
var (
	ErrUnexpectedCharacter = &ParseError{Kind: KindUnexpectedCharacter}
	ErrEmptyExpression     = &ParseError{Kind: KindEmptyExpression}
	ErrMalformedExpression = &ParseError{Kind: KindMalformedExpression}
	ErrDiceTooLarge        = &ParseError{Kind: KindDiceTooLarge}
	ErrNumberTooLarge      = &ParseError{Kind: KindNumberTooLarge}
)

// ErrTotalOverflow indicates the running total left the int64 range.
var ErrTotalOverflow = errors.New("roll total overflows")

// ErrInvalidTerm indicates a term that Parse never produces, such as a negative dice count.
var ErrInvalidTerm = errors.New("invalid term")

// ParseError describes why an input could not be tokenized or parsed.
type ParseError struct {
	Kind ErrorKind
	// Char is the offending rune for KindUnexpectedCharacter.
	Char rune
	// Pos is the rune offset of the offending token, -1 at end of input.
	Pos int
	// Limit is the ceiling that was exceeded for KindDiceTooLarge and KindNumberTooLarge.
	Limit int
	// Reason is a short grammar explanation for KindMalformedExpression.
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e == nil {
		return "notation error"
	}
	switch e.Kind {
	case KindUnexpectedCharacter:
		return fmt.Sprintf("unexpected character %q at position %d", e.Char, e.Pos)
	case KindEmptyExpression:
		return "empty expression"
	case KindMalformedExpression:
		if e.Reason == "" {
			return "malformed expression"
		}
		if e.Pos < 0 {
			return fmt.Sprintf("malformed expression: %s at end of input", e.Reason)
		}
		return fmt.Sprintf("malformed expression: %s at position %d", e.Reason, e.Pos)
	case KindDiceTooLarge:
		return fmt.Sprintf("dice too large: limit is %d", e.Limit)
	case KindNumberTooLarge:
		return fmt.Sprintf("number too large at position %d: limit is %d", e.Pos, e.Limit)
	default:
		return e.Kind.String()
	}
}

// Is reports whether target is a ParseError of the same kind.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// KindOf returns the kind of a notation error, or 0 when err is not one.
func KindOf(err error) ErrorKind {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Kind
	}
	return 0
}

func malformed(pos int, reason string) *ParseError {
	return &ParseError{Kind: KindMalformedExpression, Pos: pos, Reason: reason}
}
