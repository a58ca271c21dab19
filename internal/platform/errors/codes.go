// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Notation errors
	CodeNotationUnexpectedCharacter Code = "NOTATION_UNEXPECTED_CHARACTER"
	CodeNotationEmptyExpression     Code = "NOTATION_EMPTY_EXPRESSION"
	CodeNotationMalformedExpression Code = "NOTATION_MALFORMED_EXPRESSION"
	CodeNotationDiceTooLarge        Code = "NOTATION_DICE_TOO_LARGE"
	CodeNotationNumberTooLarge      Code = "NOTATION_NUMBER_TOO_LARGE"
	CodeNotationTotalOverflow       Code = "NOTATION_TOTAL_OVERFLOW"

	// Random/seed errors
	CodeSeedInvalid Code = "SEED_INVALID"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - the expression or request cannot be evaluated
	case CodeNotationUnexpectedCharacter,
		CodeNotationEmptyExpression,
		CodeNotationMalformedExpression,
		CodeNotationDiceTooLarge,
		CodeNotationNumberTooLarge,
		CodeNotationTotalOverflow,
		CodeSeedInvalid:
		return codes.InvalidArgument

	default:
		return codes.Internal
	}
}
