package errors

import (
	"errors"
	"strconv"

	"github.com/louisbranch/aria-memo/internal/dice/notation"
	"github.com/louisbranch/aria-memo/internal/platform/errors/i18n"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultLocale is the default locale for error messages.
const DefaultLocale = "en-US"

// HandleError converts domain errors to gRPC status for client responses.
// It formats the user-facing message using the i18n catalog for the given locale,
// defaulting to en-US if the locale is empty. Notation errors are converted
// with FromNotation first.
func HandleError(err error, locale string) error {
	if err == nil {
		return nil
	}

	if locale == "" {
		locale = DefaultLocale
	}

	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = FromNotation(err)
	}
	if appErr != nil {
		catalog := i18n.GetCatalog(locale)
		userMsg := catalog.Format(string(appErr.Code), appErr.Metadata)
		return appErr.ToGRPCStatus(catalog.Locale(), userMsg)
	}

	// Unknown error - return internal with generic message
	return status.Error(codes.Internal, "an unexpected error occurred")
}

// FromNotation wraps a notation error in a domain error. It returns nil when
// err did not come from the notation package.
func FromNotation(err error) *Error {
	if errors.Is(err, notation.ErrTotalOverflow) {
		return Wrap(CodeNotationTotalOverflow, err.Error(), err)
	}

	var parseErr *notation.ParseError
	if !errors.As(err, &parseErr) {
		return nil
	}

	var code Code
	switch parseErr.Kind {
	case notation.KindUnexpectedCharacter:
		code = CodeNotationUnexpectedCharacter
	case notation.KindEmptyExpression:
		code = CodeNotationEmptyExpression
	case notation.KindMalformedExpression:
		code = CodeNotationMalformedExpression
	case notation.KindDiceTooLarge:
		code = CodeNotationDiceTooLarge
	case notation.KindNumberTooLarge:
		code = CodeNotationNumberTooLarge
	default:
		return nil
	}

	appErr := Wrap(code, err.Error(), err)
	if parseErr.Pos >= 0 {
		appErr.With("Position", strconv.Itoa(parseErr.Pos+1))
	}
	if code == CodeNotationUnexpectedCharacter {
		appErr.With("Character", string(parseErr.Char))
	}
	if parseErr.Limit > 0 {
		appErr.With("Limit", strconv.Itoa(parseErr.Limit))
	}
	return appErr
}

// GetCode extracts the error code from any error.
// Returns CodeUnknown if the error is not a domain error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode checks if the error has the specified code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}

// GetMetadata extracts metadata from an error if present.
// Returns nil if the error is not a domain error or has no metadata.
func GetMetadata(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Metadata
	}
	return nil
}

// LocalizedMessage returns the user-facing message attached to a gRPC status
// by ToGRPCStatus. It falls back to the status message, and reports false
// when err carries no status at all.
func LocalizedMessage(err error) (string, bool) {
	st, ok := status.FromError(err)
	if !ok || st == nil {
		return "", false
	}
	for _, detail := range st.Details() {
		if localized, ok := detail.(*errdetails.LocalizedMessage); ok && localized.GetMessage() != "" {
			return localized.GetMessage(), true
		}
	}
	return st.Message(), true
}

// ReasonFromStatus returns the domain code carried by a gRPC status, or
// CodeUnknown when the status has no ErrorInfo from this domain.
func ReasonFromStatus(err error) Code {
	st, ok := status.FromError(err)
	if !ok || st == nil {
		return CodeUnknown
	}
	for _, detail := range st.Details() {
		if info, ok := detail.(*errdetails.ErrorInfo); ok && info.GetDomain() == Domain {
			return Code(info.GetReason())
		}
	}
	return CodeUnknown
}
