package errors

import (
	"maps"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"
)

// Domain identifies Aria Memo in errdetails.ErrorInfo.
const Domain = "github.com/louisbranch/aria-memo"

// Error is a coded error. Message is for logs; the user-facing text is
// rendered from the i18n catalog using Code and Metadata.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
	Cause    error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

// New returns an error with code and a log message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap returns an error with code that unwraps to cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// With sets one template field and returns e.
func (e *Error) With(key, value string) *Error {
	if e.Metadata == nil {
		e.Metadata = map[string]string{}
	}
	e.Metadata[key] = value
	return e
}

// ToGRPCStatus builds a status carrying the log message, an ErrorInfo with
// the code and metadata, and userMessage as a LocalizedMessage.
func (e *Error) ToGRPCStatus(locale, userMessage string) error {
	base := status.New(e.Code.GRPCCode(), e.Error())
	detailed, err := base.WithDetails(
		&errdetails.ErrorInfo{
			Reason:   string(e.Code),
			Domain:   Domain,
			Metadata: maps.Clone(e.Metadata),
		},
		&errdetails.LocalizedMessage{
			Locale:  locale,
			Message: userMessage,
		},
	)
	if err != nil {
		return base.Err()
	}
	return detailed.Err()
}
