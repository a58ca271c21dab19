package errors

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorIsMatchesCode(t *testing.T) {
	err := fmt.Errorf("context: %w", New(CodeSeedInvalid, "bad seed"))
	if !errors.Is(err, &Error{Code: CodeSeedInvalid}) {
		t.Fatal("expected errors.Is to match on code")
	}
	if errors.Is(err, &Error{Code: CodeNotationEmptyExpression}) {
		t.Fatal("expected different code not to match")
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("cause")
	err := Wrap(CodeUnknown, "wrapped", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause")
	}
	if err.Error() != "wrapped" {
		t.Fatalf("message = %q, want wrapped", err.Error())
	}
}

func TestGRPCCode(t *testing.T) {
	tcs := map[Code]codes.Code{
		CodeNotationUnexpectedCharacter: codes.InvalidArgument,
		CodeNotationEmptyExpression:     codes.InvalidArgument,
		CodeNotationMalformedExpression: codes.InvalidArgument,
		CodeNotationDiceTooLarge:        codes.InvalidArgument,
		CodeNotationNumberTooLarge:      codes.InvalidArgument,
		CodeNotationTotalOverflow:       codes.InvalidArgument,
		CodeSeedInvalid:                 codes.InvalidArgument,
		CodeUnknown:                     codes.Internal,
	}
	for code, want := range tcs {
		if got := code.GRPCCode(); got != want {
			t.Fatalf("%s.GRPCCode() = %s, want %s", code, got, want)
		}
	}
}

func TestToGRPCStatusAttachesDetails(t *testing.T) {
	err := New(CodeNotationDiceTooLarge, "dice too large").With("Limit", "500").
		ToGRPCStatus("en-US", "Dice count and faces cannot exceed 500")

	st := status.Convert(err)
	if st.Code() != codes.InvalidArgument {
		t.Fatalf("code = %s, want InvalidArgument", st.Code())
	}
	if st.Message() != "dice too large" {
		t.Fatalf("message = %q", st.Message())
	}

	var info *errdetails.ErrorInfo
	var localized *errdetails.LocalizedMessage
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			info = d
		case *errdetails.LocalizedMessage:
			localized = d
		}
	}
	if info == nil || info.GetReason() != string(CodeNotationDiceTooLarge) || info.GetDomain() != Domain {
		t.Fatalf("unexpected error info %v", info)
	}
	if info.GetMetadata()["Limit"] != "500" {
		t.Fatalf("metadata = %v", info.GetMetadata())
	}
	if localized == nil || localized.GetLocale() != "en-US" {
		t.Fatalf("unexpected localized message %v", localized)
	}
}

func TestErrorFallsBackToCode(t *testing.T) {
	err := &Error{Code: CodeNotationEmptyExpression}
	if err.Error() != string(CodeNotationEmptyExpression) {
		t.Fatalf("Error() = %q", err.Error())
	}
	if got := err.With("Position", "1").Metadata["Position"]; got != "1" {
		t.Fatalf("metadata position = %q", got)
	}
}
