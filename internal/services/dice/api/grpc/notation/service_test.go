package notation

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/louisbranch/aria-memo/internal/dice/notation"
	apperrors "github.com/louisbranch/aria-memo/internal/platform/errors"
	grpcmeta "github.com/louisbranch/aria-memo/internal/services/dice/api/grpc/metadata"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func startService(t *testing.T, limits notation.Limits) *grpc.ClientConn {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	server := grpc.NewServer(grpc.ChainUnaryInterceptor(grpcmeta.UnaryServerInterceptor(nil)))
	RegisterNotationServiceServer(server, NewService(limits))
	go func() {
		_ = server.Serve(listener)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient(listener.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestEvaluateConstantExpression(t *testing.T) {
	client := NewClient(startService(t, notation.Limits{}))

	roll, err := client.Evaluate(testContext(t), "3 + 4", EvaluateOptions{})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if roll.Result != "**7** [3 + 4]" {
		t.Fatalf("result = %q, want %q", roll.Result, "**7** [3 + 4]")
	}
	if roll.RequestID == "" {
		t.Fatal("expected generated request id")
	}
}

func TestEvaluateReplaysSeed(t *testing.T) {
	client := NewClient(startService(t, notation.Limits{}))
	ctx := testContext(t)

	first, err := client.Evaluate(ctx, "4d6 + d20", EvaluateOptions{})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	seed := first.Seed
	replay, err := client.Evaluate(ctx, "4d6 + d20", EvaluateOptions{Seed: &seed, RequestID: "req-replay"})
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if replay.Result != first.Result {
		t.Fatalf("replay = %q, want %q", replay.Result, first.Result)
	}
	if replay.Seed != seed {
		t.Fatalf("replay seed = %d, want %d", replay.Seed, seed)
	}
	if replay.RequestID != "req-replay" {
		t.Fatalf("request id = %q, want req-replay", replay.RequestID)
	}

	local, err := notation.EvaluateSeed("4d6 + d20", seed)
	if err != nil {
		t.Fatalf("local evaluate: %v", err)
	}
	if local.String() != first.Result {
		t.Fatalf("local = %q, remote = %q", local.String(), first.Result)
	}
}

func TestEvaluateLocalizesErrors(t *testing.T) {
	client := NewClient(startService(t, notation.Limits{}))
	ctx := testContext(t)

	tcs := []struct {
		input  string
		locale string
		code   apperrors.Code
		want   string
	}{
		{"", "", apperrors.CodeNotationEmptyExpression, "The dice expression is empty"},
		{"", "fr-FR", apperrors.CodeNotationEmptyExpression, "L'expression de dés est vide"},
		{"501d1", "en", apperrors.CodeNotationDiceTooLarge, "Dice count and faces cannot exceed 500"},
		{"2d6 x", "fr", apperrors.CodeNotationUnexpectedCharacter, "Caractère inattendu « x » à la position 5"},
		{"3d", "", apperrors.CodeNotationMalformedExpression, "The dice expression is malformed"},
	}
	for _, tc := range tcs {
		_, err := client.Evaluate(ctx, tc.input, EvaluateOptions{Locale: tc.locale})
		if status.Code(err) != codes.InvalidArgument {
			t.Fatalf("Evaluate(%q) code = %s, want InvalidArgument", tc.input, status.Code(err))
		}
		if got := apperrors.ReasonFromStatus(err); got != tc.code {
			t.Fatalf("Evaluate(%q) reason = %s, want %s", tc.input, got, tc.code)
		}
		if got, _ := apperrors.LocalizedMessage(err); got != tc.want {
			t.Fatalf("Evaluate(%q, %s) message = %q, want %q", tc.input, tc.locale, got, tc.want)
		}
	}
}

func TestEvaluateRejectsInvalidSeed(t *testing.T) {
	api := NewNotationServiceClient(startService(t, notation.Limits{}))
	ctx := metadata.AppendToOutgoingContext(testContext(t), grpcmeta.RollSeedHeader, "not-a-seed")

	_, err := api.Evaluate(ctx, wrapperspb.String("1d6"))
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("code = %s, want InvalidArgument", status.Code(err))
	}
	if got := apperrors.ReasonFromStatus(err); got != apperrors.CodeSeedInvalid {
		t.Fatalf("reason = %s, want %s", got, apperrors.CodeSeedInvalid)
	}
}

func TestEvaluateHonorsLimits(t *testing.T) {
	client := NewClient(startService(t, notation.Limits{MaxCount: 2, MaxFaces: 6}))

	_, err := client.Evaluate(testContext(t), "3d6", EvaluateOptions{})
	if got := apperrors.ReasonFromStatus(err); got != apperrors.CodeNotationDiceTooLarge {
		t.Fatalf("reason = %s, want %s", got, apperrors.CodeNotationDiceTooLarge)
	}
	if got, _ := apperrors.LocalizedMessage(err); got != "Dice count and faces cannot exceed 2" {
		t.Fatalf("message = %q", got)
	}
}

func TestServiceEvaluateWithoutTransport(t *testing.T) {
	service := NewService(notation.Limits{})
	resp, err := service.Evaluate(context.Background(), wrapperspb.String("2 * 5"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if resp.GetValue() != "**10** [2 * 5]" {
		t.Fatalf("result = %q", resp.GetValue())
	}
}

type recordingAPI struct {
	md metadata.MD
}

func (r *recordingAPI) Evaluate(ctx context.Context, in *wrapperspb.StringValue, _ ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	r.md, _ = metadata.FromOutgoingContext(ctx)
	return wrapperspb.String("**1** [1]"), nil
}

func TestClientSendsMetadata(t *testing.T) {
	api := &recordingAPI{}
	client := NewClientFromAPI(api)
	seed := int64(-12)

	roll, err := client.Evaluate(context.Background(), "1", EvaluateOptions{
		Seed:         &seed,
		Locale:       "fr-FR",
		RequestID:    "req",
		InvocationID: "inv",
	})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if roll.Result != "**1** [1]" {
		t.Fatalf("result = %q", roll.Result)
	}
	want := map[string]string{
		grpcmeta.RollSeedHeader:     "-12",
		grpcmeta.LocaleHeader:       "fr-FR",
		grpcmeta.RequestIDHeader:    "req",
		grpcmeta.InvocationIDHeader: "inv",
	}
	for key, value := range want {
		if got := grpcmeta.FirstMetadataValue(api.md, key); got != value {
			t.Fatalf("metadata %s = %q, want %q", key, got, value)
		}
	}
}
