package notation

import (
	"context"
	"strconv"

	"github.com/louisbranch/aria-memo/internal/random"
	grpcmeta "github.com/louisbranch/aria-memo/internal/services/dice/api/grpc/metadata"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// EvaluateOptions tunes a single remote evaluation.
type EvaluateOptions struct {
	// Seed replays a previous roll when set.
	Seed *int64
	// Locale is sent as accept-language for error messages.
	Locale string
	// RequestID correlates the call; the server generates one when empty.
	RequestID string
	// InvocationID identifies the MCP tool call that triggered the request.
	InvocationID string
}

// Roll is the answer to a remote evaluation.
type Roll struct {
	Result    string
	Seed      int64
	RequestID string
}

// Client wraps NotationServiceClient with metadata handling.
type Client struct {
	api NotationServiceClient
}

// NewClient creates a Client over a connection.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{api: NewNotationServiceClient(cc)}
}

// NewClientFromAPI creates a Client over an existing stub.
func NewClientFromAPI(api NotationServiceClient) *Client {
	return &Client{api: api}
}

// Evaluate sends expression to the service and returns the formatted result
// with the seed and request ID from the response headers.
func (c *Client) Evaluate(ctx context.Context, expression string, opts EvaluateOptions) (Roll, error) {
	pairs := make([]string, 0, 8)
	if opts.Seed != nil {
		pairs = append(pairs, grpcmeta.RollSeedHeader, strconv.FormatInt(*opts.Seed, 10))
	}
	if opts.Locale != "" {
		pairs = append(pairs, grpcmeta.LocaleHeader, opts.Locale)
	}
	if opts.RequestID != "" {
		pairs = append(pairs, grpcmeta.RequestIDHeader, opts.RequestID)
	}
	if opts.InvocationID != "" {
		pairs = append(pairs, grpcmeta.InvocationIDHeader, opts.InvocationID)
	}
	if len(pairs) > 0 {
		ctx = metadata.AppendToOutgoingContext(ctx, pairs...)
	}

	var header metadata.MD
	resp, err := c.api.Evaluate(ctx, wrapperspb.String(expression), grpc.Header(&header))
	if err != nil {
		return Roll{}, err
	}

	roll := Roll{
		Result:    resp.GetValue(),
		RequestID: grpcmeta.FirstMetadataValue(header, grpcmeta.RequestIDHeader),
	}
	if seed, ok, err := random.ParseSeed(grpcmeta.FirstMetadataValue(header, grpcmeta.RollSeedHeader)); err == nil && ok {
		roll.Seed = seed
	}
	return roll, nil
}
