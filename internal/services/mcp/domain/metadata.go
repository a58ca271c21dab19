package domain

import (
	"github.com/louisbranch/aria-memo/internal/platform/id"
	grpcmeta "github.com/louisbranch/aria-memo/internal/services/dice/api/grpc/metadata"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolCallMetadata carries correlation identifiers for MCP tool calls.
type ToolCallMetadata struct {
	RequestID    string
	InvocationID string
}

// NewInvocationID generates an invocation identifier for a tool call.
func NewInvocationID() (string, error) {
	return id.NewID()
}

// NewRequestID generates a request identifier for a gRPC call.
func NewRequestID() (string, error) {
	return id.NewID()
}

// MergeResponseMetadata prefers the request ID echoed by the server over the
// one that was sent.
func MergeResponseMetadata(sent ToolCallMetadata, echoedRequestID string) ToolCallMetadata {
	if echoedRequestID != "" {
		sent.RequestID = echoedRequestID
	}
	return sent
}

// CallToolResultWithMetadata builds a tool result with correlation metadata.
func CallToolResultWithMetadata(meta ToolCallMetadata) *mcp.CallToolResult {
	result := &mcp.CallToolResult{
		Meta: map[string]any{
			grpcmeta.RequestIDHeader: meta.RequestID,
		},
	}
	if meta.InvocationID != "" {
		result.Meta[grpcmeta.InvocationIDHeader] = meta.InvocationID
	}
	return result
}
