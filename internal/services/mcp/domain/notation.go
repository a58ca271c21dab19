package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/aria-memo/internal/dice/notation"
	apperrors "github.com/louisbranch/aria-memo/internal/platform/errors"
	platformi18n "github.com/louisbranch/aria-memo/internal/platform/i18n"
	notationservice "github.com/louisbranch/aria-memo/internal/services/dice/api/grpc/notation"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Evaluator sends an expression to the dice service.
type Evaluator interface {
	Evaluate(ctx context.Context, expression string, opts notationservice.EvaluateOptions) (notationservice.Roll, error)
}

// RollNotationInput represents the MCP tool input for rolling an expression.
type RollNotationInput struct {
	Expression string `json:"expression" jsonschema:"dice expression such as 2d6 + 3"`
	Seed       *int64 `json:"seed,omitempty" jsonschema:"seed of a previous roll to replay"`
	Locale     string `json:"locale,omitempty" jsonschema:"language for error messages, e.g. fr-FR"`
}

// RollNotationResult represents the MCP tool output for a rolled expression.
type RollNotationResult struct {
	Result   string `json:"result" jsonschema:"formatted result as **total** [trace]"`
	Total    int64  `json:"total" jsonschema:"final total"`
	Trace    string `json:"trace" jsonschema:"left to right breakdown of the roll"`
	SeedUsed int64  `json:"seed_used" jsonschema:"seed that replays this roll"`
}

// NotationHelpInput represents the MCP tool input for grammar help.
type NotationHelpInput struct {
	Locale string `json:"locale,omitempty" jsonschema:"language of the summary, e.g. fr-FR"`
}

// NotationHelpResult describes the accepted grammar.
type NotationHelpResult struct {
	Summary   string   `json:"summary" jsonschema:"short description of the notation"`
	Limits    string   `json:"limits" jsonschema:"dice ceilings in words"`
	MaxCount  int      `json:"max_count" jsonschema:"largest dice count per term"`
	MaxFaces  int      `json:"max_faces" jsonschema:"largest die size"`
	Operators []string `json:"operators" jsonschema:"supported operators"`
	Examples  []string `json:"examples" jsonschema:"sample expressions"`
}

// RollNotationTool defines the MCP tool schema for rolling expressions.
func RollNotationTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_notation",
		Description: "Rolls a dice expression such as 2d6 + 3 and returns the total with its breakdown",
	}
}

// NotationHelpTool defines the MCP tool schema for grammar help.
func NotationHelpTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "notation_help",
		Description: "Describes the dice expressions accepted by roll_notation",
	}
}

// RollNotationHandler evaluates an expression through the dice service.
func RollNotationHandler(client Evaluator) mcp.ToolHandlerFor[RollNotationInput, RollNotationResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RollNotationInput) (*mcp.CallToolResult, RollNotationResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, RollNotationResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		requestID, err := NewRequestID()
		if err != nil {
			return nil, RollNotationResult{}, fmt.Errorf("generate request id: %w", err)
		}
		sent := ToolCallMetadata{RequestID: requestID, InvocationID: invocationID}

		runCtx, cancel := context.WithTimeout(ctx, grpcCallTimeout)
		defer cancel()

		roll, err := client.Evaluate(runCtx, input.Expression, notationservice.EvaluateOptions{
			Seed:         input.Seed,
			Locale:       strings.TrimSpace(input.Locale),
			RequestID:    requestID,
			InvocationID: invocationID,
		})
		if err != nil {
			if message, ok := apperrors.LocalizedMessage(err); ok {
				return nil, RollNotationResult{}, fmt.Errorf("roll notation: %s", message)
			}
			return nil, RollNotationResult{}, fmt.Errorf("roll notation: %w", err)
		}

		total, trace, err := notation.ParseFormatted(roll.Result)
		if err != nil {
			return nil, RollNotationResult{}, fmt.Errorf("read roll result: %w", err)
		}

		result := RollNotationResult{
			Result:   roll.Result,
			Total:    total,
			Trace:    trace,
			SeedUsed: roll.Seed,
		}
		return CallToolResultWithMetadata(MergeResponseMetadata(sent, roll.RequestID)), result, nil
	}
}

// NotationHelpHandler describes the grammar and the configured limits.
func NotationHelpHandler(limits notation.Limits) mcp.ToolHandlerFor[NotationHelpInput, NotationHelpResult] {
	if limits.MaxCount <= 0 {
		limits.MaxCount = notation.DefaultMaxCount
	}
	if limits.MaxFaces <= 0 {
		limits.MaxFaces = notation.DefaultMaxFaces
	}
	return func(_ context.Context, _ *mcp.CallToolRequest, input NotationHelpInput) (*mcp.CallToolResult, NotationHelpResult, error) {
		printer := platformi18n.Printer(input.Locale)
		return nil, NotationHelpResult{
			Summary:   printer.Sprintf("core.help.summary"),
			Limits:    printer.Sprintf("core.help.limits", limits.MaxCount, limits.MaxFaces),
			MaxCount:  limits.MaxCount,
			MaxFaces:  limits.MaxFaces,
			Operators: []string{"+", "-", "*"},
			Examples:  []string{"d20", "2d6 + 3", "4d8 * 2 - 1", "10 - 3"},
		}, nil
	}
}
