package notation

import (
	"context"
	"log"
	"strconv"

	"github.com/louisbranch/aria-memo/internal/dice/notation"
	apperrors "github.com/louisbranch/aria-memo/internal/platform/errors"
	"github.com/louisbranch/aria-memo/internal/random"
	grpcmeta "github.com/louisbranch/aria-memo/internal/services/dice/api/grpc/metadata"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const tracerName = "github.com/louisbranch/aria-memo/internal/services/dice/api/grpc/notation"

// Service implements NotationServiceServer on top of notation.Evaluator.
type Service struct {
	evaluator notation.Evaluator
	tracer    trace.Tracer
}

// NewService creates a notation service with the given dice limits.
func NewService(limits notation.Limits) *Service {
	return &Service{
		evaluator: notation.Evaluator{Limits: limits},
		tracer:    otel.Tracer(tracerName),
	}
}

// Evaluate parses and rolls the expression in the request.
//
// A decimal x-aria-roll-seed request header replays a previous roll; the seed
// actually used is always returned in the response header of the same name.
// Errors carry a LocalizedMessage in the locale negotiated from
// accept-language.
func (s *Service) Evaluate(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	ctx, span := s.tracer.Start(ctx, "notation.Evaluate")
	defer span.End()

	locale := grpcmeta.LocaleFromContext(ctx)
	expression := in.GetValue()
	span.SetAttributes(attribute.Int("aria.expression.length", len(expression)))

	seed, replay, err := random.ParseSeed(grpcmeta.RollSeedFromContext(ctx))
	if err != nil {
		return nil, s.fail(span, locale, apperrors.Wrap(apperrors.CodeSeedInvalid, err.Error(), err))
	}

	var outcome notation.Outcome
	if replay {
		outcome, err = s.evaluator.EvaluateSeed(expression, seed)
	} else {
		outcome, err = s.evaluator.Evaluate(expression)
	}
	if err != nil {
		return nil, s.fail(span, locale, err)
	}

	if err := grpc.SetHeader(ctx, metadata.Pairs(grpcmeta.RollSeedHeader, strconv.FormatInt(outcome.Seed, 10))); err != nil {
		log.Printf("set roll seed header: %v", err)
	}
	span.SetAttributes(
		attribute.Int64("aria.roll.seed", outcome.Seed),
		attribute.Bool("aria.roll.replay", replay),
		attribute.Int64("aria.roll.total", outcome.Result.Total),
		attribute.Int("aria.roll.dice", outcome.Expression.DiceCount()),
	)
	return wrapperspb.String(outcome.Result.String()), nil
}

func (s *Service) fail(span trace.Span, locale string, err error) error {
	span.RecordError(err)
	span.SetStatus(otelcodes.Error, err.Error())
	if apperrors.FromNotation(err) == nil && apperrors.GetCode(err) == apperrors.CodeUnknown {
		log.Printf("evaluate notation: %v", err)
	}
	return apperrors.HandleError(err, locale)
}
