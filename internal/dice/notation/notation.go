package notation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/louisbranch/aria-memo/internal/random"
)

// Outcome is a rolled expression together with the seed that drove it.
type Outcome struct {
	Expression Expression
	Result     Result
	Seed       int64
}

// Evaluator parses and rolls expressions with a fresh generator per call.
type Evaluator struct {
	Limits Limits
	// SeedFunc produces per-call seeds. Defaults to random.NewSeed.
	SeedFunc func() (int64, error)
}

// Evaluate parses input and rolls it with a newly generated seed.
func (e Evaluator) Evaluate(input string) (Outcome, error) {
	seedFunc := e.SeedFunc
	if seedFunc == nil {
		seedFunc = random.NewSeed
	}
	seed, err := seedFunc()
	if err != nil {
		return Outcome{}, fmt.Errorf("generate seed: %w", err)
	}
	return e.EvaluateSeed(input, seed)
}

// EvaluateSeed parses input and rolls it with the given seed. The same seed
// and input always produce the same outcome.
func (e Evaluator) EvaluateSeed(input string, seed int64) (Outcome, error) {
	expr, err := Parser{Limits: e.Limits}.ParseString(input)
	if err != nil {
		return Outcome{}, err
	}
	result, err := Roll(expr, random.NewRand(seed))
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Expression: expr, Result: result, Seed: seed}, nil
}

// Evaluate parses and rolls input with default limits and returns the
// formatted result, e.g. "**13** [7 (4 + 3) + 6]".
func Evaluate(input string) (string, error) {
	outcome, err := Evaluator{}.Evaluate(input)
	if err != nil {
		return "", err
	}
	return outcome.Result.String(), nil
}

// EvaluateSeed is Evaluate with a caller-chosen seed.
func EvaluateSeed(input string, seed int64) (Result, error) {
	outcome, err := Evaluator{}.EvaluateSeed(input, seed)
	if err != nil {
		return Result{}, err
	}
	return outcome.Result, nil
}

// ParseFormatted splits a formatted result back into its total and trace.
func ParseFormatted(s string) (int64, string, error) {
	rest, ok := strings.CutPrefix(s, "**")
	if !ok {
		return 0, "", fmt.Errorf("formatted result %q: missing total", s)
	}
	totalText, rest, ok := strings.Cut(rest, "** [")
	if !ok || !strings.HasSuffix(rest, "]") {
		return 0, "", fmt.Errorf("formatted result %q: missing trace", s)
	}
	total, err := strconv.ParseInt(totalText, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("formatted result %q: parse total: %w", s, err)
	}
	return total, strings.TrimSuffix(rest, "]"), nil
}
