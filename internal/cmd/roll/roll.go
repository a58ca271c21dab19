// Package roll implements the roll command: evaluate dice expressions given
// as arguments, or answer one expression per line read from stdin.
package roll

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/louisbranch/aria-memo/internal/dice/notation"
	entrypoint "github.com/louisbranch/aria-memo/internal/platform/cmd"
	"github.com/louisbranch/aria-memo/internal/platform/config"
	apperrors "github.com/louisbranch/aria-memo/internal/platform/errors"
	platformgrpc "github.com/louisbranch/aria-memo/internal/platform/grpc"
	"github.com/louisbranch/aria-memo/internal/platform/timeouts"
	"github.com/louisbranch/aria-memo/internal/random"
	notationservice "github.com/louisbranch/aria-memo/internal/services/dice/api/grpc/notation"
)

// ErrRollFailed is returned when the argument expression cannot be rolled.
// The reason has already been written to stderr.
var ErrRollFailed error = entrypoint.ExitError{Code: 1}

// Config holds roll command configuration.
type Config struct {
	// Addr is the dice service address; empty evaluates in process.
	Addr   string `env:"ARIA_MEMO_DICE_ADDR"`
	Locale string `env:"ARIA_MEMO_LOCALE" envDefault:"en-US"`
	Quiet  bool   `env:"ARIA_MEMO_QUIET"`
	Seed   string
	// ShowSeed prints the seed after each result so a roll can be replayed.
	ShowSeed   bool
	Limits     notation.Limits
	Expression string
}

// ParseConfig parses environment and flags into Config. Remaining arguments
// are joined into a single expression.
func ParseConfig(fs *flag.FlagSet, args []string, options ...config.Option) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg, options...); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "dice server address (empty rolls locally)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "language for error messages")
	fs.StringVar(&cfg.Seed, "seed", cfg.Seed, "seed to replay a previous roll")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "drop expressions that cannot be rolled without a message")
	fs.BoolVar(&cfg.ShowSeed, "show-seed", cfg.ShowSeed, "print the seed after each result")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if _, _, err := random.ParseSeed(cfg.Seed); err != nil {
		return Config{}, err
	}
	cfg.Expression = strings.TrimSpace(strings.Join(fs.Args(), " "))
	return cfg, nil
}

type roller interface {
	roll(ctx context.Context, expression string) (result string, seed int64, err error)
}

type localRoller struct {
	evaluator notation.Evaluator
	seed      *int64
}

func (l localRoller) roll(_ context.Context, expression string) (string, int64, error) {
	var (
		outcome notation.Outcome
		err     error
	)
	if l.seed != nil {
		outcome, err = l.evaluator.EvaluateSeed(expression, *l.seed)
	} else {
		outcome, err = l.evaluator.Evaluate(expression)
	}
	if err != nil {
		return "", 0, err
	}
	return outcome.Result.String(), outcome.Seed, nil
}

type remoteRoller struct {
	client *notationservice.Client
	seed   *int64
	locale string
}

func (r remoteRoller) roll(ctx context.Context, expression string) (string, int64, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeouts.GRPCRequest)
	defer cancel()
	roll, err := r.client.Evaluate(callCtx, expression, notationservice.EvaluateOptions{
		Seed:   r.seed,
		Locale: r.locale,
	})
	if err != nil {
		return "", 0, err
	}
	return roll.Result, roll.Seed, nil
}

// Run executes the roll command with telemetry.
func Run(ctx context.Context, cfg Config, stdin io.Reader, stdout, stderr io.Writer) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceRoll, func(ctx context.Context) error {
		return run(ctx, cfg, stdin, stdout, stderr)
	})
}

func run(ctx context.Context, cfg Config, stdin io.Reader, stdout, stderr io.Writer) error {
	seedValue, hasSeed, err := random.ParseSeed(cfg.Seed)
	if err != nil {
		return err
	}
	var seed *int64
	if hasSeed {
		seed = &seedValue
	}

	var r roller = localRoller{evaluator: notation.Evaluator{Limits: cfg.Limits}, seed: seed}
	if addr := strings.TrimSpace(cfg.Addr); addr != "" {
		conn, err := platformgrpc.DialWithHealth(ctx, nil, addr, notationservice.ServiceName, timeouts.GRPCDial, nil, platformgrpc.DefaultClientDialOptions()...)
		if err != nil {
			return err
		}
		defer conn.Close()
		r = remoteRoller{client: notationservice.NewClient(conn), seed: seed, locale: cfg.Locale}
	}

	if cfg.Expression != "" {
		if !answer(ctx, r, cfg, cfg.Expression, stdout, stderr) {
			return ErrRollFailed
		}
		return nil
	}

	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		answer(ctx, r, cfg, line, stdout, stderr)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read expressions: %w", err)
	}
	return nil
}

// answer rolls one expression and writes the result or a localized error.
// It reports whether the roll succeeded.
func answer(ctx context.Context, r roller, cfg Config, expression string, stdout, stderr io.Writer) bool {
	result, seed, err := r.roll(ctx, expression)
	if err != nil {
		if !cfg.Quiet {
			fmt.Fprintf(stderr, "%s: %s\n", expression, describe(err, cfg.Locale))
		}
		return false
	}
	fmt.Fprintln(stdout, result)
	if cfg.ShowSeed {
		fmt.Fprintf(stderr, "seed: %d\n", seed)
	}
	return true
}

// describe returns the user-facing text for an error from either roller.
func describe(err error, locale string) string {
	if apperrors.FromNotation(err) != nil {
		err = apperrors.HandleError(err, locale)
	}
	if message, ok := apperrors.LocalizedMessage(err); ok {
		return message
	}
	return err.Error()
}
