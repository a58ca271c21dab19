// Package cmd holds the startup sequence shared by the Aria Memo binaries:
// env-then-flag configuration, log prefixes, signal handling and telemetry.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/louisbranch/aria-memo/internal/platform/config"
	"github.com/louisbranch/aria-memo/internal/platform/otel"
	"github.com/louisbranch/aria-memo/internal/platform/timeouts"
)

// Service names, used as tracer service names and log prefixes.
const (
	ServiceDice = "dice"
	ServiceMCP  = "mcp"
	ServiceRoll = "roll"
)

// ExitError ends Main with Code without printing anything. Commands return it
// when they already reported the failure to the user.
type ExitError struct {
	Code int
}

func (e ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// setupTelemetry is swapped in tests.
var setupTelemetry = otel.Setup

// ParseConfig loads env values and defaults into cfg.
func ParseConfig[T any](cfg *T, options ...config.Option) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg, options...)
}

// ParseArgs parses flags registered on fs. Flags override env values that
// were used as flag defaults.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag set is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// LogPrefix returns the log prefix for a service, e.g. "[DICE] ".
func LogPrefix(service string) string {
	service = strings.TrimSpace(service)
	if service == "" {
		return ""
	}
	return "[" + strings.ToUpper(service) + "] "
}

// RunWithTelemetry installs the tracer provider for service, runs run and
// flushes spans before returning.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return errors.New("service name is required")
	}
	if run == nil {
		return errors.New("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	shutdown, err := setupTelemetry(ctx, service)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("%s telemetry shutdown: %v", service, err)
		}
	}()
	return run(ctx)
}

// Main runs a command binary: parse, set the log prefix, then run until
// SIGINT or SIGTERM. Parse failures and run errors exit with status 1; an
// ExitError exits with its code.
func Main[T any](service string, parse func() (T, error), run func(context.Context, T) error) {
	cfg, err := parse()
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix(LogPrefix(service))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg)
	stop()

	if code, silent := exitCode(err); silent {
		os.Exit(code)
	}
	if err != nil {
		log.Fatalf("%s: %v", service, err)
	}
}

// exitCode reports the code of an ExitError in err's chain.
func exitCode(err error) (int, bool) {
	var exitErr ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}
