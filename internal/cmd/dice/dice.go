// Package dice parses dice service flags and launches the service.
package dice

import (
	"context"
	"flag"

	"github.com/louisbranch/aria-memo/internal/dice/notation"
	entrypoint "github.com/louisbranch/aria-memo/internal/platform/cmd"
	"github.com/louisbranch/aria-memo/internal/platform/config"
	"github.com/louisbranch/aria-memo/internal/platform/discovery"
	server "github.com/louisbranch/aria-memo/internal/services/dice/app"
)

// Config holds dice command configuration.
type Config struct {
	Addr   string `env:"ARIA_MEMO_DICE_LISTEN_ADDR"`
	Limits notation.Limits
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string, options ...config.Option) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg, options...); err != nil {
		return Config{}, err
	}
	cfg.Addr = discovery.OrDefaultGRPCAddr(cfg.Addr, discovery.ServiceDice)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The dice gRPC listen address")
	fs.IntVar(&cfg.Limits.MaxCount, "max-count", cfg.Limits.MaxCount, "Largest dice count accepted in one term")
	fs.IntVar(&cfg.Limits.MaxFaces, "max-faces", cfg.Limits.MaxFaces, "Largest die size accepted")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the dice gRPC API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceDice, func(ctx context.Context) error {
		return server.Run(ctx, cfg.Addr, cfg.Limits)
	})
}
