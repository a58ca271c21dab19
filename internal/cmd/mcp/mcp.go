// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"

	"github.com/louisbranch/aria-memo/internal/dice/notation"
	entrypoint "github.com/louisbranch/aria-memo/internal/platform/cmd"
	"github.com/louisbranch/aria-memo/internal/platform/config"
	"github.com/louisbranch/aria-memo/internal/platform/discovery"
	mcpservice "github.com/louisbranch/aria-memo/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	Addr      string `env:"ARIA_MEMO_DICE_ADDR"`
	HTTPAddr  string `env:"ARIA_MEMO_MCP_HTTP_ADDR"`
	Transport string `env:"ARIA_MEMO_MCP_TRANSPORT"  envDefault:"stdio"`
	Limits    notation.Limits
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string, options ...config.Option) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg, options...); err != nil {
		return Config{}, err
	}

	cfg.Addr = discovery.OrDefaultGRPCAddr(cfg.Addr, discovery.ServiceDice)
	cfg.HTTPAddr = discovery.OrDefaultHTTPAddr(cfg.HTTPAddr, discovery.ServiceMCP)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "dice server address")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return mcpservice.Run(ctx, mcpservice.Config{
			DiceAddr:  cfg.Addr,
			HTTPAddr:  cfg.HTTPAddr,
			Transport: cfg.Transport,
			Limits:    cfg.Limits,
		})
	})
}
