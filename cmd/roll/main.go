package main

import (
	"context"
	"flag"
	"os"

	rollcmd "github.com/louisbranch/aria-memo/internal/cmd/roll"
	entrypoint "github.com/louisbranch/aria-memo/internal/platform/cmd"
)

// main rolls the expression in its arguments, or one expression per stdin line.
func main() {
	entrypoint.Main(entrypoint.ServiceRoll, func() (rollcmd.Config, error) {
		return rollcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	}, func(ctx context.Context, cfg rollcmd.Config) error {
		return rollcmd.Run(ctx, cfg, os.Stdin, os.Stdout, os.Stderr)
	})
}
