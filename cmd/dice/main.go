// Package main starts the dice notation gRPC service.
package main

import (
	"flag"
	"os"

	dicecmd "github.com/louisbranch/aria-memo/internal/cmd/dice"
	entrypoint "github.com/louisbranch/aria-memo/internal/platform/cmd"
)

func main() {
	entrypoint.Main(entrypoint.ServiceDice, func() (dicecmd.Config, error) {
		return dicecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	}, dicecmd.Run)
}
