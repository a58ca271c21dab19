package main

import (
	"flag"
	"os"

	mcpcmd "github.com/louisbranch/aria-memo/internal/cmd/mcp"
	entrypoint "github.com/louisbranch/aria-memo/internal/platform/cmd"
)

// main starts the MCP bridge on stdio or HTTP.
func main() {
	entrypoint.Main(entrypoint.ServiceMCP, func() (mcpcmd.Config, error) {
		return mcpcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	}, mcpcmd.Run)
}
