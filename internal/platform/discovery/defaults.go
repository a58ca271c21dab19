// Package discovery centralizes the default addresses of Aria Memo services.
package discovery

import (
	"strconv"
	"strings"
)

const (
	// ServiceDice is the dice notation gRPC service identity.
	ServiceDice = "dice"
	// ServiceMCP is the MCP HTTP service identity.
	ServiceMCP = "mcp"
)

// defaultHost is where services listen and are reached when nothing else is
// configured.
const defaultHost = "localhost"

var grpcPorts = map[string]int{
	ServiceDice: 8085,
}

var httpPorts = map[string]int{
	ServiceMCP: 8086,
}

// DefaultGRPCAddr returns the conventional gRPC address for a service.
func DefaultGRPCAddr(service string) string {
	return defaultAddr(strings.TrimSpace(service), grpcPorts)
}

// DefaultHTTPAddr returns the conventional HTTP address for a service.
func DefaultHTTPAddr(service string) string {
	return defaultAddr(strings.TrimSpace(service), httpPorts)
}

// OrDefaultGRPCAddr returns value when set, otherwise the service convention.
func OrDefaultGRPCAddr(value, service string) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return value
	}
	return DefaultGRPCAddr(service)
}

// OrDefaultHTTPAddr returns value when set, otherwise the service convention.
func OrDefaultHTTPAddr(value, service string) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return value
	}
	return DefaultHTTPAddr(service)
}

func defaultAddr(service string, ports map[string]int) string {
	port, ok := ports[service]
	if !ok || port <= 0 {
		return ""
	}
	return defaultHost + ":" + strconv.Itoa(port)
}
