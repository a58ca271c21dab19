// Package domain translates MCP tool calls into dice service requests.
//
// Handlers depend on a small Evaluator interface rather than a gRPC stub, so
// tests can exercise the full MCP surface with an in-process fake.
package domain
