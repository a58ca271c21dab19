package mcp

import (
	"flag"
	"io"
	"testing"

	"github.com/louisbranch/aria-memo/internal/platform/config"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil, config.WithEnvironment(map[string]string{}))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr != "localhost:8085" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.HTTPAddr != "localhost:8086" {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Transport != "stdio" {
		t.Fatalf("expected default transport stdio, got %q", cfg.Transport)
	}
	if cfg.Limits.MaxCount != 500 {
		t.Fatalf("expected default max count, got %d", cfg.Limits.MaxCount)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	environment := map[string]string{
		"ARIA_MEMO_DICE_ADDR":      "env-dice",
		"ARIA_MEMO_MCP_HTTP_ADDR":  "env-http",
		"ARIA_MEMO_MAX_DICE_FACES": "20",
	}
	args := []string{"-addr", "flag-dice", "-http-addr", "flag-http", "-transport", "http"}
	cfg, err := ParseConfig(fs, args, config.WithEnvironment(environment))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr != "flag-dice" {
		t.Fatalf("expected flag addr, got %q", cfg.Addr)
	}
	if cfg.HTTPAddr != "flag-http" {
		t.Fatalf("expected flag http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Transport != "http" {
		t.Fatalf("expected transport http, got %q", cfg.Transport)
	}
	if cfg.Limits.MaxFaces != 20 {
		t.Fatalf("expected env max faces, got %d", cfg.Limits.MaxFaces)
	}
}

func TestParseConfigRejectsUnknownFlag(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if _, err := ParseConfig(fs, []string{"-nope"}, config.WithEnvironment(map[string]string{})); err == nil {
		t.Fatal("expected unknown flag error")
	}
}
