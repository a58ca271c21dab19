// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Option adjusts how environment variables are read.
type Option func(*env.Options)

// WithPrefix prepends prefix to every env tag, e.g. "ARIA_MEMO_".
func WithPrefix(prefix string) Option {
	return func(opts *env.Options) {
		opts.Prefix = strings.TrimSpace(prefix)
	}
}

// WithEnvironment reads from the given map instead of the process environment.
func WithEnvironment(environment map[string]string) Option {
	return func(opts *env.Options) {
		opts.Environment = environment
	}
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any, options ...Option) error {
	var opts env.Options
	for _, apply := range options {
		if apply != nil {
			apply(&opts)
		}
	}
	if err := env.ParseWithOptions(target, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
