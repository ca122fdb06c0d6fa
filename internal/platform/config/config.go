// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// FromEnv fills target from environment variables declared via `env`
// struct tags, applying envDefault values for unset variables.
func FromEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("load config from env: %w", err)
	}
	return nil
}

// Exitf reports a fatal startup error on stderr and exits with status 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
