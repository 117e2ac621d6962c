// Package config defines dcmctl's global CLI flags and validates them.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// GlobalConfig holds flags shared by every dcmctl subcommand.
type GlobalConfig struct {
	LogLevel string `name:"log-level" help:"Log level (debug, info, warn, error)" default:"info" validate:"oneof=debug info warn error"`
	Pretty   bool   `name:"pretty" help:"Use human-readable log output instead of JSON" default:"true"`
	Debug    bool   `name:"debug" help:"Include caller information in log output"`
	Format   string `name:"format" help:"Output format for dump (text, table)" default:"text" validate:"oneof=text table"`
}

// Validate checks GlobalConfig against its struct tags.
func (c *GlobalConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
