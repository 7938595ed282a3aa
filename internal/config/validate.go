package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"gifmaker/internal/failures"
	"gifmaker/internal/gifenc"
	"gifmaker/internal/logging"
	"gifmaker/internal/progress"
)

// Validate ensures the configuration is usable. Failures carry
// failures.ErrConfiguration.
func (c *Config) Validate() error {
	if err := c.validateOutput(); err != nil {
		return invalid(err)
	}
	if _, err := gifenc.ParseDimensionPolicy(c.Frames.DimensionPolicy); err != nil {
		return invalid(fmt.Errorf("frames.dimension_policy: %w", err))
	}
	if !progress.ValidStyle(c.Progress.Style) {
		return invalid(fmt.Errorf("progress.style %q must be one of auto, lines, bar, none", c.Progress.Style))
	}
	if err := c.validateLogging(); err != nil {
		return invalid(err)
	}
	return nil
}

func (c *Config) validateOutput() error {
	name := c.Output.Filename
	if name == "" {
		return fmt.Errorf("output.filename must be set")
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("output.filename %q must be a file name without directories", name)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidFormat(c.Logging.Format) {
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level %q must be debug, info, warn, or error", c.Logging.Level)
	}
	return nil
}

func invalid(err error) error {
	return failures.Wrap(failures.ErrConfiguration, "validate config", "", err)
}
