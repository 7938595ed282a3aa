package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeOutput()
	c.Frames.DimensionPolicy = strings.ToLower(strings.TrimSpace(c.Frames.DimensionPolicy))
	if c.Frames.DimensionPolicy == "" {
		c.Frames.DimensionPolicy = defaultDimensionPolicy
	}
	c.Progress.Style = strings.ToLower(strings.TrimSpace(c.Progress.Style))
	if c.Progress.Style == "" {
		c.Progress.Style = defaultProgressStyle
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeOutput() {
	c.Output.Filename = strings.TrimSpace(c.Output.Filename)
	if c.Output.Filename == "" {
		c.Output.Filename = defaultOutputFilename
	}
}

func (c *Config) normalizeLogging() error {
	if value, ok := os.LookupEnv(envLogFormat); ok && strings.TrimSpace(value) != "" {
		c.Logging.Format = value
	}
	if value, ok := os.LookupEnv(envLogLevel); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}
