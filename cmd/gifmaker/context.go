package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"gifmaker/internal/config"
	"gifmaker/internal/logging"
)

type rootFlags struct {
	config          string
	output          string
	dimensionPolicy string
	progress        string
	logLevel        string
	logFormat       string
}

type commandContext struct {
	flags *rootFlags

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error
}

func newCommandContext(flags *rootFlags) *commandContext {
	return &commandContext{flags: flags}
}

// ensureConfig loads the configuration once and layers flag overrides on top
// of the file and environment values.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		applyFlagOverrides(cfg, c.flags)
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
		c.configSeen = exists
	})
	return c.config, c.configErr
}

func applyFlagOverrides(cfg *config.Config, flags *rootFlags) {
	if v := strings.TrimSpace(flags.output); v != "" {
		cfg.Output.Filename = v
	}
	if v := strings.TrimSpace(flags.dimensionPolicy); v != "" {
		cfg.Frames.DimensionPolicy = strings.ToLower(v)
	}
	if v := strings.TrimSpace(flags.progress); v != "" {
		cfg.Progress.Style = strings.ToLower(v)
	}
	if v := strings.TrimSpace(flags.logLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(flags.logFormat); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
}

// newRunLogger builds the logger for one invocation. Every record carries a
// fresh run id; when logging.dir is set the run also gets its own JSON log
// file and older run logs are pruned.
func (c *commandContext) newRunLogger(stderr io.Writer) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	var logPath string
	if cfg.Logging.Dir != "" {
		logPath = filepath.Join(cfg.Logging.Dir, fmt.Sprintf("gifmaker-%s.log", runID))
	}
	logger, err := logging.New(logging.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Writer:    stderr,
		LogFile:   logPath,
		SessionID: runID,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize logging: %w", err)
	}
	if logPath != "" {
		logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays,
			logging.RetentionTarget{Dir: cfg.Logging.Dir, Pattern: "gifmaker-*.log", Exclude: []string{logPath}},
		)
	}
	logger.Debug("configuration resolved",
		logging.String("config_path", c.configPath),
		logging.Bool("config_file_found", c.configSeen),
		logging.String("output_filename", cfg.Output.Filename),
		logging.String("dimension_policy", cfg.Frames.DimensionPolicy),
		logging.String("progress_style", cfg.Progress.Style),
	)
	return logger, nil
}
