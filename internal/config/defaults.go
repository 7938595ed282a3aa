package config

const (
	defaultOutputFilename   = "out.gif"
	defaultDimensionPolicy  = "reject"
	defaultProgressStyle    = "auto"
	defaultLogFormat        = "console"
	defaultLogLevel         = "warn"
	defaultLogRetentionDays = 30
	defaultConfigPath       = "~/.config/gifmaker/config.toml"
	projectConfigName       = "gifmaker.toml"
	envLogLevel             = "GIFMAKER_LOG_LEVEL"
	envLogFormat            = "GIFMAKER_LOG_FORMAT"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Output: Output{
			Filename: defaultOutputFilename,
		},
		Frames: Frames{
			DimensionPolicy: defaultDimensionPolicy,
		},
		Progress: Progress{
			Style: defaultProgressStyle,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
