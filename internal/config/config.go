package config

import "log/slog"

// Deployment environments. Analytics is only ever emitted in EnvPublish.
const (
	EnvDev     = "dev"
	EnvPublish = "publish"
)

// Config holds generator settings, populated by viper from config.yaml,
// environment variables (STASIS_ prefix) and flag defaults.
type Config struct {
	OutputDir  string `mapstructure:"outputDir"`
	BaseURL    string `mapstructure:"baseURL"`
	ThemeDir   string `mapstructure:"themeDir"`
	Env        string `mapstructure:"env"`
	LogLevel   string `mapstructure:"logLevel"`
	CheckLinks bool   `mapstructure:"checkLinks"`
}

// ParseLevel maps a configured level string onto a slog level.
// Unrecognized values fall back to info.
func ParseLevel(raw string) slog.Level {
	switch raw {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
