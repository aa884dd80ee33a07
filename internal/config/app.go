package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	envLogLevel  = "COIL_LOG_LEVEL"
	envLogFile   = "COIL_LOG_FILE"
	envExportDir = "COIL_EXPORT_DIR"

	defaultLogLevel = "info"
)

// AppConfig holds the desktop shell settings.
type AppConfig struct {
	LogLevel  logrus.Level
	LogFile   string // empty logs to stderr
	ExportDir string // default directory offered by save dialogs
}

// Load reads the settings from the environment. A .env file next to the
// binary is honoured when present; real environment variables win over it.
func Load(envFiles ...string) AppConfig {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				logrus.Warnf("Ignoring %s: %v", f, err)
			}
		}
	}

	cfg := AppConfig{
		LogFile:   os.Getenv(envLogFile),
		ExportDir: os.Getenv(envExportDir),
	}

	level, err := logrus.ParseLevel(getEnv(envLogLevel, defaultLogLevel))
	if err != nil {
		logrus.Warnf("Invalid %s value, falling back to %s: %v", envLogLevel, defaultLogLevel, err)
		level = logrus.InfoLevel
	}
	cfg.LogLevel = level

	if cfg.ExportDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.ExportDir = home
		}
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
