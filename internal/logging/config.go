// Package logging configura o logger logrus usado pela CLI e pelo provider.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	EnvLogLevel  = "LOGSTREAM_LOG_LEVEL"
	EnvLogFormat = "LOGSTREAM_LOG_FORMAT"
)

// Formatos aceitos em LOGSTREAM_LOG_FORMAT.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config descreve o logger a ser montado.
type Config struct {
	Level  logrus.Level
	Format string
	Output io.Writer
}

// DefaultConfig devolve Info em texto no stderr; verbose sobe para Debug.
func DefaultConfig(verbose bool) Config {
	cfg := Config{Level: logrus.InfoLevel, Format: FormatText, Output: os.Stderr}
	if verbose {
		cfg.Level = logrus.DebugLevel
	}
	return cfg
}

// New monta o logger a partir do padrão e das variáveis de ambiente.
// Uma variável de ambiente válida prevalece sobre --verbose.
func New(out io.Writer, verbose bool) *logrus.Logger {
	cfg := DefaultConfig(verbose)
	if out != nil {
		cfg.Output = out
	}
	applyEnvOverrides(&cfg)
	return Build(cfg)
}

// Build cria um logger novo; nunca altera o logger padrão do logrus.
func Build(cfg Config) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(cfg.Output)
	l.SetLevel(cfg.Level)
	switch cfg.Format {
	case FormatJSON:
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	}
	return l
}

func applyEnvOverrides(cfg *Config) {
	if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
		cfg.Level = lvl
	}
	if f, ok := parseFormat(os.Getenv(EnvLogFormat)); ok {
		cfg.Format = f
	}
}

func parseLevel(raw string) (logrus.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return logrus.InfoLevel, false
	case "trace":
		return logrus.TraceLevel, true
	case "debug":
		return logrus.DebugLevel, true
	case "info":
		return logrus.InfoLevel, true
	case "warn", "warning":
		return logrus.WarnLevel, true
	case "error":
		return logrus.ErrorLevel, true
	case "off", "none", "disabled":
		return logrus.PanicLevel, true
	default:
		return logrus.InfoLevel, false
	}
}

func parseFormat(raw string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case FormatText:
		return FormatText, true
	case FormatJSON:
		return FormatJSON, true
	default:
		return "", false
	}
}
