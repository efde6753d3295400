package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"expungement-interview/internal/config"
)

// Setup настраивает глобальный логгер zerolog
func Setup(cfg config.LogConfig) {
	log.Logger = New(cfg, os.Stderr)
}

// New создает логгер с уровнем и форматом из конфигурации.
// Неизвестный уровень превращается в info.
func New(cfg config.LogConfig, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
