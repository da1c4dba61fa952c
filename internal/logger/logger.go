// Package logger configures the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"dashboard-backend/internal/config"
)

const timeFormat = "2006-01-02 15:04:05"

// Apply sets the global level and writers. The console is always written;
// when cfg.File is set a rotating file is added next to it.
func Apply(cfg config.LogConfig) {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: timeFormat}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			log.Logger = zerolog.New(out).With().Timestamp().Logger()
			log.Error().Err(err).Str("path", cfg.File).Msg("Failed to prepare log directory; logging to console only")
			return
		}
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
		out = zerolog.MultiLevelWriter(out, file)
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
