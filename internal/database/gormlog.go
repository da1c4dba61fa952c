package database

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// gormLogger forwards gorm's statement log to zerolog. Failed statements
// are logged at debug only, the services log them with more context.
type gormLogger struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func newGormLogger(slow time.Duration) gormlogger.Interface {
	return gormLogger{level: gormlogger.Warn, slowThreshold: slow}
}

func (l gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	l.level = level
	return l
}

func (l gormLogger) Info(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		log.Info().Msgf(msg, data...)
	}
}

func (l gormLogger) Warn(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		log.Warn().Msgf(msg, data...)
	}
}

func (l gormLogger) Error(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		log.Error().Msgf(msg, data...)
	}
}

func (l gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		query, rows := fc()
		log.Debug().Err(err).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", query).Msg("Statement failed")
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		query, rows := fc()
		log.Warn().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", query).Msg("Slow statement")
	case zerolog.GlobalLevel() <= zerolog.TraceLevel:
		query, rows := fc()
		log.Trace().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", query).Msg("Statement")
	}
}
