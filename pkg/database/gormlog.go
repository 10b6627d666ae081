package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/cafedesk/pkg/logger"
)

// SlowQueryThreshold is the duration after which a statement is logged at WARN.
const SlowQueryThreshold = 200 * time.Millisecond

// slogGorm sends GORM's log output to the slog logger carried in the
// statement's context, so SQL lines share the run_id/command/user attrs.
type slogGorm struct {
	level gormlogger.LogLevel
	slow  time.Duration
}

// NewGormLogger returns a gorm logger.Interface backed by pkg/logger.
func NewGormLogger(level gormlogger.LogLevel, slow time.Duration) gormlogger.Interface {
	return &slogGorm{level: level, slow: slow}
}

func (l *slogGorm) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

func (l *slogGorm) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Info {
		logger.WithCtx(ctx).Info("gorm: " + fmt.Sprintf(msg, data...))
	}
}

func (l *slogGorm) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Warn {
		logger.WithCtx(ctx).Warn("gorm: " + fmt.Sprintf(msg, data...))
	}
}

func (l *slogGorm) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Error {
		logger.WithCtx(ctx).Error("gorm: " + fmt.Sprintf(msg, data...))
	}
}

func (l *slogGorm) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		sql, rows := fc()
		logger.WithCtx(ctx).Warn("sql failed", "sql", sql, "rows", rows, "elapsed", elapsed, "error", err)
	case l.slow > 0 && elapsed > l.slow && l.level >= gormlogger.Warn:
		sql, rows := fc()
		logger.WithCtx(ctx).Warn("slow sql", "sql", sql, "rows", rows, "elapsed", elapsed)
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		logger.WithCtx(ctx).Debug("sql", "sql", sql, "rows", rows, "elapsed", elapsed)
	}
}
