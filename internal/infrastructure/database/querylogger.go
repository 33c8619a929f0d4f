package database

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/geofoncier/geofoncier/internal/shared/errors"
	appLogger "github.com/geofoncier/geofoncier/internal/shared/logger"
)

const defaultSlowQueryThreshold = 200 * time.Millisecond

// queryLogger feeds gorm's query log into the application logger.
// Missing rows are not logged at all. Duplicate keys go to debug: the
// active-rank index turns concurrent claim writes into rank conflicts that
// the ledger retries or reports itself.
type queryLogger struct {
	log           appLogger.Interface
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

var _ gormlogger.Interface = (*queryLogger)(nil)

func newQueryLogger(log appLogger.Interface, slowThreshold time.Duration) *queryLogger {
	if slowThreshold <= 0 {
		slowThreshold = defaultSlowQueryThreshold
	}
	return &queryLogger{
		log:           log,
		level:         gormlogger.Warn,
		slowThreshold: slowThreshold,
	}
}

func (l *queryLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *queryLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.log.Debugw(fmt.Sprintf(msg, args...))
	}
}

func (l *queryLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.log.Warnw(fmt.Sprintf(msg, args...))
	}
}

func (l *queryLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.log.Errorw(fmt.Sprintf(msg, args...))
	}
}

func (l *queryLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)

	switch {
	case err != nil && stderrors.Is(err, gorm.ErrRecordNotFound):
		return
	case err != nil && errors.IsDuplicateError(err):
		sql, _ := fc()
		l.log.Debugw("duplicate key", "sql", sql, "error", err)
	case err != nil && l.level >= gormlogger.Error:
		sql, rows := fc()
		l.log.Errorw("database query failed",
			"sql", sql,
			"rows", rows,
			"elapsed_ms", elapsed.Milliseconds(),
			"error", err,
		)
	case elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.log.Warnw("slow query",
			"sql", sql,
			"rows", rows,
			"elapsed_ms", elapsed.Milliseconds(),
			"threshold_ms", l.slowThreshold.Milliseconds(),
		)
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.log.Debugw("database query", "sql", sql, "rows", rows, "elapsed_ms", elapsed.Milliseconds())
	}
}
