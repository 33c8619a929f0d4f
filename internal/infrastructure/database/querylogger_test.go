package database

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	appLogger "github.com/geofoncier/geofoncier/internal/shared/logger"
)

// recordingLogger keeps "level: msg" for every call.
type recordingLogger struct {
	lines *[]string
}

func newRecordingLogger() recordingLogger {
	return recordingLogger{lines: new([]string)}
}

func (r recordingLogger) add(level, msg string) { *r.lines = append(*r.lines, level+": "+msg) }

func (r recordingLogger) Debug(msg string, _ ...any)          { r.add("debug", msg) }
func (r recordingLogger) Info(msg string, _ ...any)           { r.add("info", msg) }
func (r recordingLogger) Warn(msg string, _ ...any)           { r.add("warn", msg) }
func (r recordingLogger) Error(msg string, _ ...any)          { r.add("error", msg) }
func (r recordingLogger) With(...any) appLogger.Interface     { return r }
func (r recordingLogger) Named(string) appLogger.Interface    { return r }
func (r recordingLogger) Debugw(msg string, _ ...interface{}) { r.add("debug", msg) }
func (r recordingLogger) Infow(msg string, _ ...interface{})  { r.add("info", msg) }
func (r recordingLogger) Warnw(msg string, _ ...interface{})  { r.add("warn", msg) }
func (r recordingLogger) Errorw(msg string, _ ...interface{}) { r.add("error", msg) }

func TestQueryLogger_Trace(t *testing.T) {
	query := func() (string, int64) { return "UPDATE claims SET active_rank = 2", 1 }
	now := time.Now()

	tests := []struct {
		name  string
		level gormlogger.LogLevel
		begin time.Time
		err   error
		want  []string
	}{
		{"missing row is silent", gormlogger.Info, now, gorm.ErrRecordNotFound, nil},
		{"mysql duplicate goes to debug", gormlogger.Warn, now,
			fmt.Errorf("Error 1062: Duplicate entry '4-2' for key 'idx_claims_property_active_rank'"),
			[]string{"debug: duplicate key"}},
		{"sqlite duplicate goes to debug", gormlogger.Warn, now,
			stderrors.New("UNIQUE constraint failed: claims.property_id, claims.active_rank"),
			[]string{"debug: duplicate key"}},
		{"other failure is an error", gormlogger.Warn, now, stderrors.New("connection reset"),
			[]string{"error: database query failed"}},
		{"slow query warns", gormlogger.Warn, now.Add(-time.Second), nil, []string{"warn: slow query"}},
		{"fast query hidden at warn", gormlogger.Warn, now, nil, nil},
		{"fast query traced at info", gormlogger.Info, now, nil, []string{"debug: database query"}},
		{"silent drops failures", gormlogger.Silent, now, stderrors.New("connection reset"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newRecordingLogger()
			l := newQueryLogger(rec, 0).LogMode(tt.level)

			l.Trace(context.Background(), tt.begin, query, tt.err)

			if tt.want == nil {
				assert.Empty(t, *rec.lines)
			} else {
				assert.Equal(t, tt.want, *rec.lines)
			}
		})
	}
}

func TestQueryLogger_LogModeCopies(t *testing.T) {
	rec := newRecordingLogger()
	base := newQueryLogger(rec, 50*time.Millisecond)
	silent := base.LogMode(gormlogger.Silent)

	silent.Warn(context.Background(), "index %s missing", "idx_claims_status")
	base.Warn(context.Background(), "index %s missing", "idx_claims_status")

	assert.Equal(t, []string{"warn: index idx_claims_status missing"}, *rec.lines)
	assert.Equal(t, 50*time.Millisecond, base.slowThreshold)
}
