package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gormlogger "gorm.io/gorm/logger"
)

func TestGormLoggerTrace(t *testing.T) {
	ctx := context.Background()
	fc := func() (string, int64) { return "SELECT * FROM products", 3 }

	t.Run("errors are logged", func(t *testing.T) {
		zl, buf := newCapturedLogger()
		gl := NewGormLogger(zl, gormlogger.Warn)

		gl.Trace(ctx, time.Now(), fc, errors.New("connection reset"))

		assert.Contains(t, buf.String(), "SQL Error")
		assert.Contains(t, buf.String(), "connection reset")
	})

	t.Run("record not found is ignored by default", func(t *testing.T) {
		zl, buf := newCapturedLogger()
		gl := NewGormLogger(zl, gormlogger.Warn)

		gl.Trace(ctx, time.Now(), fc, gormlogger.ErrRecordNotFound)

		assert.Empty(t, buf.String())
	})

	t.Run("slow queries warn", func(t *testing.T) {
		zl, buf := newCapturedLogger()
		gl := NewGormLogger(zl, gormlogger.Warn, WithSlowThreshold(time.Nanosecond))

		gl.Trace(ctx, time.Now().Add(-time.Second), fc, nil)

		assert.Contains(t, buf.String(), "SLOW SQL")
	})

	t.Run("silent level logs nothing", func(t *testing.T) {
		zl, buf := newCapturedLogger()
		gl := NewGormLogger(zl, gormlogger.Silent)

		gl.Trace(ctx, time.Now(), fc, errors.New("ignored"))

		assert.Empty(t, buf.String())
	})

	t.Run("oversized statements are truncated", func(t *testing.T) {
		zl, buf := newCapturedLogger()
		gl := NewGormLogger(zl, gormlogger.Warn)

		long := make([]byte, maxLoggedSQL*2)
		for i := range long {
			long[i] = 'x'
		}
		bigInsert := func() (string, int64) { return "INSERT INTO sales " + string(long), 1 }

		gl.Trace(ctx, time.Now(), bigInsert, errors.New("boom"))

		assert.Contains(t, buf.String(), "truncated")
		assert.Less(t, len(buf.String()), maxLoggedSQL*2)
	})

	t.Run("request id from context is attached", func(t *testing.T) {
		zl, buf := newCapturedLogger()
		gl := NewGormLogger(zl, gormlogger.Warn, WithSlowThreshold(time.Nanosecond))

		reqCtx := context.WithValue(ctx, RequestIDKey, "req-42")
		gl.Trace(reqCtx, time.Now().Add(-time.Second), fc, nil)

		assert.Contains(t, buf.String(), `"request_id":"req-42"`)
	})
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("info"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("anything"))
}
