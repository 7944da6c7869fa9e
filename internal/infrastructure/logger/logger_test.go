package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func TestNew(t *testing.T) {
	t.Run("creates console logger", func(t *testing.T) {
		log, err := New(&Config{Level: "debug", Format: "console", Output: "stdout"})
		require.NoError(t, err)
		require.NotNil(t, log)
		assert.True(t, log.Core().Enabled(zap.DebugLevel))
	})

	t.Run("creates json logger", func(t *testing.T) {
		log, err := New(&Config{Level: "warn", Format: "json", Output: "stderr"})
		require.NoError(t, err)
		assert.False(t, log.Core().Enabled(zap.InfoLevel))
		assert.True(t, log.Core().Enabled(zap.WarnLevel))
	})

	t.Run("defaults unknown level to info", func(t *testing.T) {
		log, err := New(&Config{Level: "bogus", Format: "json", Output: "stdout"})
		require.NoError(t, err)
		assert.False(t, log.Core().Enabled(zap.DebugLevel))
		assert.True(t, log.Core().Enabled(zap.InfoLevel))
	})
}

func TestNewForEnvironment(t *testing.T) {
	t.Run("development", func(t *testing.T) {
		log, err := NewForEnvironment("development")
		require.NoError(t, err)
		require.NotNil(t, log)
		assert.True(t, log.Core().Enabled(zap.InfoLevel))
	})

	t.Run("production", func(t *testing.T) {
		log, err := NewForEnvironment("production")
		require.NoError(t, err)
		require.NotNil(t, log)
		assert.False(t, log.Core().Enabled(zap.DebugLevel))
	})
}

func TestContextHelpers(t *testing.T) {
	t.Run("round trips logger through context", func(t *testing.T) {
		log := zap.NewNop()
		ctx := WithContext(context.Background(), log)
		assert.Same(t, log, FromContext(ctx))
	})

	t.Run("falls back to nop logger", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})

	t.Run("ContextWithRequestID round trips the id", func(t *testing.T) {
		ctx := ContextWithRequestID(context.Background(), "req-123")
		assert.Equal(t, "req-123", GetRequestID(ctx))
	})

	t.Run("WithRequestID enriches both context and logger", func(t *testing.T) {
		base := zap.NewNop()
		ctx, enriched := WithRequestID(context.Background(), base, "req-456")
		assert.Equal(t, "req-456", GetRequestID(ctx))
		require.NotNil(t, enriched)
		assert.Same(t, enriched, FromContext(ctx))
	})

	t.Run("empty request id when absent", func(t *testing.T) {
		assert.Equal(t, "", GetRequestID(context.Background()))
	})
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("info"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("unknown"))
}
