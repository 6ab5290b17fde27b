package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	l, err := NewLogger("local", "debug")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = NewLogger("prod")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))

	_, err = NewLogger("staging")
	assert.Error(t, err)

	_, err = NewLogger("local", "loud")
	assert.Error(t, err)
}

func TestFromContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	l, err := NewLogger("local", "warn")
	require.NoError(t, err)
	ctx := ContextWithLogger(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))

	assert.NotNil(t, FromContext(nil))
	assert.NotNil(t, FromContext(ContextWithLogger(context.Background(), nil)))
}

func TestForCommand(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := ContextWithLogger(context.Background(), zap.New(core))

	ForCommand(ctx, "aide task create").Info("created task")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "aide task create", logs.All()[0].ContextMap()["command"])

	assert.NotNil(t, ForCommand(context.Background(), "aide search"))
}
