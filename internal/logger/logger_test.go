package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLoggerEnvironments(t *testing.T) {
	for _, env := range []string{"prod", "local", "dev", "docker"} {
		l, err := NewLogger(env)
		require.NoError(t, err, env)
		require.NotNil(t, l)
	}

	_, err := NewLogger("staging")
	require.Error(t, err)
}

func TestNewLoggerLevelOverride(t *testing.T) {
	l, err := NewLogger("prod", "debug")
	require.NoError(t, err)
	require.True(t, l.Core().Enabled(zapcore.DebugLevel))

	_, err = NewLogger("prod", "loud")
	require.Error(t, err)
}

func TestFromContext(t *testing.T) {
	require.NotNil(t, FromContext(context.Background()))

	l := zap.NewExample()
	ctx := ContextWithLogger(context.Background(), l)
	require.Same(t, l, FromContext(ctx))
}
