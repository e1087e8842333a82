package logger_test

import (
	"errors"
	"testing"

	"github.com/richiesure/day3-docker-ecs-deployment/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	l, err := logger.New(logger.Config{OutputPaths: []string{"stderr"}})
	require.NoError(t, err)
	require.NotNil(t, l)

	l.Info("logger built", logger.String("key", "value"))
}

func TestNew_InvalidOutputPath(t *testing.T) {
	t.Parallel()

	_, err := logger.New(logger.Config{OutputPaths: []string{"/nonexistent-dir/at/all/log.json"}})
	require.Error(t, err)
}

func TestFromZap_WithAttachesFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	log := logger.FromZap(zap.New(core)).With(logger.String("service", "demo"))

	log.Info("Server running", logger.Int("port", 3000))
	log.Debug("filtered out")
	log.Error("boom", logger.Error(errors.New("bad")))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Server running", entries[0].Message)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "demo", ctx["service"])
	assert.EqualValues(t, 3000, ctx["port"])
	assert.Equal(t, "bad", entries[1].ContextMap()["error"])
}

func TestNop_DoesNotPanic(t *testing.T) {
	t.Parallel()

	l := logger.NewNop()
	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error("e", logger.Any("k", 1))

	assert.Same(t, l, l.With(logger.Bool("b", true)))
	assert.NoError(t, l.Sync())
}
