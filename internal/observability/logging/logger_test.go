package logging_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copydesk/internal/observability/logging"
)

func TestNewLogger(t *testing.T) {
	logger := logging.NewLogger()
	require.NotNil(t, logger)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
}

func TestNewLoggerDebugLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	logger := logging.NewLogger()
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestWithFields(t *testing.T) {
	logger := logging.NewTextLogger()
	enriched := logging.WithFields(logger, map[string]interface{}{"component": "pipeline"})
	assert.NotNil(t, enriched)
}

func TestLoggerContextRoundTrip(t *testing.T) {
	logger := logging.NewLogger()
	ctx := logging.WithLogger(context.Background(), logger)
	assert.Same(t, logger, logging.FromContext(ctx))
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.NotNil(t, logging.FromContext(context.Background()))
}
