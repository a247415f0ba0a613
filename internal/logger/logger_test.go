package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeroongit/Smart-news-hub/internal/logger"
)

func captureLogger(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: level,
	})
	logger.SetLogger(slog.New(handler))
	return &buf
}

func TestLogger_Info(t *testing.T) {
	buf := captureLogger(t, slog.LevelInfo)

	logger.Info("test message",
		slog.String("key", "value"),
		slog.Int("count", 42),
	)

	output := buf.String()
	assert.Contains(t, output, "test message")
	assert.Contains(t, output, "key")
	assert.Contains(t, output, "value")
	assert.Contains(t, output, "count")
	assert.Contains(t, output, "42")
}

func TestLogger_Error(t *testing.T) {
	buf := captureLogger(t, slog.LevelError)

	logger.Error("error occurred",
		slog.String("error", "test error"),
	)

	output := buf.String()
	assert.Contains(t, output, "error occurred")
	assert.Contains(t, output, "test error")
}

func TestLogger_DebugSuppressedAtInfoLevel(t *testing.T) {
	buf := captureLogger(t, slog.LevelInfo)

	logger.Debug("noisy detail")
	assert.Empty(t, buf.String())

	logger.Warn("worth seeing")
	assert.Contains(t, buf.String(), "worth seeing")
}

func TestLogger_WithRequestID(t *testing.T) {
	buf := captureLogger(t, slog.LevelInfo)

	reqLogger := logger.WithRequestID("req-123")
	reqLogger.Info("processing request")

	output := buf.String()
	assert.Contains(t, output, "processing request")
	assert.Contains(t, output, "request_id")
	assert.Contains(t, output, "req-123")
}

func TestLogger_WithArticleID(t *testing.T) {
	buf := captureLogger(t, slog.LevelInfo)

	articleLogger := logger.WithArticleID("article-456")
	articleLogger.Info("processing article")

	output := buf.String()
	assert.Contains(t, output, "processing article")
	assert.Contains(t, output, "article_id")
	assert.Contains(t, output, "article-456")
}

func TestLogger_WithUserID(t *testing.T) {
	buf := captureLogger(t, slog.LevelInfo)

	userLogger := logger.WithUserID("user-789")
	userLogger.Info("user action")

	output := buf.String()
	assert.Contains(t, output, "user action")
	assert.Contains(t, output, "user_id")
	assert.Contains(t, output, "user-789")
}

func TestLogger_InfoContext(t *testing.T) {
	buf := captureLogger(t, slog.LevelInfo)

	ctx := context.Background()
	logger.InfoContext(ctx, "context message",
		slog.String("key", "value"),
	)

	output := buf.String()
	assert.Contains(t, output, "context message")
	assert.Contains(t, output, "key")
	assert.Contains(t, output, "value")
}

func TestLogger_GetLogger(t *testing.T) {
	lg := logger.GetLogger()
	require.NotNil(t, lg)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"ERROR": slog.LevelError,
		"bogus": slog.LevelInfo,
		"":      slog.LevelInfo,
	}
	for input, want := range cases {
		assert.Equal(t, want, logger.ParseLevel(input), "ParseLevel(%q)", input)
	}
}
