package contextutil

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
)

func TestLoggerFromContext(t *testing.T) {
	if got := LoggerFromContext(context.Background()); got != slog.Default() {
		t.Error("LoggerFromContext() without logger should return slog.Default()")
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil)).With("request_id", "abc")
	ctx := WithLogger(context.Background(), logger)

	LoggerFromContext(ctx).Info("hello")
	if !bytes.Contains(buf.Bytes(), []byte("request_id=abc")) {
		t.Errorf("expected request-scoped attributes in output, got %q", buf.String())
	}
}
