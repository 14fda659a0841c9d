package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	SetOutput(buf)
	Configure("debug", "json")
	t.Cleanup(func() {
		SetOutput(logrus.StandardLogger().Out)
		SetLogLevel("info")
	})
	return buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var out map[string]any
	require.NoError(t, sonic.Unmarshal(lines[len(lines)-1], &out))
	return out
}

func TestLogging_IncludesRequestID(t *testing.T) {
	buf := captureLogs(t)
	ctx := WithRequestID(context.Background(), "req-1")

	Info(ctx, "hello", Fields{FieldPair: "binance/USDC"})

	e := lastEntry(t, buf)
	assert.Equal(t, "hello", e["msg"])
	assert.Equal(t, "req-1", e[FieldRequestID])
	assert.Equal(t, "binance/USDC", e[FieldPair])
	assert.Equal(t, "info", e["level"])
}

func TestLogPairOmitted(t *testing.T) {
	buf := captureLogs(t)

	LogPairOmitted(context.Background(), "okx/USDC", "provider_auth_required", errors.New("HTTP 401"))

	e := lastEntry(t, buf)
	assert.Equal(t, "warning", e["level"])
	assert.Equal(t, "provider_auth_required", e[FieldErrorKind])
	assert.Equal(t, "HTTP 401", e[FieldError])
	assert.Equal(t, "pair_omitted", e[FieldEvent])
}

func TestLogHTTPResponse_LevelByStatus(t *testing.T) {
	buf := captureLogs(t)
	ctx := WithStartTime(context.Background(), time.Now())

	LogHTTPResponse(ctx, "GET", "/api/all-exchanges", 500, 10)
	assert.Equal(t, "error", lastEntry(t, buf)["level"])

	LogHTTPResponse(ctx, "GET", "/api/bybit-p2p", 404, 10)
	assert.Equal(t, "warning", lastEntry(t, buf)["level"])

	LogHTTPResponse(ctx, "GET", "/health", 200, 10)
	e := lastEntry(t, buf)
	assert.Equal(t, "info", e["level"])
	assert.Contains(t, e, FieldDuration)
}

func TestSetLogLevel(t *testing.T) {
	SetLogLevel("warn")
	assert.Equal(t, logrus.WarnLevel, GetLogger().GetLevel())

	SetLogLevel("bogus")
	assert.Equal(t, logrus.InfoLevel, GetLogger().GetLevel())
}

func TestGenerateRequestID(t *testing.T) {
	a := GenerateRequestID()
	b := GenerateRequestID()

	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestContextHelpers_NilSafe(t *testing.T) {
	var ctx context.Context
	assert.Empty(t, GetRequestID(ctx))
	assert.True(t, GetStartTime(ctx).IsZero())
}
