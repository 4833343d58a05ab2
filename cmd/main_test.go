package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	in, err := parseFlags([]string{"--symbol", "BTCUSDT", "--side", "buy", "--order-type", "market", "--quantity", "0.01"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "BTCUSDT", in.Symbol)
	assert.Equal(t, "buy", in.Side)
	assert.Equal(t, "market", in.OrderType)
	assert.Equal(t, "0.01", in.Quantity)
	assert.Nil(t, in.Price)

	in, err = parseFlags([]string{"--symbol=BTCUSDT", "--side=SELL", "--order-type=LIMIT", "--quantity=1", "--price="}, io.Discard)
	require.NoError(t, err)
	require.NotNil(t, in.Price)
	assert.Equal(t, "", *in.Price)
}

func TestParseFlagsMissing(t *testing.T) {
	_, err := parseFlags([]string{"--symbol", "BTCUSDT"}, io.Discard)
	assert.EqualError(t, err, "the following arguments are required: --side, --order-type, --quantity")

	_, err = parseFlags([]string{"--symbol", "BTCUSDT", "--side", "BUY", "--order-type", "MARKET", "--quantity", "1", "extra"}, io.Discard)
	assert.Error(t, err)
}

func setupEnv(t *testing.T, baseUrl string) string {
	t.Helper()
	logDir := t.TempDir()
	t.Setenv("ENVIRONMENT", "local")
	t.Setenv("CONFIG_SOURCE", "")
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("LOG_DIR", logDir)
	t.Setenv("BINANCE_BASE_URL", baseUrl)
	t.Setenv("BINANCE_API_KEY", "cli-key")
	t.Setenv("BINANCE_API_SECRET", "cli-secret")
	return logDir
}

func TestRunSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"orderId":123,"status":"FILLED","symbol":"BTCUSDT","side":"BUY","type":"MARKET","executedQty":"0.01","avgPrice":"65432.10"}`))
	}))
	defer server.Close()
	setupEnv(t, server.URL)

	var stdout, stderr bytes.Buffer
	code := run([]string{"--symbol", "btcusdt", "--side", "buy", "--order-type", "market", "--quantity", "0.01"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "ORDER REQUEST SUMMARY")
	assert.Contains(t, stdout.String(), "Order ID   : 123")
	assert.Contains(t, stdout.String(), "Avg Price  : 65432.10")
}

func TestRunValidationFailure(t *testing.T) {
	setupEnv(t, "http://127.0.0.1:1")

	var stdout, stderr bytes.Buffer
	code := run([]string{"--symbol", "BTCUSDT", "--side", "BUY", "--order-type", "LIMIT", "--quantity", "1", "--price", ""}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Invalid price")
	assert.NotContains(t, stdout.String(), "ORDER REQUEST SUMMARY")
}

func TestRunExchangeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code": -1121, "msg": "Invalid symbol."}`))
	}))
	defer server.Close()
	setupEnv(t, server.URL)

	var stdout, stderr bytes.Buffer
	code := run([]string{"--symbol", "XXX", "--side", "BUY", "--order-type", "MARKET", "--quantity", "1"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Binance rejected the order (code -1121): Invalid symbol.")
}

func TestRunMissingCredentials(t *testing.T) {
	setupEnv(t, "http://127.0.0.1:1")
	t.Setenv("BINANCE_API_SECRET", "")

	var stdout, stderr bytes.Buffer
	code := run([]string{"--symbol", "BTCUSDT", "--side", "BUY", "--order-type", "MARKET", "--quantity", "1"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "BINANCE_API_SECRET")
}

func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run([]string{"-h"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "--order-type")
}

func TestRunUnreadableReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"orderId":"x"}`))
	}))
	defer server.Close()
	logDir := setupEnv(t, server.URL)
	logPath := filepath.Join(logDir, "trading_bot.log")

	var stdout, stderr bytes.Buffer
	code := run([]string{"--symbol", "BTCUSDT", "--side", "BUY", "--order-type", "MARKET", "--quantity", "1"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "An unexpected error occurred. Check "+logPath+" for details.")
	assert.NotContains(t, stdout.String(), "ORDER CONFIRMATION")

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "unexpected error")
	assert.NotContains(t, string(content), "cli-secret")
}

func TestGuardRecoversPanic(t *testing.T) {
	logger, hook := test.NewNullLogger()
	var stderr bytes.Buffer

	code := guard(logger, "/tmp/trading_bot.log", &stderr, func() int {
		panic("nil map write")
	})

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Check /tmp/trading_bot.log for details.")
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, log.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "unexpected error: nil map write", hook.LastEntry().Message)
	assert.Contains(t, hook.LastEntry().Data["stack"], "runtime/debug.Stack")
}

func TestGuardPassesExitCode(t *testing.T) {
	logger, hook := test.NewNullLogger()
	assert.Equal(t, 0, guard(logger, "", io.Discard, func() int { return 0 }))
	assert.Equal(t, 1, guard(logger, "", io.Discard, func() int { return 1 }))
	assert.Empty(t, hook.Entries)
}
