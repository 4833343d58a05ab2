package core

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"tradebot/config"
	"tradebot/pkg/exchange/bnf"
	"tradebot/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bootstrapTestApp(t *testing.T, baseUrl string) *App {
	t.Helper()
	t.Setenv("BINANCE_BASE_URL", "")
	t.Setenv("LOG_DIR", "")
	cfg, err := config.ParseConfig(nil, config.Environment{EnvName: types.EnvLocal})
	require.NoError(t, err)
	cfg.Exchange.BaseUrl = baseUrl
	cfg.Log.Dir = filepath.Join(t.TempDir(), "logs")
	cfg.Log.ConsoleLevel = "panic"

	app, err := Bootstrap(config.Environment{EnvName: types.EnvLocal}, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestAppRunEndToEnd(t *testing.T) {
	t.Setenv("BINANCE_API_KEY", "e2e-key-111")
	t.Setenv("BINANCE_API_SECRET", "e2e-secret-222")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "e2e-key-111", r.Header.Get("X-MBX-APIKEY"))
		assert.Equal(t, "LIMIT", r.URL.Query().Get("type"))
		assert.Equal(t, "GTC", r.URL.Query().Get("timeInForce"))
		assert.Equal(t, "30000", r.URL.Query().Get("price"))
		_, _ = w.Write([]byte(`{"orderId":77,"status":"NEW","symbol":"BTCUSDT","side":"BUY","type":"LIMIT"}`))
	}))
	defer server.Close()

	app := bootstrapTestApp(t, server.URL)
	price := "30000"
	out := app.Run(context.Background(), Input{Symbol: "btcusdt", Side: "BUY", OrderType: "limit", Quantity: "0.002", Price: &price}, nil)

	require.NoError(t, out.Err)
	assert.Equal(t, StateSent, out.State)
	assert.EqualValues(t, 77, out.Result.OrderID)
	assert.Equal(t, "0", out.Result.ExecutedQty)
	assert.Equal(t, "0", out.Result.AvgPrice)

	require.NoError(t, app.Close())
	data, err := os.ReadFile(app.LogPath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "order placed successfully")
	assert.Contains(t, string(data), app.RunId)
	assert.NotContains(t, string(data), "e2e-key-111")
	assert.NotContains(t, string(data), "e2e-secret-222")
}

func TestAppRunMissingCredentials(t *testing.T) {
	t.Setenv("BINANCE_API_KEY", "")
	t.Setenv("BINANCE_API_SECRET", "")

	app := bootstrapTestApp(t, "http://127.0.0.1:1")
	out := app.Run(context.Background(), Input{Symbol: "BTCUSDT", Side: "SELL", OrderType: "MARKET", Quantity: "1"}, nil)

	assert.Equal(t, StateFailed, out.State)
	assert.ErrorIs(t, out.Err, config.ErrMissingCredentials)
}

func TestAppRunExchangeRejected(t *testing.T) {
	t.Setenv("BINANCE_API_KEY", "k")
	t.Setenv("BINANCE_API_SECRET", "s")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code": -1121, "msg": "Invalid symbol."}`))
	}))
	defer server.Close()

	app := bootstrapTestApp(t, server.URL)
	out := app.Run(context.Background(), Input{Symbol: "NOPE", Side: "SELL", OrderType: "MARKET", Quantity: "1"}, nil)

	assert.Equal(t, StateExchangeRejected, out.State)
	var exErr *bnf.ExchangeError
	require.True(t, errors.As(out.Err, &exErr))
	assert.Equal(t, bnf.ExchangeError{Code: -1121, Message: "Invalid symbol.", HTTPStatus: 400}, *exErr)
}

func TestBootstrapBadLogLevel(t *testing.T) {
	cfg, err := config.ParseConfig(nil, config.Environment{})
	require.NoError(t, err)
	cfg.Log.Dir = t.TempDir()
	cfg.Log.Level = "chatty"

	_, err = Bootstrap(config.Environment{}, cfg)
	assert.Error(t, err)
}
