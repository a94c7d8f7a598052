package prices

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/e-n-s-o/enso/internal/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestTokenID(t *testing.T) {
	id, ok := TokenID("btc")
	assert.True(t, ok)
	assert.Equal(t, "bitcoin", id)

	id, ok = TokenID("CRO")
	assert.True(t, ok)
	assert.Equal(t, "crypto-com-chain", id)

	_, ok = TokenID("NOPE")
	assert.False(t, ok)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.Client(), server.URL, 1, time.Minute), server
}

func TestGetPrices_BatchedSingleCall(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.Equal(t, "/simple/price", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "bitcoin,ethereum", q.Get("ids"))
		assert.Equal(t, "usd,btc", q.Get("vs_currencies"))
		assert.Equal(t, "true", q.Get("include_24hr_change"))
		w.Write([]byte(`{
			"bitcoin":  {"usd": 50000, "btc": 1, "usd_24h_change": 1.2},
			"ethereum": {"usd": 3000, "btc": 0.06, "usd_24h_change": -0.5}
		}`))
	})

	got := client.GetPrices(context.Background(), []string{"btc", "eth"})

	assert.Equal(t, 1, calls)
	require.Len(t, got, 2)
	assert.True(t, got["BTC"].PriceUsd.Equal(decimal.NewFromInt(50000)))
	assert.True(t, got["ETH"].PriceBtc.Equal(decimal.RequireFromString("0.06")))
	assert.True(t, got["ETH"].Change24h.Equal(decimal.RequireFromString("-0.5")))
	assert.Equal(t, "BTC", got["BTC"].Symbol)
}

func TestGetPrices_UnknownTickersSkipNetwork(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	assert.Empty(t, client.GetPrices(context.Background(), nil))
	assert.Empty(t, client.GetPrices(context.Background(), []string{"NOPE", "ALSO-NOPE"}))
	assert.Equal(t, 0, calls)
}

func TestGetPrices_ProviderOmissionsAreOmitted(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"bitcoin": {"usd": 50000}}`))
	})

	got := client.GetPrices(context.Background(), []string{"BTC", "ETH", "NOPE"})

	require.Len(t, got, 1)
	_, ok := got["ETH"]
	assert.False(t, ok)
}

func TestGetPrices_FailureDegradesToEmpty(t *testing.T) {
	t.Run("non-2xx", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
		assert.Empty(t, client.GetPrices(context.Background(), []string{"BTC"}))
	})

	t.Run("malformed payload", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		})
		assert.Empty(t, client.GetPrices(context.Background(), []string{"BTC"}))
	})

	t.Run("connection refused", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		client := NewClient(server.Client(), server.URL, 1, time.Minute)
		server.Close()
		assert.Empty(t, client.GetPrices(context.Background(), []string{"BTC"}))
	})
}

func TestGetPrices_SecondCallServedFromCache(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"bitcoin": {"usd": 50000, "btc": 1, "usd_24h_change": 0}}`))
	})

	first := client.GetPrices(context.Background(), []string{"BTC"})
	second := client.GetPrices(context.Background(), []string{"BTC"})

	assert.Equal(t, 1, calls)
	assert.True(t, first["BTC"].PriceUsd.Equal(second["BTC"].PriceUsd))
}

func TestStatusError_IncludesNumericCode(t *testing.T) {
	err := &statusError{code: 429}
	assert.Contains(t, err.Error(), "429")

	// Non-standard codes have no text name; the number must still land
	// in the log line.
	err = &statusError{code: 499}
	assert.Contains(t, err.Error(), "499")
}

func TestGetPrice_SingleSymbol(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"bitcoin": {"usd": 42000}}`))
	})

	p, ok := client.GetPrice(context.Background(), "btc")
	require.True(t, ok)
	assert.Equal(t, "BTC", p.Symbol)
	assert.True(t, p.PriceUsd.Equal(decimal.NewFromInt(42000)))

	_, ok = client.GetPrice(context.Background(), "NOPE")
	assert.False(t, ok)
}
