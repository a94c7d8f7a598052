package prices

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/coocood/freecache"
	"github.com/e-n-s-o/enso/internal/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TokenPrice is a live quote for one asset. Ephemeral: fetched per
// request, never persisted.
type TokenPrice struct {
	Symbol    string          `json:"symbol"`
	PriceUsd  decimal.Decimal `json:"price_usd"`
	PriceBtc  decimal.Decimal `json:"price_btc"`
	Change24h decimal.Decimal `json:"change_24h"`
}

// Client fetches spot prices from the provider's batch quote endpoint.
// Responses are cached for the configured TTL; any failure degrades to
// an empty result instead of an error.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      *freecache.Cache
	ttl        time.Duration
}

func NewClient(httpClient *http.Client, baseURL string, cacheSizeMB int, ttl time.Duration) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if cacheSizeMB <= 0 {
		cacheSizeMB = 1
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		cache:      freecache.NewCache(cacheSizeMB * 1024 * 1024),
		ttl:        ttl,
	}
}

// quote mirrors one entry of the provider payload. Absent fields stay
// zero, matching the provider's own convention for missing quotes.
type quote struct {
	Usd          decimal.Decimal `json:"usd"`
	Btc          decimal.Decimal `json:"btc"`
	Usd24hChange decimal.Decimal `json:"usd_24h_change"`
}

// GetPrices resolves the given tickers to provider IDs and fetches USD
// and BTC quotes plus 24h change in a single batched call. Unknown
// tickers, and tickers the provider has no quote for, are omitted from
// the result. Network or decode failures yield an empty map, never an
// error; a single attempt is made per call.
func (c *Client) GetPrices(ctx context.Context, symbols []string) map[string]TokenPrice {
	ids := make([]string, 0, len(symbols))
	seen := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		id, ok := TokenID(s)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return map[string]TokenPrice{}
	}
	sort.Strings(ids)

	byID, ok := c.fetch(ctx, ids)
	if !ok {
		return map[string]TokenPrice{}
	}

	result := make(map[string]TokenPrice, len(symbols))
	for _, s := range symbols {
		upper := strings.ToUpper(s)
		id, known := TokenID(upper)
		if !known {
			continue
		}
		q, present := byID[id]
		if !present {
			continue
		}
		result[upper] = TokenPrice{
			Symbol:    upper,
			PriceUsd:  q.Usd,
			PriceBtc:  q.Btc,
			Change24h: q.Usd24hChange,
		}
	}
	return result
}

// GetPrice is the single-symbol convenience over the batch call.
func (c *Client) GetPrice(ctx context.Context, symbol string) (TokenPrice, bool) {
	p, ok := c.GetPrices(ctx, []string{symbol})[strings.ToUpper(symbol)]
	return p, ok
}

func (c *Client) fetch(ctx context.Context, ids []string) (map[string]quote, bool) {
	key := []byte(strings.Join(ids, ","))

	var byID map[string]quote

	if payload, err := c.cache.Get(key); err == nil {
		if json.Unmarshal(payload, &byID) == nil {
			return byID, true
		}
	}

	payload, err := c.request(ctx, ids)
	if err != nil {
		logger.Log.Warn("price fetch failed", zap.Error(err))
		return nil, false
	}
	if err := json.Unmarshal(payload, &byID); err != nil {
		logger.Log.Warn("price payload malformed", zap.Error(err))
		return nil, false
	}
	c.cache.Set(key, payload, int(c.ttl.Seconds()))
	return byID, true
}

func (c *Client) request(ctx context.Context, ids []string) ([]byte, error) {
	params := url.Values{}
	params.Set("ids", strings.Join(ids, ","))
	params.Set("vs_currencies", "usd,btc")
	params.Set("include_24hr_change", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/simple/price?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return "price provider returned status " + strconv.Itoa(e.code)
}
