package market

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"cryptoalert-telegram-bot/internal/types"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrNotFound means the upstream has no listing for the requested token.
// Transport and decode failures are returned as distinct wrapped errors so
// callers can tell an unknown symbol from an unavailable service.
var ErrNotFound = errors.New("token not found")

// Client queries a CoinGecko-compatible market API.
type Client struct {
	http    *resty.Client
	baseURL string
}

func NewClient(baseURL string) *Client {
	return &Client{
		http:    resty.New().SetTimeout(10 * time.Second),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// marketEntry mirrors the fields of /coins/markets we care about.
type marketEntry struct {
	Name           string  `json:"name"`
	Symbol         string  `json:"symbol"`
	CurrentPrice   float64 `json:"current_price"`
	MarketCap      float64 `json:"market_cap"`
	TotalVolume    float64 `json:"total_volume"`
	PriceChange24h float64 `json:"price_change_percentage_24h"`
}

// Lookup fetches the USD market snapshot for a token. The symbol is
// normalized to lowercase, matching the upstream's coin identifiers.
func (c *Client) Lookup(ctx context.Context, symbol string) (*types.TokenSnapshot, error) {
	id := strings.ToLower(strings.TrimSpace(symbol))

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"vs_currency": "usd",
			"ids":         id,
		}).
		Get(c.baseURL + "/coins/markets")
	if err != nil {
		return nil, errors.Wrapf(err, "market request failed for %q", id)
	}
	if resp.IsError() {
		return nil, errors.Errorf("market request for %q returned status %d", id, resp.StatusCode())
	}

	var entries []marketEntry
	if err := json.Unmarshal(resp.Body(), &entries); err != nil {
		return nil, errors.Wrapf(err, "malformed market response for %q", id)
	}

	if len(entries) == 0 {
		log.Debugf("no market data for token %q", id)
		return nil, ErrNotFound
	}

	e := entries[0]
	return &types.TokenSnapshot{
		Name:           e.Name,
		Symbol:         e.Symbol,
		PriceUSD:       e.CurrentPrice,
		MarketCap:      e.MarketCap,
		Volume24h:      e.TotalVolume,
		PriceChange24h: e.PriceChange24h,
	}, nil
}
