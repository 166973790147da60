package quotes

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"

	"github.com/PaesslerAG/jsonpath"
)

const finnhubHost = "https://finnhub.io/api/v1"

// Finnhub answers price questions from the finnhub.io REST API.
type Finnhub struct {
	token  string
	host   string
	client *http.Client
}

// NewFinnhub creates a client reading its API token from the FINNHUB_TOKEN
// environment variable. Responses are cached on disk for the day.
func NewFinnhub() *Finnhub {
	return &Finnhub{
		token:  os.Getenv("FINNHUB_TOKEN"),
		host:   finnhubHost,
		client: newDailyCachingClient("fintrack"),
	}
}

// NewFinnhubAt creates a client against a specific host, for tests.
func NewFinnhubAt(host, token string) *Finnhub {
	return &Finnhub{token: token, host: host, client: http.DefaultClient}
}

func (f *Finnhub) get(url string, result any) bool {
	if f.token == "" {
		return false
	}
	if err := jwget(f.client, url, result); err != nil {
		log.Printf("finnhub: %v", err)
		return false
	}
	return true
}

// CurrentPrice implements the Service interface.
func (f *Finnhub) CurrentPrice(ctx context.Context, symbol string) (float64, bool) {
	var quote struct {
		Current float64 `json:"c"`
	}
	u := fmt.Sprintf("%s/quote?symbol=%s&token=%s", f.host, url.QueryEscape(symbol), f.token)
	if !f.get(u, &quote) || quote.Current == 0 {
		return 0, false
	}
	return quote.Current, true
}

// HistoricalSeries implements the Service interface.
func (f *Finnhub) HistoricalSeries(ctx context.Context, symbol string, res Resolution, from, to int64) (*Series, bool) {
	var candle struct {
		Status     string    `json:"s"`
		Timestamps []int64   `json:"t"`
		Close      []float64 `json:"c"`
	}
	u := fmt.Sprintf("%s/stock/candle?symbol=%s&resolution=%s&from=%d&to=%d&token=%s",
		f.host, url.QueryEscape(symbol), res, from, to, f.token)
	if !f.get(u, &candle) || candle.Status != "ok" {
		return nil, false
	}
	if len(candle.Timestamps) != len(candle.Close) {
		log.Printf("finnhub: candle for %s has %d timestamps but %d closes", symbol, len(candle.Timestamps), len(candle.Close))
		return nil, false
	}
	return &Series{Timestamps: candle.Timestamps, Close: candle.Close}, true
}

// USDToILS implements the Service interface.
func (f *Finnhub) USDToILS(ctx context.Context) (float64, bool) {
	var doc any
	u := fmt.Sprintf("%s/forex/rates?base=USD&token=%s", f.host, f.token)
	if !f.get(u, &doc) {
		return 0, false
	}
	v, err := jsonpath.Get("$.quote.ILS", doc)
	if err != nil {
		log.Printf("finnhub: no ILS rate in forex response: %v", err)
		return 0, false
	}
	rate, ok := v.(float64)
	if !ok || rate <= 0 {
		return 0, false
	}
	return rate, true
}
