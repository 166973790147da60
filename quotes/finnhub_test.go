package quotes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/quote", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("symbol") {
		case "AAPL":
			w.Write([]byte(`{"c": 178.72, "h": 179.8, "l": 177.1, "o": 178.0, "pc": 177.9}`))
		default:
			w.Write([]byte(`{"c": 0}`))
		}
	})
	mux.HandleFunc("/stock/candle", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("symbol") {
		case "AAPL":
			w.Write([]byte(`{"s": "ok", "t": [1000, 2000, 3000], "c": [100.0, 101.5, 99.0]}`))
		default:
			w.Write([]byte(`{"s": "no_data"}`))
		}
	})
	mux.HandleFunc("/forex/rates", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"base": "USD", "quote": {"ILS": 3.65, "EUR": 0.92}}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestFinnhubCurrentPrice(t *testing.T) {
	f := NewFinnhubAt(newTestServer(t).URL, "test-token")
	ctx := context.Background()

	price, ok := f.CurrentPrice(ctx, "AAPL")
	if !ok || price != 178.72 {
		t.Errorf("CurrentPrice(AAPL) = %f, %t, want 178.72", price, ok)
	}
	// A zero quote means the provider does not know the symbol.
	if _, ok := f.CurrentPrice(ctx, "NOPE"); ok {
		t.Error("unknown symbol should report absence")
	}
}

func TestFinnhubHistoricalSeries(t *testing.T) {
	f := NewFinnhubAt(newTestServer(t).URL, "test-token")
	ctx := context.Background()

	series, ok := f.HistoricalSeries(ctx, "AAPL", Daily, 0, 4000)
	if !ok {
		t.Fatal("HistoricalSeries(AAPL) should succeed")
	}
	if series.Len() != 3 || series.Close[1] != 101.5 {
		t.Errorf("series = %+v", series)
	}
	if _, ok := f.HistoricalSeries(ctx, "NOPE", Daily, 0, 4000); ok {
		t.Error("no_data status should report absence")
	}
}

func TestFinnhubUSDToILS(t *testing.T) {
	f := NewFinnhubAt(newTestServer(t).URL, "test-token")
	rate, ok := f.USDToILS(context.Background())
	if !ok || rate != 3.65 {
		t.Errorf("USDToILS() = %f, %t, want 3.65", rate, ok)
	}
}

func TestFinnhubWithoutToken(t *testing.T) {
	f := NewFinnhubAt(newTestServer(t).URL, "")
	if _, ok := f.CurrentPrice(context.Background(), "AAPL"); ok {
		t.Error("a client without a token should answer absence, not call out")
	}
}

func TestCurrentPrices(t *testing.T) {
	svc := &Static{Prices: map[string]float64{"AAPL": 178, "GOOG": 140}}
	prices := CurrentPrices(context.Background(), svc, []string{"AAPL", "GOOG", "NOPE"})
	if len(prices) != 2 || prices["AAPL"] != 178 || prices["GOOG"] != 140 {
		t.Errorf("prices = %v", prices)
	}
}
