package finance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hupe1980/agentswarm/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/quote-order/aapl", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		_, _ = w.Write([]byte(`[{"symbol":"AAPL","price":190.5,"volume":1000,"priceAvg50":185.1,"priceAvg200":175.2,"eps":6.1,"pe":31.2,"earningsAnnouncement":"2025-01-30T21:30:00.000+0000","exchange":"NASDAQ"}]`))
	})
	mux.HandleFunc("/profile/AAPL", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"symbol":"AAPL","companyName":"Apple Inc.","mktCap":3000000000000,"industry":"Consumer Electronics","sector":"Technology","website":"https://www.apple.com","beta":1.2,"price":190.5}]`))
	})
	mux.HandleFunc("/income-statement/AAPL", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "annual", r.URL.Query().Get("period"))
		_, _ = w.Write([]byte(`[{"date":"2024-09-28","revenue":391035000000,"grossProfit":180683000000,"netIncome":93736000000,"ebitda":134661000000,"eps":6.11,"epsdiluted":6.08}]`))
	})
	mux.HandleFunc("/quote-order/NONE", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/profile/PART", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"symbol":"PART"}]`))
	})
	mux.HandleFunc("/quote-order/FAIL", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "limit reached", http.StatusTooManyRequests)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func newTestClient(t *testing.T) *Client {
	srv := newTestServer(t)
	return NewClient(func(o *ClientOptions) {
		o.BaseURL = srv.URL + "/"
		o.APIKey = "test-key"
		o.HTTPClient = srv.Client()
	})
}

func TestClient_Quote(t *testing.T) {
	q, err := newTestClient(t).Quote(context.Background(), "aapl")
	require.NoError(t, err)
	assert.Equal(t, &Quote{
		Symbol:               "AAPL",
		Price:                190.5,
		Volume:               1000,
		PriceAvg50:           185.1,
		PriceAvg200:          175.2,
		EPS:                  6.1,
		PE:                   31.2,
		EarningsAnnouncement: "2025-01-30T21:30:00.000+0000",
	}, q)
}

func TestClient_Profile(t *testing.T) {
	p, err := newTestClient(t).Profile(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc.", p.CompanyName)
	assert.InDelta(t, 3e12, p.MarketCap, 1)
}

func TestClient_IncomeStatement(t *testing.T) {
	s, err := newTestClient(t).IncomeStatement(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "2024-09-28", s.Date)
	assert.InDelta(t, 6.08, s.EPSDiluted, 1e-9)
}

func TestClient_Errors(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Quote(context.Background(), "NONE")
	assert.ErrorIs(t, err, ErrNoData)

	_, err = c.Profile(context.Background(), "PART")
	assert.ErrorContains(t, err, "companyName")

	_, err = c.Quote(context.Background(), "FAIL")
	assert.ErrorContains(t, err, "status 429")
}

func TestTools(t *testing.T) {
	c := newTestClient(t)
	tc := core.NewToolContext(context.Background(), "call_1", "Stock Price Agent", nil, nil)

	tools := Tools(c)
	require.Len(t, tools, 3)
	assert.Equal(t, "get_stock_price", tools[0].Name())
	assert.Equal(t, "get_company_financials", tools[1].Name())
	assert.Equal(t, "get_income_statement", tools[2].Name())

	out, err := tools[2].Call(tc, map[string]any{"symbol": "AAPL"})
	require.NoError(t, err)
	res, err := core.Interpret(out)
	require.NoError(t, err)
	assert.Contains(t, res.Value, `"gross profit":180683000000`)
	assert.Contains(t, res.Value, `"EPS diluted":6.08`)
}

func TestTools_ErrorPayload(t *testing.T) {
	c := newTestClient(t)
	tc := core.NewToolContext(context.Background(), "call_1", "Stock Price Agent", nil, nil)

	tests := []struct {
		tool   func(*Client) core.Tool
		symbol string
		want   string
	}{
		{func(c *Client) core.Tool { return NewStockPriceTool(c) }, "NONE", "Could not fetch price for symbol: NONE"},
		{func(c *Client) core.Tool { return NewCompanyFinancialsTool(c) }, "PART", "Could not fetch financials for symbol: PART"},
		{func(c *Client) core.Tool { return NewIncomeStatementTool(c) }, "XYZ", "Could not fetch financials for symbol: XYZ"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			out, err := tt.tool(c).Call(tc, map[string]any{"symbol": tt.symbol})
			require.NoError(t, err)
			assert.Equal(t, map[string]string{"error": tt.want}, out)
		})
	}
}
