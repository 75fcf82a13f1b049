// Package finance provides stock market tools backed by the Financial
// Modeling Prep API.
package finance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

// DefaultBaseURL is the Financial Modeling Prep v3 API root.
const DefaultBaseURL = "https://financialmodelingprep.com/api/v3"

// APIKeyEnv is read when no API key is configured.
const APIKeyEnv = "FINANCIAL_MODELING_PREP_API_KEY"

// ErrNoData is returned when the API answers with an empty result set.
var ErrNoData = errors.New("no data returned")

// Quote is the current market snapshot of a symbol.
type Quote struct {
	Symbol               string  `mapstructure:"symbol" json:"symbol"`
	Price                float64 `mapstructure:"price" json:"price"`
	Volume               float64 `mapstructure:"volume" json:"volume"`
	PriceAvg50           float64 `mapstructure:"priceAvg50" json:"priceAvg50"`
	PriceAvg200          float64 `mapstructure:"priceAvg200" json:"priceAvg200"`
	EPS                  float64 `mapstructure:"eps" json:"EPS"`
	PE                   float64 `mapstructure:"pe" json:"PE"`
	EarningsAnnouncement string  `mapstructure:"earningsAnnouncement" json:"earningsAnnouncement"`
}

// Profile is the basic company information of a symbol.
type Profile struct {
	Symbol      string  `mapstructure:"symbol" json:"symbol"`
	CompanyName string  `mapstructure:"companyName" json:"companyName"`
	MarketCap   float64 `mapstructure:"mktCap" json:"marketCap"`
	Industry    string  `mapstructure:"industry" json:"industry"`
	Sector      string  `mapstructure:"sector" json:"sector"`
	Website     string  `mapstructure:"website" json:"website"`
	Beta        float64 `mapstructure:"beta" json:"beta"`
	Price       float64 `mapstructure:"price" json:"price"`
}

// IncomeStatement is the latest annual income statement of a symbol.
type IncomeStatement struct {
	Date        string  `mapstructure:"date" json:"date"`
	Revenue     float64 `mapstructure:"revenue" json:"revenue"`
	GrossProfit float64 `mapstructure:"grossProfit" json:"gross profit"`
	NetIncome   float64 `mapstructure:"netIncome" json:"net Income"`
	EBITDA      float64 `mapstructure:"ebitda" json:"ebitda"`
	EPS         float64 `mapstructure:"eps" json:"EPS"`
	EPSDiluted  float64 `mapstructure:"epsdiluted" json:"EPS diluted"`
}

// ClientOptions configures a Client.
type ClientOptions struct {
	// BaseURL overrides DefaultBaseURL.
	BaseURL string
	// APIKey defaults to the FINANCIAL_MODELING_PREP_API_KEY environment variable.
	APIKey string
	// HTTPClient defaults to a client with a 30 second timeout.
	HTTPClient *http.Client
}

// Client is a minimal Financial Modeling Prep API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Client.
func NewClient(optFns ...func(o *ClientOptions)) *Client {
	opts := ClientOptions{
		BaseURL: DefaultBaseURL,
		APIKey:  os.Getenv(APIKeyEnv),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		httpClient: opts.HTTPClient,
	}
}

// Quote fetches the current quote of symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (*Quote, error) {
	var q Quote
	if err := c.first(ctx, "quote-order/"+url.PathEscape(symbol), nil, &q); err != nil {
		return nil, err
	}
	q.Symbol = strings.ToUpper(symbol)
	return &q, nil
}

// Profile fetches the company profile of symbol.
func (c *Client) Profile(ctx context.Context, symbol string) (*Profile, error) {
	var p Profile
	if err := c.first(ctx, "profile/"+url.PathEscape(symbol), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// IncomeStatement fetches the latest annual income statement of symbol.
func (c *Client) IncomeStatement(ctx context.Context, symbol string) (*IncomeStatement, error) {
	var s IncomeStatement
	if err := c.first(ctx, "income-statement/"+url.PathEscape(symbol), url.Values{"period": {"annual"}}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// first fetches path and decodes the first row into out. Every field of out
// must be present in the row.
func (c *Client) first(ctx context.Context, path string, query url.Values, out any) error {
	rows, err := c.get(ctx, path, query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return ErrNoData
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     out,
		ErrorUnset: true,
	})
	if err != nil {
		return err
	}

	if err := decoder.Decode(rows[0]); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]map[string]any, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("apikey", c.apiKey)

	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var rows []map[string]any
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return rows, nil
}
