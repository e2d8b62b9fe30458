// Package client provides a Go client for the stock dashboard API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// SeriesPoint is one row of the /data response.
type SeriesPoint struct {
	Date        string   `json:"date"`
	Open        float64  `json:"open"`
	High        float64  `json:"high"`
	Low         float64  `json:"low"`
	Close       float64  `json:"close"`
	Volume      float64  `json:"volume"`
	DailyReturn float64  `json:"daily_return"`
	MA7         *float64 `json:"ma_7"`
	Volatility  float64  `json:"volatility"`
	Symbol      string   `json:"symbol"`
}

// Summary is the /summary response.
type Summary struct {
	Symbol   string  `json:"symbol"`
	High52w  float64 `json:"high_52w"`
	Low52w   float64 `json:"low_52w"`
	AvgClose float64 `json:"avg_close"`
}

// ComparisonPoint is one aligned date of a /compare response. The server
// keys normalized values by "<SYMBOL>_normalized", so they are collected
// into a map keyed by symbol rather than fixed fields.
type ComparisonPoint struct {
	Date       string
	Normalized map[string]float64
}

// UnmarshalJSON picks the date and every "*_normalized" key out of a row.
func (p *ComparisonPoint) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Normalized = map[string]float64{}
	for key, value := range raw {
		if key == "date" {
			if err := json.Unmarshal(value, &p.Date); err != nil {
				return err
			}
			continue
		}
		if symbol, ok := strings.CutSuffix(key, "_normalized"); ok {
			var v float64
			if err := json.Unmarshal(value, &v); err != nil {
				return err
			}
			p.Normalized[symbol] = v
		}
	}
	return nil
}

// Comparison is the /compare response.
type Comparison struct {
	Symbol1 string            `json:"symbol1"`
	Symbol2 string            `json:"symbol2"`
	Days    int               `json:"days"`
	Data    []ComparisonPoint `json:"data"`
}

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
}

// Client calls the stock dashboard API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the API at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Companies lists the available symbols.
func (c *Client) Companies(ctx context.Context) ([]string, error) {
	var body struct {
		Companies []string `json:"companies"`
	}
	if err := c.get(ctx, "/companies", nil, &body); err != nil {
		return nil, err
	}
	return body.Companies, nil
}

// Data returns the last days of daily bars for a symbol. A days value of
// 0 uses the server default.
func (c *Client) Data(ctx context.Context, symbol string, days int) ([]SeriesPoint, error) {
	params := url.Values{}
	if days > 0 {
		params.Set("days", strconv.Itoa(days))
	}
	var body struct {
		Symbol string        `json:"symbol"`
		Data   []SeriesPoint `json:"data"`
	}
	if err := c.get(ctx, "/data/"+url.PathEscape(symbol), params, &body); err != nil {
		return nil, err
	}
	return body.Data, nil
}

// Summary returns the 52-week summary for a symbol.
func (c *Client) Summary(ctx context.Context, symbol string) (*Summary, error) {
	var body Summary
	if err := c.get(ctx, "/summary/"+url.PathEscape(symbol), nil, &body); err != nil {
		return nil, err
	}
	return &body, nil
}

// Compare returns the normalized comparison of two symbols over days.
func (c *Client) Compare(ctx context.Context, symbol1, symbol2 string, days int) (*Comparison, error) {
	params := url.Values{}
	params.Set("symbol1", symbol1)
	params.Set("symbol2", symbol2)
	if days > 0 {
		params.Set("days", strconv.Itoa(days))
	}
	var body Comparison
	if err := c.get(ctx, "/compare", params, &body); err != nil {
		return nil, err
	}
	return &body, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return fmt.Errorf("error creating HTTP request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error executing HTTP request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode, Detail: strings.TrimSpace(string(data))}
		var body struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(data, &body) == nil && body.Detail != "" {
			apiErr.Detail = body.Detail
		}
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("error parsing response: %w", err)
	}
	return nil
}
