package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/transparentmetrics/fundamentals-cli/internal/fetcher"
)

const (
	defaultBaseURL      = "https://data.sec.gov/api/xbrl/companyfacts"
	defaultTickerMapURL = "https://www.sec.gov/files/company_tickers.json"
)

// Client retrieves EDGAR data through a Fetcher.
type Client struct {
	fetcher      fetcher.Fetcher
	baseURL      string
	tickerMapURL string
}

// ClientOption customizes the client.
type ClientOption func(*Client)

// WithBaseURL overrides the company facts base URL.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		if url != "" {
			c.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithTickerMapURL overrides the ticker directory URL.
func WithTickerMapURL(url string) ClientOption {
	return func(c *Client) {
		if url != "" {
			c.tickerMapURL = url
		}
	}
}

// NewClient creates an EDGAR client on top of the given fetcher.
func NewClient(f fetcher.Fetcher, options ...ClientOption) *Client {
	c := &Client{
		fetcher:      f,
		baseURL:      defaultBaseURL,
		tickerMapURL: defaultTickerMapURL,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// PadCIK zero-pads a CIK to the 10 digits the company facts URL expects.
func PadCIK(cik string) string {
	return fmt.Sprintf("%010s", strings.TrimSpace(cik))
}

// CompanyFacts fetches and decodes the company facts document for a CIK.
func (c *Client) CompanyFacts(ctx context.Context, cik string) (*CompanyFacts, error) {
	url := fmt.Sprintf("%s/CIK%s.json", c.baseURL, PadCIK(cik))
	body, err := c.fetcher.Download(ctx, url)
	if err != nil {
		return nil, eris.Wrapf(err, "edgar: fetch company facts for CIK %s", cik)
	}
	defer body.Close() //nolint:errcheck

	return ParseCompanyFacts(body)
}

// tickerEntry is one record of the SEC ticker directory.
type tickerEntry struct {
	CIK    int    `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// TickerMap downloads the SEC ticker directory and returns a map from
// upper-cased ticker symbol to 10-digit CIK.
func (c *Client) TickerMap(ctx context.Context) (map[string]string, error) {
	body, err := c.fetcher.Download(ctx, c.tickerMapURL)
	if err != nil {
		return nil, eris.Wrap(err, "edgar: fetch ticker directory")
	}
	defer body.Close() //nolint:errcheck

	var entries map[string]tickerEntry
	if err := json.NewDecoder(body).Decode(&entries); err != nil {
		return nil, eris.Wrap(err, "edgar: parse ticker directory")
	}

	out := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.Ticker == "" {
			continue
		}
		out[strings.ToUpper(e.Ticker)] = fmt.Sprintf("%010d", e.CIK)
	}
	return out, nil
}
