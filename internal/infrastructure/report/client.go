package report

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/stockview/backend/internal/domain"
	"github.com/stockview/backend/internal/metrics"
)

const metricsSource = "report"

// Credentials authenticate the export request. Token wins over basic auth.
type Credentials struct {
	Token    string
	Username string
	Password string
}

// Client downloads an inventory export from a single configured URL
type Client struct {
	httpClient *http.Client
	sourceURL  string
	creds      Credentials
	metrics    *metrics.Registry
	debug      bool
}

// NewClient creates a new report export client
func NewClient(sourceURL string, creds Credentials, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		sourceURL:  sourceURL,
		creds:      creds,
	}
}

// SetDebug enables verbose logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// SetMetrics attaches a registry for upstream call counters
func (c *Client) SetMetrics(m *metrics.Registry) {
	c.metrics = m
}

// Fetch downloads the export and parses it as JSON, XLSX or CSV
func (c *Client) Fetch(ctx context.Context) ([]domain.RawRecord, error) {
	if c.sourceURL == "" {
		return nil, domain.MissingSetting("STOCKVIEW_REPORT_URL")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/csv, */*")
	req.Header.Set("User-Agent", "StockView/1.0")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(metricsSource, metrics.OutcomeError)
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFetch, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.ObserveUpstream(metricsSource, metrics.OutcomeError)
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrUpstreamFetch, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.ObserveUpstream(metricsSource, metrics.OutcomeError)
		log.Printf("[Report] Export fetch failed - Status: %d", resp.StatusCode)
		return nil, domain.NewFetchError(resp.StatusCode, body)
	}
	c.metrics.ObserveUpstream(metricsSource, metrics.OutcomeOK)

	records := Decode(body)
	if c.debug {
		log.Printf("[Report] Fetched %d bytes, %d records", len(body), len(records))
	}
	return records, nil
}

func (c *Client) authorize(req *http.Request) {
	switch {
	case c.creds.Token != "":
		req.Header.Set("Authorization", "Bearer "+c.creds.Token)
	case c.creds.Username != "":
		req.SetBasicAuth(c.creds.Username, c.creds.Password)
	}
}
