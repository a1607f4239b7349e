package ordertime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/stockview/backend/internal/domain"
	"github.com/stockview/backend/internal/metrics"
	"golang.org/x/time/rate"
)

const (
	DefaultPageSize = 500
	DefaultMaxPages = 200

	metricsSource = "ordertime"
)

// Config holds the list API connection settings
type Config struct {
	BaseURL   string
	APIKey    string
	Username  string
	Password  string
	PageSize  int
	MaxPages  int
	RateLimit float64 // requests per second, <= 0 disables limiting
	Burst     int
	Timeout   time.Duration
}

// Client handles communication with the OrderTime list API
type Client struct {
	httpClient  *http.Client
	cfg         Config
	rateLimiter *rate.Limiter
	classifier  Classifier
	metrics     *metrics.Registry
	debug       bool
}

// NewClient creates a new OrderTime API client
func NewClient(cfg Config) *Client {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultMaxPages
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cfg:         cfg,
		rateLimiter: rate.NewLimiter(limit, burst),
		classifier:  DefaultClassifier,
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

// SetClassifier replaces the auth failure classifier
func (c *Client) SetClassifier(classifier Classifier) {
	if classifier != nil {
		c.classifier = classifier
	}
}

// ListAll fetches every record of entityType, one page at a time.
// Paging stops on a short page or after MaxPages pages.
func (c *Client) ListAll(ctx context.Context, entityType string, filters []domain.ListFilter) ([]domain.RawRecord, error) {
	if c.cfg.BaseURL == "" {
		return nil, domain.MissingSetting("STOCKVIEW_ORDERTIME_BASE_URL")
	}
	if c.cfg.APIKey == "" {
		return nil, domain.MissingSetting("STOCKVIEW_ORDERTIME_API_KEY")
	}

	all := make([]domain.RawRecord, 0)
	for page := 1; page <= c.cfg.MaxPages; page++ {
		request := domain.ListRequest{
			Type:            entityType,
			PageNumber:      page,
			NumberOfRecords: c.cfg.PageSize,
			Filters:         filters,
			Sortation:       domain.Sortation{PropertyName: "Id", Direction: 1},
		}

		records, err := c.fetchPage(ctx, request)
		if err != nil {
			return nil, fmt.Errorf("list %s page %d: %w", entityType, page, err)
		}
		all = append(all, records...)

		if c.debug {
			log.Printf("[OrderTime] %s page %d: %d records", entityType, page, len(records))
		}
		if len(records) < c.cfg.PageSize {
			break
		}
	}

	return all, nil
}

// fetchPage posts one page request, walking the auth strategies until one is accepted
func (c *Client) fetchPage(ctx context.Context, request domain.ListRequest) ([]domain.RawRecord, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	// Every page probes the strategies from the top; the accepted one is not remembered.
	strategies := Strategies(c.cfg.APIKey, c.cfg.Username, c.cfg.Password)
	var lastStatus int
	var lastBody []byte

	for _, strategy := range strategies {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		status, body, err := c.doRequest(ctx, payload, strategy)
		if err != nil {
			c.metrics.ObserveUpstream(metricsSource, metrics.OutcomeError)
			return nil, err
		}

		if status >= 200 && status < 300 {
			c.metrics.ObserveUpstream(metricsSource, metrics.OutcomeOK)
			return decodePage(body)
		}

		if c.classifier(status, body) != VerdictNextStrategy {
			c.metrics.ObserveUpstream(metricsSource, metrics.OutcomeError)
			log.Printf("[OrderTime] API error - Status: %d, Body: %s", status, domain.TruncateBody(string(body)))
			return nil, domain.NewFetchError(status, body)
		}

		c.metrics.ObserveUpstream(metricsSource, metrics.OutcomeAuthRetry)
		if c.debug {
			log.Printf("[OrderTime] %s auth rejected (status %d), trying next scheme", strategy.Name, status)
		}
		lastStatus, lastBody = status, body
	}

	return nil, &domain.AuthError{
		Status:   lastStatus,
		Body:     domain.TruncateBody(string(lastBody)),
		Attempts: len(strategies),
	}
}

// doRequest executes a single POST and returns the status and full body
func (c *Client) doRequest(ctx context.Context, payload []byte, strategy AuthStrategy) (int, []byte, error) {
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/list"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "StockView/1.0")
	strategy.Apply(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFetch, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: reading body: %v", domain.ErrUpstreamFetch, err)
	}

	return resp.StatusCode, body, nil
}

// decodePage accepts either {"Records": [...]} or a bare array
func decodePage(body []byte) ([]domain.RawRecord, error) {
	trimmed := bytes.TrimSpace(body)

	if bytes.HasPrefix(trimmed, []byte("[")) {
		var records []domain.RawRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		return records, nil
	}

	var page domain.ListResponse
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return page.Records, nil
}
