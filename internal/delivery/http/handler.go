package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stockview/backend/internal/domain"
	"github.com/stockview/backend/internal/metrics"
	"github.com/stockview/backend/internal/normalize"
)

const (
	serviceName    = "stockview-backend"
	serviceVersion = "1.0.0"
)

// ReportRows produces rows for the report pipeline
type ReportRows interface {
	Rows(ctx context.Context) ([]domain.NormalizedRow, error)
}

// LiveRows produces rows for the live pipeline
type LiveRows interface {
	Rows(ctx context.Context, q domain.LiveQuery) ([]domain.NormalizedRow, error)
}

// HandlerConfig holds response settings for the inventory endpoints
type HandlerConfig struct {
	ReportMaxAge               int // seconds
	ReportStaleWhileRevalidate int // seconds
	Metrics                    *metrics.Registry
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	report             ReportRows
	live               LiveRows
	metrics            *metrics.Registry
	reportCacheControl string
}

// NewHandler creates a new HTTP handler. Either service may be nil when the
// deployment does not serve that pipeline.
func NewHandler(report ReportRows, live LiveRows, config HandlerConfig) *Handler {
	return &Handler{
		report:  report,
		live:    live,
		metrics: config.Metrics,
		reportCacheControl: fmt.Sprintf("public, max-age=%d, s-maxage=%d, stale-while-revalidate=%d",
			config.ReportMaxAge, config.ReportMaxAge, config.ReportStaleWhileRevalidate),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// ReportInventory returns normalized rows from the configured export.
// Upstream failures map to 502 with the truncated upstream body.
func (h *Handler) ReportInventory(c *gin.Context) {
	if h.report == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "report pipeline not configured"})
		return
	}

	rows, err := h.report.Rows(c.Request.Context())
	if err != nil {
		log.Printf("[Report] request %s failed: %v", requestID(c), err)

		var fetchErr *domain.FetchError
		if errors.As(err, &fetchErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "body": fetchErr.Body})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.metrics.ObserveRows("report", len(rows))
	c.Header("Cache-Control", h.reportCacheControl)
	c.JSON(http.StatusOK, domain.RowsResponse{Rows: rows})
}

// LiveInventory joins live OrderTime entities into rows.
// Query: location (exact), binPrefix (prefix), qtygt (strictly greater than, default 0).
func (h *Handler) LiveInventory(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Access-Control-Allow-Origin", "*")
	c.Writer.Header().Del("Access-Control-Allow-Credentials")

	if h.live == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "live pipeline not configured"})
		return
	}

	q := domain.LiveQuery{
		Location:  c.Query("location"),
		BinPrefix: c.Query("binPrefix"),
		QtyGT:     normalize.ToNumber(c.Query("qtygt")),
	}

	rows, err := h.live.Rows(c.Request.Context(), q)
	if err != nil {
		log.Printf("[Live] request %s failed: %v", requestID(c), err)
		msg := err.Error()
		var fetchErr *domain.FetchError
		if errors.As(err, &fetchErr) && fetchErr.Body != "" {
			msg = fmt.Sprintf("%s: %s", msg, fetchErr.Body)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
		return
	}

	h.metrics.ObserveRows("live", len(rows))
	c.JSON(http.StatusOK, domain.RowsResponse{Rows: rows})
}
