// Package app wires configuration into the services and router shared by
// the server and Lambda entrypoints.
package app

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/stockview/backend/config"
	httpDelivery "github.com/stockview/backend/internal/delivery/http"
	"github.com/stockview/backend/internal/infrastructure/ordertime"
	"github.com/stockview/backend/internal/infrastructure/report"
	"github.com/stockview/backend/internal/metrics"
	"github.com/stockview/backend/internal/usecase"
)

// NewRouter builds the gin engine for cfg
func NewRouter(cfg *config.Config) *gin.Engine {
	debug := cfg.Server.Environment == "development"

	var reg *metrics.Registry
	if cfg.Server.Metrics {
		reg = metrics.NewRegistry()
	}

	reportClient := report.NewClient(cfg.Report.URL, report.Credentials{
		Token:    cfg.Report.Token,
		Username: cfg.Report.Username,
		Password: cfg.Report.Password,
	}, cfg.Report.Timeout)
	reportClient.SetMetrics(reg)
	reportClient.SetDebug(debug)

	if cfg.Report.URL != "" {
		log.Printf("Report source configured: %s", cfg.Report.URL)
	} else {
		log.Printf("WARNING: report source not configured (report endpoint will return 500)")
	}

	otClient := ordertime.NewClient(ordertime.Config{
		BaseURL:   cfg.OrderTime.BaseURL,
		APIKey:    cfg.OrderTime.APIKey,
		Username:  cfg.OrderTime.Username,
		Password:  cfg.OrderTime.Password,
		PageSize:  cfg.OrderTime.PageSize,
		MaxPages:  cfg.OrderTime.MaxPages,
		RateLimit: cfg.OrderTime.RateLimit,
		Burst:     cfg.OrderTime.Burst,
		Timeout:   cfg.OrderTime.Timeout,
	})
	otClient.SetMetrics(reg)
	otClient.SetDebug(debug)

	if cfg.OrderTime.BaseURL != "" && cfg.OrderTime.APIKey != "" {
		log.Printf("OrderTime API configured: %s (page size %d, max pages %d)",
			cfg.OrderTime.BaseURL, cfg.OrderTime.PageSize, cfg.OrderTime.MaxPages)
	} else {
		log.Printf("WARNING: OrderTime API not configured (live endpoint will return 500)")
	}

	reportService := usecase.NewReportService(reportClient)
	liveService := usecase.NewLiveService(otClient, usecase.LiveServiceConfig{
		Types: usecase.EntityTypes{
			Inventory: cfg.OrderTime.Types.Inventory,
			LotSerial: cfg.OrderTime.Types.LotSerial,
			Item:      cfg.OrderTime.Types.Item,
			Bin:       cfg.OrderTime.Types.Bin,
		},
		EnableDebugLogging: debug,
	})

	handler := httpDelivery.NewHandler(reportService, liveService, httpDelivery.HandlerConfig{
		ReportMaxAge:               cfg.Report.MaxAge,
		ReportStaleWhileRevalidate: cfg.Report.StaleWhileRevalidate,
		Metrics:                    reg,
	})

	return httpDelivery.SetupRouter(cfg, handler, reg)
}
