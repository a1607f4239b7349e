package main

import (
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/gin-gonic/gin"
	"github.com/stockview/backend/config"
	"github.com/stockview/backend/internal/app"
	lambdaDelivery "github.com/stockview/backend/internal/delivery/lambda"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Server.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Printf("Starting StockView Lambda v1.0.0 (environment: %s)", cfg.Server.Environment)

	adapter := lambdaDelivery.NewAdapter(app.NewRouter(cfg))
	lambda.Start(adapter.Handle)
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
