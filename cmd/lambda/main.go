package main

import (
	"context"
	"log"
	"time"

	"book-inventory/infrastructure/config"
	"book-inventory/infrastructure/di"
	"book-inventory/interfaces/http/rest"
	lambdaadapter "book-inventory/interfaces/lambda"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

// handler is built once per execution environment and reused across
// invocations, together with the store clients it holds.
var handler *lambdaadapter.Handler

func init() {
	coldStart := time.Now()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, _, err := di.InitializeContainer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	router := rest.NewRouter(
		container.Dispatcher,
		container.Metrics,
		container.Tracer,
		cfg.EnableCORS,
		container.Logger,
	)
	handler = lambdaadapter.NewHandler(router.Setup(), container.Logger)

	container.Logger.Info("Lambda cold start completed",
		zap.Duration("duration", time.Since(coldStart)),
		zap.String("table", cfg.DynamoDBTable),
		zap.String("storage", cfg.StorageBackend),
	)
}

func main() {
	lambda.Start(handler.Handle)
}
