package di

import (
	"context"
	"fmt"
	"time"

	"book-inventory/application/commands/bus"
	commandhandlers "book-inventory/application/commands/handlers"
	"book-inventory/application/ports"
	querybus "book-inventory/application/queries/bus"
	queryhandlers "book-inventory/application/queries/handlers"
	"book-inventory/application/services"
	"book-inventory/infrastructure/config"
	"book-inventory/infrastructure/persistence/dynamodb"
	"book-inventory/infrastructure/persistence/memory"
	"book-inventory/infrastructure/persistence/mongodb"
	"book-inventory/interfaces/http/rest"
	"book-inventory/interfaces/http/rest/handlers"
	"book-inventory/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	if cfg.LogLevel != "" {
		level, err := zap.ParseAtomicLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		zapCfg.Level = level
	}

	return zapCfg.Build()
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer(cfg.ServiceName, cfg.EnableTracing)
}

// ProvideMetrics creates metrics instance, or nil when metrics are disabled
func ProvideMetrics(cfg *config.Config) *observability.Metrics {
	if !cfg.EnableMetrics {
		return nil
	}
	return observability.NewMetrics("book_inventory")
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client. DYNAMODB_ENDPOINT points
// it at a local DynamoDB.
func ProvideDynamoDBClient(awsCfg aws.Config, cfg *config.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})
}

// ProvideBookRepository creates the record store gateway
func ProvideBookRepository(
	client *awsdynamodb.Client,
	cfg *config.Config,
	tracer *observability.Tracer,
	logger *zap.Logger,
) ports.BookRepository {
	if cfg.StorageBackend == config.StorageMemory {
		logger.Warn("Using in-memory book store")
		return memory.NewBookRepository()
	}
	return dynamodb.NewBookRepository(
		client,
		cfg.DynamoDBTable,
		int32(cfg.ScanPageSize),
		tracer,
		logger,
	)
}

// ProvideMongoClient connects to the review store. It returns a nil client
// when no ATLAS_URI is configured.
func ProvideMongoClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*mongo.Client, func(), error) {
	if cfg.AtlasURI == "" || cfg.StorageBackend == config.StorageMemory {
		return nil, func() {}, nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.AtlasURI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to review store: %w", err)
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			logger.Error("Failed to disconnect review store", zap.Error(err))
		}
	}
	return client, cleanup, nil
}

// ProvideReviewRepository creates the review store gateway. Without a Mongo
// client it falls back to an empty in-memory store.
func ProvideReviewRepository(
	client *mongo.Client,
	cfg *config.Config,
	tracer *observability.Tracer,
	logger *zap.Logger,
) ports.ReviewRepository {
	if client == nil {
		logger.Warn("No review store configured, books will be served without reviews")
		return memory.NewReviewRepository()
	}
	collection := client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection)
	return mongodb.NewReviewRepository(collection, tracer, logger)
}

// ProvideReviewBreaker creates the review store circuit breaker
func ProvideReviewBreaker(cfg *config.Config, logger *zap.Logger) *gobreaker.CircuitBreaker {
	return services.NewReviewBreaker(services.BreakerSettings{
		Name:                "review-store",
		ConsecutiveFailures: uint32(cfg.BreakerFailures),
		OpenTimeout:         cfg.BreakerOpenTimeout(),
		HalfOpenRequests:    uint32(cfg.BreakerHalfOpenRequests),
	}, logger)
}

// ProvideReviewService creates the fault-tolerant review reader
func ProvideReviewService(
	repo ports.ReviewRepository,
	breaker *gobreaker.CircuitBreaker,
	metrics *observability.Metrics,
	cfg *config.Config,
	logger *zap.Logger,
) *services.ReviewService {
	return services.NewReviewService(repo, breaker, metrics, cfg.ReviewTimeout(), logger)
}

// ProvideReviewReader exposes the review service through its port
func ProvideReviewReader(svc *services.ReviewService) ports.ReviewReader {
	return svc
}

// ProvideCommandBus creates the command bus with all book handlers registered
func ProvideCommandBus(books ports.BookRepository, logger *zap.Logger) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(bus.LoggingMiddleware(logger))
	if err := commandhandlers.RegisterAll(commandBus, books, logger); err != nil {
		return nil, fmt.Errorf("failed to register command handlers: %w", err)
	}
	return commandBus, nil
}

// ProvideQueryBus creates the query bus with all book handlers registered
func ProvideQueryBus(books ports.BookRepository, reviews ports.ReviewReader, logger *zap.Logger) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus(querybus.LoggingMiddleware(logger))
	if err := queryhandlers.RegisterAll(queryBus, books, reviews, logger); err != nil {
		return nil, fmt.Errorf("failed to register query handlers: %w", err)
	}
	return queryBus, nil
}

// ProvideBookHandler creates the request handler
func ProvideBookHandler(commandBus *bus.CommandBus, queryBus *querybus.QueryBus, logger *zap.Logger) *handlers.BookHandler {
	return handlers.NewBookHandler(commandBus, queryBus, logger)
}

// ProvideDispatcher creates the router/dispatcher
func ProvideDispatcher(books *handlers.BookHandler, metrics *observability.Metrics, logger *zap.Logger) *rest.Dispatcher {
	return rest.NewDispatcher(books, metrics, logger)
}
