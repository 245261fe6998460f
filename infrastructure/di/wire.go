//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"book-inventory/infrastructure/config"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideTracer,
	ProvideMetrics,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideBookRepository,
	ProvideMongoClient,
	ProvideReviewRepository,
	ProvideReviewBreaker,
	ProvideReviewService,
	ProvideReviewReader,
	ProvideCommandBus,
	ProvideQueryBus,
	ProvideBookHandler,
	ProvideDispatcher,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, func(), error) {
	wire.Build(SuperSet)
	return nil, nil, nil
}
