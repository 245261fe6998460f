package di

import (
	"book-inventory/application/commands/bus"
	"book-inventory/application/ports"
	querybus "book-inventory/application/queries/bus"
	"book-inventory/application/services"
	"book-inventory/infrastructure/config"
	"book-inventory/interfaces/http/rest"
	"book-inventory/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	Tracer     *observability.Tracer
	Metrics    *observability.Metrics
	BookRepo   ports.BookRepository
	ReviewRepo ports.ReviewRepository
	Reviews    *services.ReviewService
	CommandBus *bus.CommandBus
	QueryBus   *querybus.QueryBus
	Dispatcher *rest.Dispatcher
}
