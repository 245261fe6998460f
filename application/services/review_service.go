package services

import (
	"context"
	"fmt"
	"time"

	"book-inventory/application/ports"
	"book-inventory/domain/book"
	"book-inventory/pkg/observability"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// ReviewService is the fault-tolerant review store gateway. A review outage
// must never fail a book lookup, so every fault is logged, counted and turned
// into an empty review list.
type ReviewService struct {
	repo    ports.ReviewRepository
	breaker *gobreaker.CircuitBreaker
	metrics *observability.Metrics
	timeout time.Duration
	logger  *zap.Logger
}

// NewReviewService creates a new review service. breaker and metrics may be nil.
func NewReviewService(
	repo ports.ReviewRepository,
	breaker *gobreaker.CircuitBreaker,
	metrics *observability.Metrics,
	timeout time.Duration,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		repo:    repo,
		breaker: breaker,
		metrics: metrics,
		timeout: timeout,
		logger:  logger,
	}
}

// BreakerSettings configures the review store circuit breaker
type BreakerSettings struct {
	Name                string
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
	HalfOpenRequests    uint32
}

// NewReviewBreaker builds the circuit breaker guarding the review store. It
// trips after the configured number of consecutive failures and stays open
// for OpenTimeout before probing again.
func NewReviewBreaker(settings BreakerSettings, logger *zap.Logger) *gobreaker.CircuitBreaker {
	threshold := settings.ConsecutiveFailures
	if threshold == 0 {
		threshold = 5
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        settings.Name,
		MaxRequests: settings.HalfOpenRequests,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Review store circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}

// ReviewsForBook implements ports.ReviewReader
func (s *ReviewService) ReviewsForBook(ctx context.Context, bookID string) (reviews []book.Review) {
	defer func() {
		if r := recover(); r != nil {
			s.fallback(bookID, fmt.Errorf("panic in review lookup: %v", r))
			reviews = []book.Review{}
		}
	}()

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	find := func() (interface{}, error) {
		return s.repo.FindByBookID(callCtx, bookID)
	}

	var (
		result interface{}
		err    error
	)
	if s.breaker != nil {
		result, err = s.breaker.Execute(find)
	} else {
		result, err = find()
	}
	if err != nil {
		s.fallback(bookID, err)
		return []book.Review{}
	}

	found, _ := result.([]book.Review)
	if found == nil {
		return []book.Review{}
	}
	return found
}

func (s *ReviewService) fallback(bookID string, err error) {
	s.metrics.IncReviewFallback()
	s.logger.Error("Error retrieving reviews for book",
		zap.String("operation", "ReviewsForBook"),
		zap.String("bookid", bookID),
		zap.Error(err),
	)
}
