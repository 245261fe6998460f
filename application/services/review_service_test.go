package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"book-inventory/application/ports/mocks"
	"book-inventory/domain/book"
	"book-inventory/pkg/observability"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestReviewService_ReviewsForBook_Success(t *testing.T) {
	// Arrange
	repo := new(mocks.MockReviewRepository)
	stored := []book.Review{
		{ReviewID: "r1", Comment: "Great", Reviewer: "ann"},
		{ReviewID: "r2", Comment: "Meh", Reviewer: "bob"},
	}
	repo.On("FindByBookID", mock.Anything, "42").Return(stored, nil)
	svc := NewReviewService(repo, nil, nil, time.Second, zap.NewNop())

	// Act
	reviews := svc.ReviewsForBook(context.Background(), "42")

	// Assert
	assert.Equal(t, stored, reviews)
	repo.AssertExpectations(t)
}

func TestReviewService_ReviewsForBook_FaultDegradesToEmpty(t *testing.T) {
	repo := new(mocks.MockReviewRepository)
	repo.On("FindByBookID", mock.Anything, "42").Return(nil, errors.New("server selection timeout"))
	core, logs := observer.New(zapcore.ErrorLevel)
	metrics := observability.NewMetrics("test")
	svc := NewReviewService(repo, nil, metrics, 0, zap.New(core))

	reviews := svc.ReviewsForBook(context.Background(), "42")

	require.NotNil(t, reviews)
	assert.Empty(t, reviews)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Error retrieving reviews for book", entry.Message)
	assert.Equal(t, "42", entry.ContextMap()["bookid"])
}

func TestReviewService_ReviewsForBook_NilResult(t *testing.T) {
	repo := new(mocks.MockReviewRepository)
	repo.On("FindByBookID", mock.Anything, "1").Return(nil, nil)
	svc := NewReviewService(repo, nil, nil, 0, zap.NewNop())

	assert.Equal(t, []book.Review{}, svc.ReviewsForBook(context.Background(), "1"))
}

func TestReviewService_ReviewsForBook_Panic(t *testing.T) {
	repo := new(mocks.MockReviewRepository)
	repo.On("FindByBookID", mock.Anything, "1").Run(func(args mock.Arguments) {
		panic("driver bug")
	}).Return(nil, nil)
	svc := NewReviewService(repo, nil, nil, 0, zap.NewNop())

	assert.Equal(t, []book.Review{}, svc.ReviewsForBook(context.Background(), "1"))
}

func TestReviewService_ReviewsForBook_AppliesTimeout(t *testing.T) {
	repo := new(mocks.MockReviewRepository)
	var deadlineSet bool
	repo.On("FindByBookID", mock.Anything, "1").Run(func(args mock.Arguments) {
		_, deadlineSet = args.Get(0).(context.Context).Deadline()
	}).Return([]book.Review{}, nil)
	svc := NewReviewService(repo, nil, nil, 50*time.Millisecond, zap.NewNop())

	svc.ReviewsForBook(context.Background(), "1")

	assert.True(t, deadlineSet)
}

func TestReviewService_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	repo := new(mocks.MockReviewRepository)
	repo.On("FindByBookID", mock.Anything, "1").Return(nil, errors.New("down"))
	breaker := NewReviewBreaker(BreakerSettings{
		Name:                "reviews",
		ConsecutiveFailures: 2,
		OpenTimeout:         time.Minute,
	}, zap.NewNop())
	svc := NewReviewService(repo, breaker, nil, 0, zap.NewNop())

	for i := 0; i < 5; i++ {
		assert.Empty(t, svc.ReviewsForBook(context.Background(), "1"))
	}

	assert.Equal(t, gobreaker.StateOpen, breaker.State())
	repo.AssertNumberOfCalls(t, "FindByBookID", 2)
}
