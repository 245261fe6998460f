package mocks

import (
	"context"

	"book-inventory/domain/book"

	"github.com/stretchr/testify/mock"
)

// MockBookRepository is a testify mock of ports.BookRepository
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) GetByID(ctx context.Context, bookID string) (book.Record, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(book.Record), args.Error(1)
}

func (m *MockBookRepository) ScanAll(ctx context.Context) ([]book.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]book.Record), args.Error(1)
}

func (m *MockBookRepository) Put(ctx context.Context, record book.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockBookRepository) UpdateField(ctx context.Context, bookID, field string, value interface{}) (book.Record, error) {
	args := m.Called(ctx, bookID, field, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(book.Record), args.Error(1)
}

func (m *MockBookRepository) Delete(ctx context.Context, bookID string) (book.Record, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(book.Record), args.Error(1)
}

// MockReviewRepository is a testify mock of ports.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) FindByBookID(ctx context.Context, bookID string) ([]book.Review, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]book.Review), args.Error(1)
}

// MockReviewReader is a testify mock of ports.ReviewReader
type MockReviewReader struct {
	mock.Mock
}

func (m *MockReviewReader) ReviewsForBook(ctx context.Context, bookID string) []book.Review {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]book.Review)
}
