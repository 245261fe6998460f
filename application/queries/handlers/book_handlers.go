package handlers

import (
	"context"
	"fmt"

	"book-inventory/application/ports"
	"book-inventory/application/queries"
	"book-inventory/application/queries/bus"
	"book-inventory/domain/book"

	"go.uber.org/zap"
)

// GetBookHandler merges a book record with its reviews
type GetBookHandler struct {
	books   ports.BookRepository
	reviews ports.ReviewReader
	logger  *zap.Logger
}

// NewGetBookHandler creates a new GetBookHandler
func NewGetBookHandler(books ports.BookRepository, reviews ports.ReviewReader, logger *zap.Logger) *GetBookHandler {
	return &GetBookHandler{books: books, reviews: reviews, logger: logger}
}

// Handle looks the book up first and only fetches reviews when it exists.
// Reviews are matched on the exact bookid the caller sent.
func (h *GetBookHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetBookQuery)
	if !ok {
		return nil, fmt.Errorf("invalid query type: expected GetBookQuery, got %T", query)
	}

	record, err := h.books.GetByID(ctx, q.BookID)
	if err != nil {
		return nil, err
	}

	reviews := h.reviews.ReviewsForBook(ctx, q.BookID)

	h.logger.Debug("Book assembled",
		zap.String("bookid", q.BookID),
		zap.Int("reviews", len(reviews)),
	)
	return book.NewCompositeView(record, reviews), nil
}

// ListBooksHandler returns the full inventory
type ListBooksHandler struct {
	books  ports.BookRepository
	logger *zap.Logger
}

// NewListBooksHandler creates a new ListBooksHandler
func NewListBooksHandler(books ports.BookRepository, logger *zap.Logger) *ListBooksHandler {
	return &ListBooksHandler{books: books, logger: logger}
}

// Handle scans the inventory. The result is never nil.
func (h *ListBooksHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	if _, ok := query.(queries.ListBooksQuery); !ok {
		return nil, fmt.Errorf("invalid query type: expected ListBooksQuery, got %T", query)
	}

	records, err := h.books.ScanAll(ctx)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []book.Record{}
	}

	h.logger.Debug("Books listed", zap.Int("count", len(records)))
	return records, nil
}

// RegisterAll wires the book query handlers into the bus
func RegisterAll(queryBus *bus.QueryBus, books ports.BookRepository, reviews ports.ReviewReader, logger *zap.Logger) error {
	if err := queryBus.Register(queries.GetBookQuery{}, NewGetBookHandler(books, reviews, logger)); err != nil {
		return err
	}
	return queryBus.Register(queries.ListBooksQuery{}, NewListBooksHandler(books, logger))
}
