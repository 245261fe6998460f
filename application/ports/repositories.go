package ports

import (
	"context"

	"book-inventory/domain/book"
)

// BookRepository is the record store gateway for the inventory table.
// Absent keys are reported as NOT_FOUND application errors, never as store
// faults.
type BookRepository interface {
	// GetByID retrieves a single record
	GetByID(ctx context.Context, bookID string) (book.Record, error)

	// ScanAll returns every record, following continuation tokens until the
	// store reports no more pages
	ScanAll(ctx context.Context) ([]book.Record, error)

	// Put creates or fully replaces a record
	Put(ctx context.Context, record book.Record) error

	// UpdateField sets one attribute on an existing record and returns the
	// updated attributes
	UpdateField(ctx context.Context, bookID, field string, value interface{}) (book.Record, error)

	// Delete removes an existing record and returns its prior state
	Delete(ctx context.Context, bookID string) (book.Record, error)
}

// ReviewRepository reads reviews from the document store.
type ReviewRepository interface {
	// FindByBookID returns the reviews referencing bookID in store order
	FindByBookID(ctx context.Context, bookID string) ([]book.Review, error)
}

// ReviewReader is the fault-tolerant view of the review store used by the
// aggregator. It never fails; faults degrade to an empty list.
type ReviewReader interface {
	ReviewsForBook(ctx context.Context, bookID string) []book.Review
}
