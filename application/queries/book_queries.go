package queries

import (
	"strings"

	apperrors "book-inventory/pkg/errors"
)

// GetBookQuery represents a query for one book merged with its reviews
type GetBookQuery struct {
	BookID string
}

// Validate validates the GetBookQuery
func (q GetBookQuery) Validate() error {
	if strings.TrimSpace(q.BookID) == "" {
		return apperrors.NewValidationError("bookid is required")
	}
	return nil
}

// ListBooksQuery represents a full inventory listing
type ListBooksQuery struct{}

// Validate validates the ListBooksQuery
func (q ListBooksQuery) Validate() error {
	return nil
}
