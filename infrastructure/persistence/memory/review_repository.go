package memory

import (
	"context"
	"sync"

	"book-inventory/domain/book"

	"github.com/google/uuid"
)

// ReviewRepository is a map-backed ports.ReviewRepository
type ReviewRepository struct {
	mu      sync.RWMutex
	reviews map[string][]book.Review
}

// NewReviewRepository creates an empty review store
func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{reviews: make(map[string][]book.Review)}
}

// Add appends a review for bookID, assigning an id when it has none.
func (r *ReviewRepository) Add(bookID string, review book.Review) book.Review {
	if review.ReviewID == "" {
		review.ReviewID = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews[bookID] = append(r.reviews[bookID], review)
	return review
}

// FindByBookID returns reviews in insertion order
func (r *ReviewRepository) FindByBookID(_ context.Context, bookID string) ([]book.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]book.Review, len(r.reviews[bookID]))
	copy(out, r.reviews[bookID])
	return out, nil
}
