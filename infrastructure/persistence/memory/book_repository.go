// Package memory holds in-process stores used for local runs and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"book-inventory/domain/book"
	apperrors "book-inventory/pkg/errors"
)

// BookRepository is a map-backed ports.BookRepository
type BookRepository struct {
	mu    sync.RWMutex
	items map[string]book.Record
}

// NewBookRepository creates an empty in-memory inventory
func NewBookRepository() *BookRepository {
	return &BookRepository{items: make(map[string]book.Record)}
}

// GetByID returns a copy of the record stored under bookID
func (r *BookRepository) GetByID(_ context.Context, bookID string) (book.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.items[bookID]
	if !ok {
		return nil, notFound(bookID)
	}
	return record.Clone(), nil
}

// ScanAll returns every record ordered by bookid
func (r *BookRepository) ScanAll(_ context.Context) ([]book.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	records := make([]book.Record, 0, len(ids))
	for _, id := range ids {
		records = append(records, r.items[id].Clone())
	}
	return records, nil
}

// Put creates or fully replaces a record
func (r *BookRepository) Put(_ context.Context, record book.Record) error {
	if err := record.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[record.ID()] = record.Clone()
	return nil
}

// UpdateField sets one top-level attribute on an existing record and returns
// the changed attribute
func (r *BookRepository) UpdateField(_ context.Context, bookID, field string, value interface{}) (book.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.items[bookID]
	if !ok {
		return nil, notFound(bookID)
	}
	record[field] = value
	return book.Record{field: value}, nil
}

// Delete removes a record and returns it as it was
func (r *BookRepository) Delete(_ context.Context, bookID string) (book.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.items[bookID]
	if !ok {
		return nil, notFound(bookID)
	}
	delete(r.items, bookID)
	return record, nil
}

func notFound(bookID string) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("%s: %s", book.KeyAttribute, bookID))
}
