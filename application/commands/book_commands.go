package commands

import (
	"fmt"
	"strings"

	"book-inventory/domain/book"
	apperrors "book-inventory/pkg/errors"
)

// SaveBookCommand creates or replaces a full book record
type SaveBookCommand struct {
	Record book.Record
}

// Validate validates the SaveBookCommand
func (c SaveBookCommand) Validate() error {
	if err := c.Record.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}

// SaveBookResult echoes the stored record
type SaveBookResult struct {
	Item book.Record
}

// ModifyBookCommand sets a single attribute on an existing record
type ModifyBookCommand struct {
	BookID      string
	UpdateKey   string
	UpdateValue interface{}
}

// Validate validates the ModifyBookCommand
func (c ModifyBookCommand) Validate() error {
	if strings.TrimSpace(c.BookID) == "" {
		return apperrors.NewValidationError("bookid is required")
	}
	if strings.TrimSpace(c.UpdateKey) == "" {
		return apperrors.NewValidationError("updateKey is required")
	}
	if c.UpdateKey == book.KeyAttribute {
		return apperrors.NewValidationError(fmt.Sprintf("%s cannot be modified", book.KeyAttribute))
	}
	if c.UpdateValue == nil {
		return apperrors.NewValidationError("updateValue is required")
	}
	return nil
}

// ModifyBookResult carries the attributes written by the update
type ModifyBookResult struct {
	Attributes book.Record
}

// DeleteBookCommand removes a record
type DeleteBookCommand struct {
	BookID string
}

// Validate validates the DeleteBookCommand
func (c DeleteBookCommand) Validate() error {
	if strings.TrimSpace(c.BookID) == "" {
		return apperrors.NewValidationError("bookid is required")
	}
	return nil
}

// DeleteBookResult carries the record as it was before deletion
type DeleteBookResult struct {
	Attributes book.Record
}
