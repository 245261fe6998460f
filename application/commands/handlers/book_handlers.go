package handlers

import (
	"context"
	"fmt"

	"book-inventory/application/commands"
	"book-inventory/application/commands/bus"
	"book-inventory/application/ports"

	"go.uber.org/zap"
)

// SaveBookHandler handles SaveBookCommand
type SaveBookHandler struct {
	books  ports.BookRepository
	logger *zap.Logger
}

// NewSaveBookHandler creates a new save handler
func NewSaveBookHandler(books ports.BookRepository, logger *zap.Logger) *SaveBookHandler {
	return &SaveBookHandler{books: books, logger: logger}
}

// Handle stores the record. Saving the same record twice leaves the store in
// the same state as saving it once.
func (h *SaveBookHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	saveCmd, ok := cmd.(commands.SaveBookCommand)
	if !ok {
		return nil, fmt.Errorf("invalid command type: expected SaveBookCommand, got %T", cmd)
	}

	if err := h.books.Put(ctx, saveCmd.Record); err != nil {
		return nil, err
	}

	h.logger.Info("Book saved", zap.String("bookid", saveCmd.Record.ID()))
	return &commands.SaveBookResult{Item: saveCmd.Record}, nil
}

// ModifyBookHandler handles ModifyBookCommand
type ModifyBookHandler struct {
	books  ports.BookRepository
	logger *zap.Logger
}

// NewModifyBookHandler creates a new modify handler
func NewModifyBookHandler(books ports.BookRepository, logger *zap.Logger) *ModifyBookHandler {
	return &ModifyBookHandler{books: books, logger: logger}
}

// Handle updates a single attribute
func (h *ModifyBookHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	modifyCmd, ok := cmd.(commands.ModifyBookCommand)
	if !ok {
		return nil, fmt.Errorf("invalid command type: expected ModifyBookCommand, got %T", cmd)
	}

	attrs, err := h.books.UpdateField(ctx, modifyCmd.BookID, modifyCmd.UpdateKey, modifyCmd.UpdateValue)
	if err != nil {
		return nil, err
	}

	h.logger.Info("Book modified",
		zap.String("bookid", modifyCmd.BookID),
		zap.String("field", modifyCmd.UpdateKey),
	)
	return &commands.ModifyBookResult{Attributes: attrs}, nil
}

// DeleteBookHandler handles DeleteBookCommand
type DeleteBookHandler struct {
	books  ports.BookRepository
	logger *zap.Logger
}

// NewDeleteBookHandler creates a new delete handler
func NewDeleteBookHandler(books ports.BookRepository, logger *zap.Logger) *DeleteBookHandler {
	return &DeleteBookHandler{books: books, logger: logger}
}

// Handle removes the record and returns its prior state
func (h *DeleteBookHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	deleteCmd, ok := cmd.(commands.DeleteBookCommand)
	if !ok {
		return nil, fmt.Errorf("invalid command type: expected DeleteBookCommand, got %T", cmd)
	}

	old, err := h.books.Delete(ctx, deleteCmd.BookID)
	if err != nil {
		return nil, err
	}

	h.logger.Info("Book deleted", zap.String("bookid", deleteCmd.BookID))
	return &commands.DeleteBookResult{Attributes: old}, nil
}

// RegisterAll wires the book command handlers into the bus
func RegisterAll(commandBus *bus.CommandBus, books ports.BookRepository, logger *zap.Logger) error {
	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandler
	}{
		{commands.SaveBookCommand{}, NewSaveBookHandler(books, logger)},
		{commands.ModifyBookCommand{}, NewModifyBookHandler(books, logger)},
		{commands.DeleteBookCommand{}, NewDeleteBookHandler(books, logger)},
	}

	for _, r := range registrations {
		if err := commandBus.Register(r.cmd, r.handler); err != nil {
			return err
		}
	}
	return nil
}
