package handlers

import (
	"context"
	"fmt"
	"net/http"

	"book-inventory/application/commands"
	"book-inventory/application/commands/bus"
	"book-inventory/application/queries"
	querybus "book-inventory/application/queries/bus"
	"book-inventory/domain/book"
	"book-inventory/pkg/common"
	apperrors "book-inventory/pkg/errors"
	"book-inventory/pkg/utils"

	"go.uber.org/zap"
)

// Failure messages returned on 500s. Store details never reach the caller.
const (
	msgGetBookFailed  = "Error retrieving book details and reviews."
	msgInternalError  = "Internal Server Error"
	operationStatusOK = "SUCCESS"
)

// BookHandler turns inbound requests into commands and queries and renders
// their results.
type BookHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewBookHandler creates a new book handler
func NewBookHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *BookHandler {
	return &BookHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// ModifyBookRequest represents the request body for PATCH /book
type ModifyBookRequest struct {
	BookID      string      `json:"bookid" validate:"required"`
	UpdateKey   string      `json:"updateKey" validate:"required"`
	UpdateValue interface{} `json:"updateValue"`
}

// DeleteBookRequest represents the request body for DELETE /book
type DeleteBookRequest struct {
	BookID string `json:"bookid" validate:"required"`
}

// Health handles GET /health
func (h *BookHandler) Health(_ context.Context, _ common.Request) common.Response {
	return common.BuildResponse(http.StatusOK, nil)
}

// GetBook handles GET /book?bookid=
func (h *BookHandler) GetBook(ctx context.Context, req common.Request) common.Response {
	raw, _ := req.Query(book.KeyAttribute)
	bookID := book.NormalizeID(raw)

	result, err := h.queryBus.Ask(ctx, queries.GetBookQuery{BookID: bookID})
	if err != nil {
		return h.respondError("GetBook", bookID, err, msgGetBookFailed)
	}

	view, ok := result.(*book.CompositeView)
	if !ok {
		return h.respondError("GetBook", bookID, unexpectedResult(result), msgGetBookFailed)
	}
	return common.BuildResponse(http.StatusOK, view.Fields())
}

// ListBooks handles GET /books
func (h *BookHandler) ListBooks(ctx context.Context, _ common.Request) common.Response {
	result, err := h.queryBus.Ask(ctx, queries.ListBooksQuery{})
	if err != nil {
		return h.respondError("ListBooks", "", err, msgInternalError)
	}

	records, ok := result.([]book.Record)
	if !ok {
		return h.respondError("ListBooks", "", unexpectedResult(result), msgInternalError)
	}
	return common.BuildResponse(http.StatusOK, map[string]interface{}{
		"books": records,
	})
}

// SaveBook handles POST /book. The body is the full record.
func (h *BookHandler) SaveBook(ctx context.Context, req common.Request) common.Response {
	var record book.Record
	if err := req.DecodeBody(&record); err != nil {
		return h.respondError("SaveBook", "", invalidBody(err), msgInternalError)
	}

	result, err := h.commandBus.Send(ctx, commands.SaveBookCommand{Record: record})
	if err != nil {
		return h.respondError("SaveBook", record.ID(), err, msgInternalError)
	}

	saved, ok := result.(*commands.SaveBookResult)
	if !ok {
		return h.respondError("SaveBook", record.ID(), unexpectedResult(result), msgInternalError)
	}
	return common.BuildResponse(http.StatusOK, map[string]interface{}{
		"Operation": "SAVE",
		"Message":   operationStatusOK,
		"Item":      saved.Item,
	})
}

// ModifyBook handles PATCH /book
func (h *BookHandler) ModifyBook(ctx context.Context, req common.Request) common.Response {
	var body ModifyBookRequest
	if err := req.DecodeBody(&body); err != nil {
		return h.respondError("ModifyBook", "", invalidBody(err), msgInternalError)
	}
	if err := utils.ValidateStruct(body); err != nil {
		return h.respondError("ModifyBook", body.BookID, apperrors.NewValidationError(err.Error()), msgInternalError)
	}

	result, err := h.commandBus.Send(ctx, commands.ModifyBookCommand{
		BookID:      body.BookID,
		UpdateKey:   body.UpdateKey,
		UpdateValue: body.UpdateValue,
	})
	if err != nil {
		return h.respondError("ModifyBook", body.BookID, err, msgInternalError)
	}

	modified, ok := result.(*commands.ModifyBookResult)
	if !ok {
		return h.respondError("ModifyBook", body.BookID, unexpectedResult(result), msgInternalError)
	}
	return common.BuildResponse(http.StatusOK, map[string]interface{}{
		"Operation": "UPDATE",
		"Message":   operationStatusOK,
		"UpdatedAttributes": map[string]interface{}{
			"Attributes": modified.Attributes,
		},
	})
}

// DeleteBook handles DELETE /book
func (h *BookHandler) DeleteBook(ctx context.Context, req common.Request) common.Response {
	var body DeleteBookRequest
	if err := req.DecodeBody(&body); err != nil {
		return h.respondError("DeleteBook", "", invalidBody(err), msgInternalError)
	}
	if err := utils.ValidateStruct(body); err != nil {
		return h.respondError("DeleteBook", "", apperrors.NewValidationError(err.Error()), msgInternalError)
	}

	result, err := h.commandBus.Send(ctx, commands.DeleteBookCommand{BookID: body.BookID})
	if err != nil {
		return h.respondError("DeleteBook", body.BookID, err, msgInternalError)
	}

	deleted, ok := result.(*commands.DeleteBookResult)
	if !ok {
		return h.respondError("DeleteBook", body.BookID, unexpectedResult(result), msgInternalError)
	}
	return common.BuildResponse(http.StatusOK, map[string]interface{}{
		"Operation": "DELETE",
		"Message":   operationStatusOK,
		"deleteItem": map[string]interface{}{
			"Attributes": deleted.Attributes,
		},
	})
}

// respondError maps an error to a response. Client errors carry their own
// message; everything else is logged and replaced by failureMessage.
func (h *BookHandler) respondError(operation, bookID string, err error, failureMessage string) common.Response {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		switch appErr.Type {
		case apperrors.ErrorTypeValidation:
			h.logger.Info("Rejected request",
				zap.String("operation", operation),
				zap.String("reason", appErr.Message),
			)
			return common.BuildResponse(http.StatusBadRequest, common.MessageBody(appErr.Message))
		case apperrors.ErrorTypeNotFound:
			return common.BuildResponse(http.StatusNotFound, common.MessageBody(appErr.Message))
		}
	}

	h.logger.Error("Operation failed",
		zap.String("operation", operation),
		zap.String("bookid", bookID),
		zap.Error(err),
	)
	return common.BuildResponse(http.StatusInternalServerError, common.MessageBody(failureMessage))
}

func invalidBody(err error) error {
	return apperrors.NewValidationError(fmt.Sprintf("Invalid request body: %v", err)).WithCause(err)
}

func unexpectedResult(result interface{}) error {
	return apperrors.NewInternalError(fmt.Sprintf("unexpected result type %T", result))
}
