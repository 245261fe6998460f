package dynamodb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"book-inventory/domain/book"
	apperrors "book-inventory/pkg/errors"
	"book-inventory/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

// DynamoDBAPI is the subset of the DynamoDB client the repository uses
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// errStalledScan is reported when the store hands back a continuation token
// it has already been given.
var errStalledScan = errors.New("scan continuation token did not advance")

// BookRepository implements ports.BookRepository using DynamoDB
type BookRepository struct {
	client    DynamoDBAPI
	tableName string
	pageSize  int32
	tracer    *observability.Tracer
	logger    *zap.Logger
}

// NewBookRepository creates a new BookRepository. A pageSize of zero lets
// DynamoDB pick the page size.
func NewBookRepository(client DynamoDBAPI, tableName string, pageSize int32, tracer *observability.Tracer, logger *zap.Logger) *BookRepository {
	return &BookRepository{
		client:    client,
		tableName: tableName,
		pageSize:  pageSize,
		tracer:    tracer,
		logger:    logger,
	}
}

// GetByID retrieves a book by its bookid
func (r *BookRepository) GetByID(ctx context.Context, bookID string) (book.Record, error) {
	var out *dynamodb.GetItemOutput
	err := r.tracer.TraceFunction(ctx, "dynamodb.GetItem", func(ctx context.Context) error {
		var err error
		out, err = r.client.GetItem(ctx, &dynamodb.GetItemInput{
			TableName: aws.String(r.tableName),
			Key:       keyFor(bookID),
		})
		return err
	})
	if err != nil {
		return nil, r.storeFault("GetItem", bookID, err)
	}

	if len(out.Item) == 0 {
		return nil, notFound(bookID)
	}

	record, err := unmarshalRecord(out.Item)
	if err != nil {
		return nil, r.storeFault("GetItem", bookID, err)
	}
	return record, nil
}

// ScanAll reads the whole table, one page at a time, feeding each page's
// LastEvaluatedKey into the next request until the store returns none.
func (r *BookRepository) ScanAll(ctx context.Context) ([]book.Record, error) {
	records := make([]book.Record, 0)
	seen := make(map[string]struct{})
	var startKey map[string]types.AttributeValue
	var tokens []map[string]types.AttributeValue

	for page := 1; ; page++ {
		input := &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		}
		if r.pageSize > 0 {
			input.Limit = aws.Int32(r.pageSize)
		}

		var out *dynamodb.ScanOutput
		err := r.tracer.TraceFunction(ctx, "dynamodb.Scan", func(ctx context.Context) error {
			var err error
			out, err = r.client.Scan(ctx, input)
			return err
		})
		if err != nil {
			return nil, r.storeFault("Scan", "", err)
		}

		for _, item := range out.Items {
			record, err := unmarshalRecord(item)
			if err != nil {
				return nil, r.storeFault("Scan", "", err)
			}
			if id := record.ID(); id != "" {
				if _, dup := seen[id]; dup {
					continue
				}
				seen[id] = struct{}{}
			}
			records = append(records, record)
		}

		r.logger.Debug("Scanned inventory page",
			zap.Int("page", page),
			zap.Int("items", len(out.Items)),
			zap.Bool("more", len(out.LastEvaluatedKey) > 0),
		)

		if len(out.LastEvaluatedKey) == 0 {
			return records, nil
		}
		if tokenSeen(tokens, out.LastEvaluatedKey) {
			return nil, r.storeFault("Scan", "", errStalledScan)
		}
		tokens = append(tokens, out.LastEvaluatedKey)
		startKey = out.LastEvaluatedKey
	}
}

// Put creates or fully replaces a record
func (r *BookRepository) Put(ctx context.Context, record book.Record) error {
	item, err := attributevalue.MarshalMap(toStoreValue(map[string]interface{}(record)))
	if err != nil {
		return apperrors.NewValidationError(fmt.Sprintf("record cannot be stored: %v", err))
	}

	err = r.tracer.TraceFunction(ctx, "dynamodb.PutItem", func(ctx context.Context) error {
		_, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(r.tableName),
			Item:      item,
		})
		return err
	})
	if err != nil {
		return r.storeFault("PutItem", record.ID(), err)
	}
	return nil
}

// UpdateField sets a single top-level attribute on an existing record. A
// dotted field is one attribute name, not a document path. The update is
// conditional on the record existing so a missing bookid is reported instead
// of silently creating a new item.
func (r *BookRepository) UpdateField(ctx context.Context, bookID, field string, value interface{}) (book.Record, error) {
	update := expression.Set(expression.NameNoDotSplit(field), expression.Value(toStoreValue(value)))
	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(expression.AttributeExists(expression.Name(book.KeyAttribute))).
		Build()
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid update: %v", err))
	}

	var out *dynamodb.UpdateItemOutput
	err = r.tracer.TraceFunction(ctx, "dynamodb.UpdateItem", func(ctx context.Context) error {
		var err error
		out, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
			TableName:                 aws.String(r.tableName),
			Key:                       keyFor(bookID),
			UpdateExpression:          expr.Update(),
			ConditionExpression:       expr.Condition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ReturnValues:              types.ReturnValueUpdatedNew,
		})
		return err
	})
	if err != nil {
		if isConditionFailure(err) {
			return nil, notFound(bookID)
		}
		return nil, r.storeFault("UpdateItem", bookID, err)
	}

	attrs, err := unmarshalRecord(out.Attributes)
	if err != nil {
		return nil, r.storeFault("UpdateItem", bookID, err)
	}
	return attrs, nil
}

// Delete removes an existing record and returns it as it was
func (r *BookRepository) Delete(ctx context.Context, bookID string) (book.Record, error) {
	expr, err := expression.NewBuilder().
		WithCondition(expression.AttributeExists(expression.Name(book.KeyAttribute))).
		Build()
	if err != nil {
		return nil, r.storeFault("DeleteItem", bookID, err)
	}

	var out *dynamodb.DeleteItemOutput
	err = r.tracer.TraceFunction(ctx, "dynamodb.DeleteItem", func(ctx context.Context) error {
		var err error
		out, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName:                aws.String(r.tableName),
			Key:                      keyFor(bookID),
			ConditionExpression:      expr.Condition(),
			ExpressionAttributeNames: expr.Names(),
			ReturnValues:             types.ReturnValueAllOld,
		})
		return err
	})
	if err != nil {
		if isConditionFailure(err) {
			return nil, notFound(bookID)
		}
		return nil, r.storeFault("DeleteItem", bookID, err)
	}

	old, err := unmarshalRecord(out.Attributes)
	if err != nil {
		return nil, r.storeFault("DeleteItem", bookID, err)
	}
	return old, nil
}

// storeFault logs a failed store call and converts it into a database error
func (r *BookRepository) storeFault(operation, bookID string, err error) error {
	fields := []zap.Field{
		zap.String("operation", operation),
		zap.String("table", r.tableName),
		zap.Error(err),
	}
	if bookID != "" {
		fields = append(fields, zap.String("bookid", bookID))
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		fields = append(fields, zap.String("error_code", apiErr.ErrorCode()))
	}
	r.logger.Error("DynamoDB operation failed", fields...)
	return apperrors.NewDatabaseError(operation, err)
}

func tokenSeen(tokens []map[string]types.AttributeValue, key map[string]types.AttributeValue) bool {
	for _, t := range tokens {
		if reflect.DeepEqual(t, key) {
			return true
		}
	}
	return false
}

func keyFor(bookID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		book.KeyAttribute: &types.AttributeValueMemberS{Value: bookID},
	}
}

func notFound(bookID string) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("%s: %s", book.KeyAttribute, bookID))
}

func isConditionFailure(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

// unmarshalRecord decodes an item keeping numbers as attributevalue.Number so
// no precision is lost before the response is normalized.
func unmarshalRecord(item map[string]types.AttributeValue) (book.Record, error) {
	record := book.Record{}
	if len(item) == 0 {
		return record, nil
	}
	err := attributevalue.UnmarshalMapWithOptions(item, &record, func(o *attributevalue.DecoderOptions) {
		o.UseNumber = true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal book: %w", err)
	}
	return record, nil
}

// toStoreValue rewrites request-side json.Number values as DynamoDB numbers.
// Left alone they would be stored as strings.
func toStoreValue(v interface{}) interface{} {
	switch val := v.(type) {
	case json.Number:
		return attributevalue.Number(val.String())
	case book.Record:
		return toStoreValue(map[string]interface{}(val))
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = toStoreValue(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = toStoreValue(item)
		}
		return out
	default:
		return v
	}
}
