package mongodb

import (
	"context"
	"fmt"

	"book-inventory/domain/book"
	apperrors "book-inventory/pkg/errors"
	"book-inventory/pkg/observability"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Collection is the part of *mongo.Collection the review repository reads with
type Collection interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
}

// reviewDocument is a review as stored in the reviews collection
type reviewDocument struct {
	ID       interface{} `bson:"_id"`
	BookID   string      `bson:"bookid"`
	Comment  string      `bson:"Comment"`
	Reviewer string      `bson:"Reviewer"`
}

// ReviewRepository implements ports.ReviewRepository using MongoDB
type ReviewRepository struct {
	collection Collection
	tracer     *observability.Tracer
	logger     *zap.Logger
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(collection Collection, tracer *observability.Tracer, logger *zap.Logger) *ReviewRepository {
	return &ReviewRepository{
		collection: collection,
		tracer:     tracer,
		logger:     logger,
	}
}

// FindByBookID returns the reviews whose bookid equals bookID exactly, in the
// collection's natural order.
func (r *ReviewRepository) FindByBookID(ctx context.Context, bookID string) ([]book.Review, error) {
	var docs []reviewDocument
	err := r.tracer.TraceFunction(ctx, "mongodb.Find", func(ctx context.Context) error {
		cursor, err := r.collection.Find(ctx, bson.M{"bookid": bookID})
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)
		return cursor.All(ctx, &docs)
	})
	if err != nil {
		return nil, apperrors.NewExternalError("mongodb", err)
	}

	reviews := make([]book.Review, 0, len(docs))
	for _, doc := range docs {
		reviews = append(reviews, book.Review{
			ReviewID: documentID(doc.ID),
			Comment:  doc.Comment,
			Reviewer: doc.Reviewer,
		})
	}

	r.logger.Debug("Loaded reviews",
		zap.String("bookid", bookID),
		zap.Int("count", len(reviews)),
	)
	return reviews, nil
}

func documentID(id interface{}) string {
	switch v := id.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
