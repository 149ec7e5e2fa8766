package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/anonto42/event-comments/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrCommentNotFound is returned when no comment matches the given ID
var ErrCommentNotFound = errors.New("comment not found")

// CommentFilter narrows a listing. Unset fields match everything.
type CommentFilter struct {
	EventID         *primitive.ObjectID // nil means any event; the nil ObjectID is a real value
	ContentContains string // case-insensitive substring, matched literally
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	ListComments(ctx context.Context, filter CommentFilter, skip, limit int64) ([]models.Comment, error)
	CountComments(ctx context.Context, filter CommentFilter) (int64, error)
	UpdateComment(ctx context.Context, id primitive.ObjectID, patch models.UpdateCommentRequest) (*models.Comment, error)
	IncrementLikeCount(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	DeleteComment(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database, collection string) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection(collection)}
}

// EnsureIndexes creates the indexes backing the two listing orders
func (r *MongoCommentRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("created_desc"),
		},
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}, {Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("event_created_desc"),
		},
	}
	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("ensure comment indexes: %w", err)
	}
	return nil
}

// CreateComment inserts a comment and sets its generated ID.
// MongoDB stores dates with millisecond precision, so CreatedAt is truncated before the write.
func (r *MongoCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	comment.CreatedAt = comment.CreatedAt.UTC().Truncate(time.Millisecond)

	_, err := r.collection.InsertOne(ctx, comment)
	return err
}

// GetCommentByID retrieves a comment by ID
func (r *MongoCommentRepository) GetCommentByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var comment models.Comment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// ListComments returns one page of comments matching the filter, newest first
func (r *MongoCommentRepository) ListComments(ctx context.Context, filter CommentFilter, skip, limit int64) ([]models.Comment, error) {
	findOptions := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.collection.Find(ctx, filterDocument(filter), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CountComments counts all comments matching the filter
func (r *MongoCommentRepository) CountComments(ctx context.Context, filter CommentFilter) (int64, error) {
	return r.collection.CountDocuments(ctx, filterDocument(filter))
}

// UpdateComment applies the patch and returns the updated comment.
// An empty patch returns the stored comment unchanged.
func (r *MongoCommentRepository) UpdateComment(ctx context.Context, id primitive.ObjectID, patch models.UpdateCommentRequest) (*models.Comment, error) {
	if patch.IsEmpty() {
		return r.GetCommentByID(ctx, id)
	}

	set := bson.M{}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.LikeCount != nil {
		set["like_count"] = *patch.LikeCount
	}

	return r.findOneAndUpdate(ctx, id, bson.M{"$set": set})
}

// IncrementLikeCount atomically adds one like and returns the updated comment
func (r *MongoCommentRepository) IncrementLikeCount(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{"$inc": bson.M{"like_count": 1}})
}

// DeleteComment removes a comment and returns its last state
func (r *MongoCommentRepository) DeleteComment(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var comment models.Comment
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *MongoCommentRepository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Comment, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var comment models.Comment
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func filterDocument(filter CommentFilter) bson.M {
	doc := bson.M{}
	if filter.EventID != nil {
		doc["event_id"] = *filter.EventID
	}
	if filter.ContentContains != "" {
		doc["content"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.ContentContains), Options: "i"}
	}
	return doc
}
