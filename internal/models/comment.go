package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment on an event stored in MongoDB
type Comment struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Content   string             `json:"content" bson:"content"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	AuthorID  primitive.ObjectID `json:"author_id" bson:"author_id"` // ID of the user who wrote the comment
	EventID   primitive.ObjectID `json:"event_id" bson:"event_id"`   // ID of the event the comment belongs to
	LikeCount int                `json:"like_count" bson:"like_count"`
}

// EnrichedComment is a comment with compact author and event info attached.
// Author or Event is nil when the referenced document does not exist.
type EnrichedComment struct {
	Comment
	Author *UserCompact  `json:"author"`
	Event  *EventCompact `json:"event"`
}

// CommentPage is the envelope returned by every paginated listing
type CommentPage struct {
	Records    []EnrichedComment `json:"records"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content   string     `json:"content" validate:"required,min=1,max=500"`
	AuthorID  string     `json:"author_id" validate:"required"`
	EventID   string     `json:"event_id" validate:"required"`
	LikeCount *int       `json:"like_count,omitempty" validate:"omitempty,min=0"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// UpdateCommentRequest defines the request body for editing a comment.
// Only content and like_count can change; anything else in the body is dropped at bind time.
type UpdateCommentRequest struct {
	Content   *string `json:"content,omitempty" validate:"omitempty,min=1,max=500"`
	LikeCount *int    `json:"like_count,omitempty" validate:"omitempty,min=0"`
}

// IsEmpty reports whether the patch touches no field.
func (r UpdateCommentRequest) IsEmpty() bool {
	return r.Content == nil && r.LikeCount == nil
}
