package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anonto42/event-comments/backend/internal/logging"
	"github.com/anonto42/event-comments/backend/internal/models"
	"github.com/anonto42/event-comments/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Validator checks a request struct against its validate tags.
// *validators.CustomValidator and echo.Validator both satisfy it.
type Validator interface {
	Validate(i interface{}) error
}

// CommentService owns every read and write of comments: id checks, validation,
// pagination and the author/event enrichment of results.
type CommentService struct {
	comments  repositories.CommentRepository
	users     repositories.UserRepository
	events    repositories.EventRepository
	validator Validator
}

// NewCommentService creates a new CommentService
func NewCommentService(
	comments repositories.CommentRepository,
	users repositories.UserRepository,
	events repositories.EventRepository,
	validator Validator,
) *CommentService {
	return &CommentService{
		comments:  comments,
		users:     users,
		events:    events,
		validator: validator,
	}
}

// Create validates and stores a new comment.
// Missing like_count defaults to 0 and missing created_at to the current time.
func (s *CommentService) Create(ctx context.Context, req models.CreateCommentRequest) (*models.Comment, error) {
	const op = "services/comments/Create"
	lg := logging.From(ctx).With("op", op)

	if err := s.validator.Validate(req); err != nil {
		lg.Warn("invalid comment", "err", err)
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	authorID, err := primitive.ObjectIDFromHex(req.AuthorID)
	if err != nil {
		lg.Warn("invalid comment", "err", "malformed author_id", "author_id", req.AuthorID)
		return nil, fmt.Errorf("%w: author_id must be a valid id", ErrValidation)
	}
	eventID, err := primitive.ObjectIDFromHex(req.EventID)
	if err != nil {
		lg.Warn("invalid comment", "err", "malformed event_id", "event_id", req.EventID)
		return nil, fmt.Errorf("%w: event_id must be a valid id", ErrValidation)
	}

	comment := &models.Comment{
		Content:   req.Content,
		AuthorID:  authorID,
		EventID:   eventID,
		CreatedAt: time.Now(),
	}
	if req.LikeCount != nil {
		comment.LikeCount = *req.LikeCount
	}
	if req.CreatedAt != nil && !req.CreatedAt.IsZero() {
		comment.CreatedAt = *req.CreatedAt
	}

	if err := s.comments.CreateComment(ctx, comment); err != nil {
		lg.Error("create comment failed", "err", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lg.Debug("comment created", "id", comment.ID.Hex())
	return comment, nil
}

// GetByID returns one enriched comment
func (s *CommentService) GetByID(ctx context.Context, id string) (*models.EnrichedComment, error) {
	const op = "services/comments/GetByID"
	lg := logging.From(ctx).With("op", op, "id", id)

	oid, err := parseID(id, "comment id")
	if err != nil {
		lg.Warn("malformed id")
		return nil, err
	}

	comment, err := s.comments.GetCommentByID(ctx, oid)
	if err != nil {
		return nil, s.mapRepoError(lg, op, err)
	}
	return s.enrichOne(ctx, op, comment)
}

// ListAll returns one page over every comment, newest first
func (s *CommentService) ListAll(ctx context.Context, page, pageSize int) (*models.CommentPage, error) {
	const op = "services/comments/ListAll"
	return s.list(ctx, op, repositories.CommentFilter{}, NormalizePagination(page, pageSize))
}

// ListByEvent returns one page of the event's comments, newest first.
// The event itself is not looked up: an unknown event yields an empty page.
func (s *CommentService) ListByEvent(ctx context.Context, eventID string, page, pageSize int) (*models.CommentPage, error) {
	const op = "services/comments/ListByEvent"

	oid, err := parseID(eventID, "event id")
	if err != nil {
		logging.From(ctx).Warn("malformed event id", "op", op, "event_id", eventID)
		return nil, err
	}
	return s.list(ctx, op, repositories.CommentFilter{EventID: &oid}, NormalizePagination(page, pageSize))
}

// Search returns one page of comments whose content contains query, ignoring case.
// The query is matched literally; an empty query matches every comment.
func (s *CommentService) Search(ctx context.Context, query string, page, pageSize int) (*models.CommentPage, error) {
	const op = "services/comments/Search"
	return s.list(ctx, op, repositories.CommentFilter{ContentContains: query}, NormalizePagination(page, pageSize))
}

// Update changes content and/or like count. Author, event and creation time never change.
func (s *CommentService) Update(ctx context.Context, id string, patch models.UpdateCommentRequest) (*models.EnrichedComment, error) {
	const op = "services/comments/Update"
	lg := logging.From(ctx).With("op", op, "id", id)

	oid, err := parseID(id, "comment id")
	if err != nil {
		lg.Warn("malformed id")
		return nil, err
	}

	if err := s.validator.Validate(patch); err != nil {
		lg.Warn("invalid patch", "err", err)
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	comment, err := s.comments.UpdateComment(ctx, oid, patch)
	if err != nil {
		return nil, s.mapRepoError(lg, op, err)
	}
	return s.enrichOne(ctx, op, comment)
}

// IncrementLike adds exactly one like. The increment is a single atomic backend
// update, so concurrent likes are never lost.
func (s *CommentService) IncrementLike(ctx context.Context, id string) (*models.EnrichedComment, error) {
	const op = "services/comments/IncrementLike"
	lg := logging.From(ctx).With("op", op, "id", id)

	oid, err := parseID(id, "comment id")
	if err != nil {
		lg.Warn("malformed id")
		return nil, err
	}

	comment, err := s.comments.IncrementLikeCount(ctx, oid)
	if err != nil {
		return nil, s.mapRepoError(lg, op, err)
	}
	return s.enrichOne(ctx, op, comment)
}

// Delete permanently removes a comment and returns its last state, without enrichment
func (s *CommentService) Delete(ctx context.Context, id string) (*models.Comment, error) {
	const op = "services/comments/Delete"
	lg := logging.From(ctx).With("op", op, "id", id)

	oid, err := parseID(id, "comment id")
	if err != nil {
		lg.Warn("malformed id")
		return nil, err
	}

	comment, err := s.comments.DeleteComment(ctx, oid)
	if err != nil {
		return nil, s.mapRepoError(lg, op, err)
	}

	lg.Debug("comment deleted")
	return comment, nil
}

func (s *CommentService) list(ctx context.Context, op string, filter repositories.CommentFilter, p Pagination) (*models.CommentPage, error) {
	lg := logging.From(ctx).With("op", op, "page", p.Page, "page_size", p.PageSize)

	total, err := s.comments.CountComments(ctx, filter)
	if err != nil {
		lg.Error("count comments failed", "err", err)
		return nil, fmt.Errorf("%s: count: %w", op, err)
	}

	comments, err := s.comments.ListComments(ctx, filter, p.Skip(), int64(p.PageSize))
	if err != nil {
		lg.Error("list comments failed", "err", err)
		return nil, fmt.Errorf("%s: list: %w", op, err)
	}

	records, err := s.enrich(ctx, comments)
	if err != nil {
		lg.Error("enrich comments failed", "err", err)
		return nil, fmt.Errorf("%s: enrich: %w", op, err)
	}

	return &models.CommentPage{
		Records:    records,
		Total:      total,
		Page:       p.Page,
		TotalPages: TotalPages(total, p.PageSize),
	}, nil
}

func (s *CommentService) enrichOne(ctx context.Context, op string, comment *models.Comment) (*models.EnrichedComment, error) {
	enriched, err := s.enrich(ctx, []models.Comment{*comment})
	if err != nil {
		logging.From(ctx).Error("enrich comment failed", "op", op, "err", err)
		return nil, fmt.Errorf("%s: enrich: %w", op, err)
	}
	return &enriched[0], nil
}

// enrich attaches author and event projections with one lookup per store for the whole batch
func (s *CommentService) enrich(ctx context.Context, comments []models.Comment) ([]models.EnrichedComment, error) {
	out := make([]models.EnrichedComment, len(comments))
	if len(comments) == 0 {
		return out, nil
	}

	authorIDs := make([]primitive.ObjectID, 0, len(comments))
	eventIDs := make([]primitive.ObjectID, 0, len(comments))
	seenAuthors := make(map[primitive.ObjectID]bool)
	seenEvents := make(map[primitive.ObjectID]bool)
	for _, c := range comments {
		if !seenAuthors[c.AuthorID] {
			seenAuthors[c.AuthorID] = true
			authorIDs = append(authorIDs, c.AuthorID)
		}
		if !seenEvents[c.EventID] {
			seenEvents[c.EventID] = true
			eventIDs = append(eventIDs, c.EventID)
		}
	}

	users, err := s.users.GetUsersByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("users: %w", err)
	}
	events, err := s.events.GetEventsByIDs(ctx, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("events: %w", err)
	}

	for i, c := range comments {
		out[i] = models.EnrichedComment{Comment: c}
		if u, ok := users[c.AuthorID.Hex()]; ok {
			out[i].Author = &u
		}
		if e, ok := events[c.EventID.Hex()]; ok {
			out[i].Event = &e
		}
	}
	return out, nil
}

func (s *CommentService) mapRepoError(lg *slog.Logger, op string, err error) error {
	if errors.Is(err, repositories.ErrCommentNotFound) {
		lg.Warn("comment not found")
		return ErrCommentNotFound
	}
	lg.Error("repository error", "err", err)
	return fmt.Errorf("%s: %w", op, err)
}

func parseID(id, what string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: malformed %s", ErrInvalidID, what)
	}
	return oid, nil
}
