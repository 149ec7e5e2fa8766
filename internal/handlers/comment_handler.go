package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/anonto42/event-comments/backend/internal/models"
	"github.com/anonto42/event-comments/backend/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// CommentService is the set of comment operations the handler needs.
// *services.CommentService implements it.
type CommentService interface {
	Create(ctx context.Context, req models.CreateCommentRequest) (*models.Comment, error)
	GetByID(ctx context.Context, id string) (*models.EnrichedComment, error)
	ListAll(ctx context.Context, page, pageSize int) (*models.CommentPage, error)
	ListByEvent(ctx context.Context, eventID string, page, pageSize int) (*models.CommentPage, error)
	Search(ctx context.Context, query string, page, pageSize int) (*models.CommentPage, error)
	Update(ctx context.Context, id string, patch models.UpdateCommentRequest) (*models.EnrichedComment, error)
	IncrementLike(ctx context.Context, id string) (*models.EnrichedComment, error)
	Delete(ctx context.Context, id string) (*models.Comment, error)
}

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	service CommentService
	likes   prometheus.Counter
}

// MutationResponse is returned by create, update, like and delete
type MutationResponse struct {
	Message string      `json:"message"`
	Comment interface{} `json:"comment"`
}

// NewCommentHandler creates a new CommentHandler.
// likes, when non-nil, is incremented after every successful like.
func NewCommentHandler(service CommentService, likes prometheus.Counter) *CommentHandler {
	return &CommentHandler{
		service: service,
		likes:   likes,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("", h.CreateComment)
	g.GET("", h.GetAllComments)
	g.GET("/search", h.SearchComments)
	g.GET("/event/:eventId", h.GetCommentsByEvent)
	g.GET("/:id", h.GetCommentByID)
	g.PUT("/:id", h.UpdateComment)
	g.PUT("/:id/like", h.LikeComment)
	g.DELETE("/:id", h.DeleteComment)
}

// CreateComment creates a new comment on an event
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	comment, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return commentError(err)
	}

	return c.JSON(http.StatusCreated, MutationResponse{
		Message: "Comment created successfully",
		Comment: comment,
	})
}

// GetAllComments returns one page of all comments
func (h *CommentHandler) GetAllComments(c echo.Context) error {
	page, pageSize := paginationParams(c)

	res, err := h.service.ListAll(c.Request().Context(), page, pageSize)
	if err != nil {
		return commentError(err)
	}
	return c.JSON(http.StatusOK, res)
}

// SearchComments returns one page of comments containing q
func (h *CommentHandler) SearchComments(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, `Search parameter "q" is required`)
	}
	page, pageSize := paginationParams(c)

	res, err := h.service.Search(c.Request().Context(), q, page, pageSize)
	if err != nil {
		return commentError(err)
	}
	return c.JSON(http.StatusOK, res)
}

// GetCommentsByEvent returns one page of an event's comments.
// An event without comments gives an empty page, not a 404.
func (h *CommentHandler) GetCommentsByEvent(c echo.Context) error {
	page, pageSize := paginationParams(c)

	res, err := h.service.ListByEvent(c.Request().Context(), c.Param("eventId"), page, pageSize)
	if err != nil {
		return commentError(err)
	}
	return c.JSON(http.StatusOK, res)
}

// GetCommentByID returns a single comment
func (h *CommentHandler) GetCommentByID(c echo.Context) error {
	comment, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return commentError(err)
	}
	return c.JSON(http.StatusOK, comment)
}

// UpdateComment edits content and/or like count
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	comment, err := h.service.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return commentError(err)
	}

	return c.JSON(http.StatusOK, MutationResponse{
		Message: "Comment updated successfully",
		Comment: comment,
	})
}

// LikeComment adds one like to a comment
func (h *CommentHandler) LikeComment(c echo.Context) error {
	comment, err := h.service.IncrementLike(c.Request().Context(), c.Param("id"))
	if err != nil {
		return commentError(err)
	}

	if h.likes != nil {
		h.likes.Inc()
	}

	return c.JSON(http.StatusOK, MutationResponse{
		Message: "Like added successfully",
		Comment: comment,
	})
}

// DeleteComment permanently removes a comment
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	comment, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return commentError(err)
	}

	return c.JSON(http.StatusOK, MutationResponse{
		Message: "Comment deleted successfully",
		Comment: comment,
	})
}

// paginationParams reads page and limit (or pageSize). Missing or non-numeric
// values come back as 0 and are replaced by the service defaults.
func paginationParams(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))

	size, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil {
		size, _ = strconv.Atoi(c.QueryParam("pageSize"))
	}
	return page, size
}

// commentError maps service errors to HTTP errors. Only a missing comment is a 404;
// everything else, backend failures included, is reported as a bad request.
func commentError(err error) error {
	if errors.Is(err, services.ErrCommentNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}
