package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/emilythestrangee/askme/backend/internal/forum"
	"github.com/emilythestrangee/askme/backend/internal/middleware"
	"github.com/emilythestrangee/askme/backend/internal/pagination"
)

// PageSizes configures how many items each listing shows per page.
type PageSizes struct {
	Questions int
	Answers   int
}

// Handler combines all handler types
type Handler struct {
	Auth     *AuthHandler
	Question *QuestionHandler
	Answer   *AnswerHandler
	Tag      *TagHandler
	User     *UserHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(svc *forum.Service, tokens *middleware.Tokens, pages PageSizes, log logrus.FieldLogger) *Handler {
	b := base{svc: svc, log: log}
	return &Handler{
		Auth:     &AuthHandler{base: b, tokens: tokens},
		Question: &QuestionHandler{base: b, pages: pages},
		Answer:   &AnswerHandler{base: b, pages: pages},
		Tag:      &TagHandler{base: b, pages: pages},
		User:     &UserHandler{base: b},
	}
}

type base struct {
	svc *forum.Service
	log logrus.FieldLogger
}

// actor turns the user id left by the auth middleware into a forum actor.
func actor(c *gin.Context) forum.Actor {
	raw, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return forum.Anonymous
	}
	switch v := raw.(type) {
	case uint:
		return forum.AsUser(v)
	case int:
		return forum.AsUser(uint(v))
	case float64:
		return forum.AsUser(uint(v))
	default:
		return forum.Anonymous
	}
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func pageParam(c *gin.Context) int {
	return pagination.ParsePageNumber(c.Query("page"))
}

// fail writes the HTTP status matching err. Unexpected errors are logged and
// hidden from the client.
func (b base) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, forum.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, forum.ErrDuplicateVote), errors.Is(err, forum.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, forum.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, forum.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, forum.ErrInvalidInput), errors.Is(err, pagination.ErrInvalidPageSize):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		b.log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// sidebar is the best tags and best users block shown next to listings.
func (b base) sidebar(c *gin.Context) (gin.H, error) {
	tags, err := b.svc.BestTags(c.Request.Context())
	if err != nil {
		return nil, err
	}
	users, err := b.svc.BestUsers(c.Request.Context(), forum.DefaultRankingLimit)
	if err != nil {
		return nil, err
	}
	return gin.H{"tags": tags, "users": users}, nil
}
