package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/askme/backend/internal/forum"
	"github.com/emilythestrangee/askme/backend/internal/models"
	"github.com/emilythestrangee/askme/backend/internal/pagination"
)

type QuestionHandler struct {
	base
	pages PageSizes
}

// listing paginates a question view and adds the sidebar.
func (b base) listing(c *gin.Context, views []models.QuestionView, pageSize int, extra gin.H) {
	page, err := pagination.Paginate(views, pageSize, pageParam(c))
	if err != nil {
		b.fail(c, err)
		return
	}
	body, err := b.sidebar(c)
	if err != nil {
		b.fail(c, err)
		return
	}
	body["page"] = page
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// GetQuestions lists questions newest first
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	views, err := h.svc.QuestionsByDate(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.listing(c, views, h.pages.Questions, nil)
}

// GetHotQuestions lists the most liked questions
func (h *QuestionHandler) GetHotQuestions(c *gin.Context) {
	views, err := h.svc.QuestionsByPopularity(c.Request.Context(), forum.DefaultRankingLimit)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.listing(c, views, h.pages.Questions, nil)
}

// GetQuestion returns one question with a page of its answers
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	question, err := h.svc.QuestionByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	answers, err := h.svc.AnswersForQuestion(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	page, err := pagination.Paginate(answers, h.pages.Answers, pageParam(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	body, err := h.sidebar(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	body["question"] = question
	body["page"] = page
	c.JSON(http.StatusOK, body)
}

// CreateQuestion asks a new question (PROTECTED - requires authentication)
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var input models.CreateQuestionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.svc.CreateQuestion(c.Request.Context(), actor(c), input.Title, input.Text, input.Tags)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/questions/%d", question.ID))
	c.JSON(http.StatusCreated, question)
}

// VoteQuestion likes or dislikes a question (PROTECTED - requires authentication)
func (h *QuestionHandler) VoteQuestion(polarity forum.Polarity) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		if err := h.svc.CastVote(c.Request.Context(), actor(c), forum.SubjectQuestion, id, polarity); err != nil {
			h.fail(c, err)
			return
		}
		likes, dislikes, err := h.svc.VoteCounts(c.Request.Context(), forum.SubjectQuestion, id)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Vote recorded", "like_count": likes, "dislike_count": dislikes})
	}
}
