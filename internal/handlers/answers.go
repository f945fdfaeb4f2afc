package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/askme/backend/internal/forum"
	"github.com/emilythestrangee/askme/backend/internal/models"
)

type AnswerHandler struct {
	base
	pages PageSizes
}

// CreateAnswer posts an answer and points the client at the page holding it
func (h *AnswerHandler) CreateAnswer(c *gin.Context) {
	questionID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var input models.CreateAnswerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.svc.CreateAnswer(c.Request.Context(), actor(c), questionID, input.Text)
	if err != nil {
		h.fail(c, err)
		return
	}

	page, err := h.svc.AnswerPageOf(c.Request.Context(), questionID, h.pages.Answers)
	if err != nil {
		h.fail(c, err)
		return
	}

	location := fmt.Sprintf("/api/questions/%d?page=%d", questionID, page)
	c.Header("Location", location)
	c.JSON(http.StatusCreated, gin.H{"answer": answer, "page": page, "location": location})
}

// VoteAnswer likes or dislikes an answer (PROTECTED - requires authentication)
func (h *AnswerHandler) VoteAnswer(polarity forum.Polarity) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		if err := h.svc.CastVote(c.Request.Context(), actor(c), forum.SubjectAnswer, id, polarity); err != nil {
			h.fail(c, err)
			return
		}
		likes, dislikes, err := h.svc.VoteCounts(c.Request.Context(), forum.SubjectAnswer, id)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Vote recorded", "like_count": likes, "dislike_count": dislikes})
	}
}

// MarkCorrect flags an answer as correct (question author only)
func (h *AnswerHandler) MarkCorrect(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	answer, err := h.svc.MarkCorrect(c.Request.Context(), actor(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}
