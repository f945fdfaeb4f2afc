package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	base
	pages PageSizes
}

// GetBestTags returns the most used tags
func (h *TagHandler) GetBestTags(c *gin.Context) {
	tags, err := h.svc.BestTags(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

// GetTagQuestions lists the questions carrying a tag
func (h *TagHandler) GetTagQuestions(c *gin.Context) {
	name := c.Param("name")
	views, err := h.svc.QuestionsByTag(c.Request.Context(), name)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.listing(c, views, h.pages.Questions, gin.H{"tag": name})
}
