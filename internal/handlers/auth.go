package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/askme/backend/internal/forum"
	"github.com/emilythestrangee/askme/backend/internal/middleware"
	"github.com/emilythestrangee/askme/backend/internal/models"
)

type AuthHandler struct {
	base
	tokens *middleware.Tokens
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var input models.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.svc.CreateUser(c.Request.Context(), forum.NewUser{
		Login:    input.Username,
		Email:    input.Email,
		Nickname: input.Nickname,
		Password: input.Password,
		Avatar:   input.Avatar,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, user, "User registered successfully")
}

// Login exchanges username and password for a token
func (h *AuthHandler) Login(c *gin.Context) {
	var input models.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.svc.Authenticate(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respondWithToken(c, http.StatusOK, user, "Login successful")
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user models.User, message string) {
	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(status, models.AuthResponse{Token: token, User: user, Message: message})
}

// GetMe returns the authenticated user
func (h *AuthHandler) GetMe(c *gin.Context) {
	user, err := h.svc.UserByID(c.Request.Context(), actor(c).UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// EditProfile updates email, nickname or avatar of the authenticated user
func (h *AuthHandler) EditProfile(c *gin.Context) {
	var input models.EditProfileRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.svc.EditProfile(c.Request.Context(), actor(c), input.Email, input.Nickname, input.Avatar)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
