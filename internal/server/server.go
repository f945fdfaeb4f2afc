package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/emilythestrangee/askme/backend/internal/config"
	"github.com/emilythestrangee/askme/backend/internal/database"
	"github.com/emilythestrangee/askme/backend/internal/forum"
	"github.com/emilythestrangee/askme/backend/internal/handlers"
	"github.com/emilythestrangee/askme/backend/internal/middleware"
)

type Server struct {
	cfg     *config.Config
	db      database.Service
	log     *logrus.Logger
	tokens  *middleware.Tokens
	handler *handlers.Handler
}

// New wires the forum service and handlers on top of an open database.
func New(cfg *config.Config, db database.Service, log *logrus.Logger) *Server {
	tokens := middleware.NewTokens(cfg.JWTSecret, cfg.JWTTTL)
	svc := forum.NewService(db.GetDB(), log.WithField("component", "forum"))
	pages := handlers.PageSizes{Questions: cfg.QuestionsPerPage, Answers: cfg.AnswersPerPage}

	return &Server{
		cfg:     cfg,
		db:      db,
		log:     log,
		tokens:  tokens,
		handler: handlers.NewHandler(svc, tokens, pages, log.WithField("component", "http")),
	}
}

// NewServer creates and configures a new HTTP server
func NewServer(cfg *config.Config, db database.Service, log *logrus.Logger) *http.Server {
	s := New(cfg, db, log)

	return &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Location", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	origins := s.cfg.CORSOrigins
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequestLogger(s.log), gin.Recovery())
	r.Use(cors.New(s.corsConfig()))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		stats := s.db.Health()
		if stats["status"] != "up" {
			c.JSON(http.StatusServiceUnavailable, stats)
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	h := s.handler
	api := r.Group("/api")
	api.Use(middleware.OptionalAuth(s.tokens))
	{
		// Auth routes (public)
		api.POST("/register", h.Auth.Register)
		api.POST("/login", h.Auth.Login)

		// Question routes (public reads)
		api.GET("/questions", h.Question.GetQuestions)
		api.GET("/questions/hot", h.Question.GetHotQuestions)
		api.GET("/questions/:id", h.Question.GetQuestion)

		// Tag routes
		api.GET("/tags/best", h.Tag.GetBestTags)
		api.GET("/tags/:name/questions", h.Tag.GetTagQuestions)

		// User routes (public reads)
		api.GET("/users/best", h.User.GetBestUsers)
		api.GET("/users/:id", h.User.GetUserProfile)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(s.tokens))
		{
			protected.GET("/me", h.Auth.GetMe)
			protected.PUT("/me", h.Auth.EditProfile)

			protected.POST("/questions", h.Question.CreateQuestion)
			protected.POST("/questions/:id/answers", h.Answer.CreateAnswer)
			protected.POST("/questions/:id/like", h.Question.VoteQuestion(forum.Like))
			protected.POST("/questions/:id/dislike", h.Question.VoteQuestion(forum.Dislike))

			protected.POST("/answers/:id/like", h.Answer.VoteAnswer(forum.Like))
			protected.POST("/answers/:id/dislike", h.Answer.VoteAnswer(forum.Dislike))
			protected.POST("/answers/:id/correct", h.Answer.MarkCorrect)
		}
	}

	return r
}
