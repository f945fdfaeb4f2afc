package forum

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/askme/backend/internal/config"
	"github.com/emilythestrangee/askme/backend/internal/database"
	"github.com/emilythestrangee/askme/backend/internal/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	db, err := database.New(config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "forum.db") + "?_foreign_keys=on",
	}, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewService(db.GetDB(), log)
}

func mustUser(t *testing.T, s *Service, login string) Actor {
	t.Helper()
	user, err := s.CreateUser(context.Background(), NewUser{
		Login:    login,
		Email:    login + "@example.com",
		Nickname: login,
		Password: "secret1",
	})
	require.NoError(t, err)
	return AsUser(user.ID)
}

func mustQuestion(t *testing.T, s *Service, author Actor, title, tags string) models.Question {
	t.Helper()
	q, err := s.CreateQuestion(context.Background(), author, title, "body of "+title, tags)
	require.NoError(t, err)
	return q
}

func mustAnswer(t *testing.T, s *Service, author Actor, questionID uint) models.Answer {
	t.Helper()
	a, err := s.CreateAnswer(context.Background(), author, questionID, "answer text")
	require.NoError(t, err)
	return a
}

// voters creates n distinct users.
func voters(t *testing.T, s *Service, n int) []Actor {
	t.Helper()
	out := make([]Actor, n)
	for i := range out {
		out[i] = mustUser(t, s, fmt.Sprintf("voter%d", i))
	}
	return out
}

func setCreatedAt(t *testing.T, s *Service, questionID uint, at time.Time) {
	t.Helper()
	err := s.db.Model(&models.Question{}).Where("id = ?", questionID).Update("created_at", at).Error
	require.NoError(t, err)
}

func questionIDs(views []models.QuestionView) []uint {
	ids := make([]uint, len(views))
	for i, v := range views {
		ids[i] = v.ID
	}
	return ids
}
