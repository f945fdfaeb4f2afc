//go:build integration

package database_test

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/emilythestrangee/askme/backend/internal/config"
	"github.com/emilythestrangee/askme/backend/internal/database"
	"github.com/emilythestrangee/askme/backend/internal/forum"
)

func startPostgres(t *testing.T) config.DatabaseConfig {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("askme"),
		tcpostgres.WithUsername("askme"),
		tcpostgres.WithPassword("askme"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	host, err := ctr.Host(ctx)
	require.NoError(t, err)
	port, err := ctr.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return config.DatabaseConfig{
		Host:     host,
		Port:     port.Port(),
		User:     "askme",
		Password: "askme",
		Name:     "askme",
		SSLMode:  "disable",
	}
}

func TestPostgresDrivers(t *testing.T) {
	base := startPostgres(t)

	log := logrus.New()
	log.SetOutput(io.Discard)

	// both drivers share one container; the second run sees the first run's rows
	for i, driver := range []string{"pgx", "postgres"} {
		t.Run(driver, func(t *testing.T) {
			cfg := base
			cfg.Driver = driver

			db, err := database.New(cfg, log)
			require.NoError(t, err)
			defer db.Close()

			assert.Equal(t, "up", db.Health()["status"])

			svc := forum.NewService(db.GetDB(), log)
			ctx := context.Background()

			login := []string{"alice", "bob"}[i]
			user, err := svc.CreateUser(ctx, forum.NewUser{Login: login, Email: login + "@example.com", Password: "secret1"})
			require.NoError(t, err)
			actor := forum.AsUser(user.ID)

			_, err = svc.CreateUser(ctx, forum.NewUser{Login: login, Email: "dup-" + login + "@example.com", Password: "secret1"})
			assert.True(t, errors.Is(err, forum.ErrUsernameTaken))

			q, err := svc.CreateQuestion(ctx, actor, "title", "text", "go, sql")
			require.NoError(t, err)
			assert.Len(t, q.Tags, 2)

			const workers = 8
			var (
				wg         sync.WaitGroup
				mu         sync.Mutex
				ok, dupes  int
				unexpected []error
			)
			for w := 0; w < workers; w++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					err := svc.LikeQuestion(ctx, actor, q.ID)
					mu.Lock()
					defer mu.Unlock()
					switch {
					case err == nil:
						ok++
					case errors.Is(err, forum.ErrDuplicateVote):
						dupes++
					default:
						unexpected = append(unexpected, err)
					}
				}()
			}
			wg.Wait()

			require.Empty(t, unexpected)
			assert.Equal(t, 1, ok)
			assert.Equal(t, workers-1, dupes)

			likes, _, err := svc.VoteCounts(ctx, forum.SubjectQuestion, q.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(1), likes)

			tags, err := svc.BestTags(ctx)
			require.NoError(t, err)
			require.NotEmpty(t, tags)
			assert.Equal(t, int64(i+1), tags[0].QuestionCount)
		})
	}
}
