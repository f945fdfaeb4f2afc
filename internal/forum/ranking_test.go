package forum

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionsByPopularity(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	author := mustUser(t, s, "author")
	people := voters(t, s, 5)

	a := mustQuestion(t, s, author, "A", "")
	b := mustQuestion(t, s, author, "B", "")
	c := mustQuestion(t, s, author, "C", "")

	like := func(questionID uint, n int) {
		for _, v := range people[:n] {
			require.NoError(t, s.LikeQuestion(ctx, v, questionID))
		}
	}
	like(a.ID, 3)
	like(b.ID, 5)
	like(c.ID, 1)

	views, err := s.QuestionsByPopularity(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint{b.ID, a.ID, c.ID}, questionIDs(views))
	assert.EqualValues(t, 5, views[0].LikeCount)
	assert.EqualValues(t, 3, views[1].LikeCount)
	assert.EqualValues(t, 1, views[2].LikeCount)
}

func TestQuestionsByPopularityLimit(t *testing.T) {
	s := newTestService(t)
	author := mustUser(t, s, "author")
	for i := 0; i < 12; i++ {
		mustQuestion(t, s, author, "Q", "")
	}

	views, err := s.QuestionsByPopularity(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, views, DefaultRankingLimit)

	views, err = s.QuestionsByPopularity(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, views, 3)
}

func TestQuestionsByDateAnnotatesCounts(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	author := mustUser(t, s, "author")
	people := voters(t, s, 3)

	old := mustQuestion(t, s, author, "old", "")
	mid := mustQuestion(t, s, author, "mid", "")
	recent := mustQuestion(t, s, author, "recent", "")

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	setCreatedAt(t, s, old.ID, base)
	setCreatedAt(t, s, mid.ID, base.Add(time.Hour))
	setCreatedAt(t, s, recent.ID, base.Add(2*time.Hour))

	require.NoError(t, s.LikeQuestion(ctx, people[0], mid.ID))
	require.NoError(t, s.LikeQuestion(ctx, people[1], mid.ID))
	require.NoError(t, s.DislikeQuestion(ctx, people[2], mid.ID))
	mustAnswer(t, s, people[0], mid.ID)
	mustAnswer(t, s, people[1], mid.ID)
	mustAnswer(t, s, people[2], mid.ID)

	views, err := s.QuestionsByDate(ctx)
	require.NoError(t, err)
	require.Equal(t, []uint{recent.ID, mid.ID, old.ID}, questionIDs(views))

	got := views[1]
	assert.EqualValues(t, 2, got.LikeCount)
	assert.EqualValues(t, 1, got.DislikeCount)
	assert.EqualValues(t, 3, got.AnswerCount)
	assert.Equal(t, "author", got.Author.Username)

	assert.Zero(t, views[0].LikeCount)
	assert.Zero(t, views[0].AnswerCount)
}

func TestQuestionsByTag(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	author := mustUser(t, s, "author")

	q, err := s.CreateQuestion(ctx, author, "T", "Body", "x, y")
	require.NoError(t, err)
	other := mustQuestion(t, s, author, "other", "y")

	views, err := s.QuestionsByTag(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, []uint{q.ID}, questionIDs(views))
	assert.ElementsMatch(t, []string{"x", "y"}, tagTitles(views[0].Tags))

	views, err = s.QuestionsByTag(ctx, "y")
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{q.ID, other.ID}, questionIDs(views))

	_, err = s.QuestionsByTag(ctx, "missing")
	assert.ErrorIs(t, err, ErrTagNotFound)
}

func TestQuestionByID(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	author := mustUser(t, s, "author")
	voter := mustUser(t, s, "voter")
	q := mustQuestion(t, s, author, "Q", "go")
	require.NoError(t, s.DislikeQuestion(ctx, voter, q.ID))

	view, err := s.QuestionByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "Q", view.Title)
	assert.EqualValues(t, 1, view.DislikeCount)
	assert.Len(t, view.Tags, 1)

	_, err = s.QuestionByID(ctx, q.ID+1)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestAnswersForQuestion(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	author := mustUser(t, s, "author")
	people := voters(t, s, 2)
	q := mustQuestion(t, s, author, "Q", "")

	first := mustAnswer(t, s, people[0], q.ID)
	second := mustAnswer(t, s, people[1], q.ID)
	require.NoError(t, s.LikeAnswer(ctx, people[0], second.ID))
	require.NoError(t, s.LikeAnswer(ctx, people[1], second.ID))
	require.NoError(t, s.DislikeAnswer(ctx, people[1], first.ID))

	answers, err := s.AnswersForQuestion(ctx, q.ID)
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, first.ID, answers[0].ID)
	assert.EqualValues(t, 0, answers[0].LikeCount)
	assert.EqualValues(t, 1, answers[0].DislikeCount)
	assert.Equal(t, second.ID, answers[1].ID)
	assert.EqualValues(t, 2, answers[1].LikeCount)
	assert.Equal(t, "voter1", answers[1].Author.Username)

	_, err = s.AnswersForQuestion(ctx, q.ID+1)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestAnswersForQuestionWithoutAnswers(t *testing.T) {
	s := newTestService(t)
	author := mustUser(t, s, "author")
	q := mustQuestion(t, s, author, "Q", "")

	answers, err := s.AnswersForQuestion(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Empty(t, answers)
	assert.NotNil(t, answers)
}

func TestBestUsers(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	asker := mustUser(t, s, "asker")
	people := voters(t, s, 3)
	q := mustQuestion(t, s, asker, "Q", "")

	// voter0 answers twice and collects three likes, voter1 collects one
	a1 := mustAnswer(t, s, people[0], q.ID)
	a2 := mustAnswer(t, s, people[0], q.ID)
	b := mustAnswer(t, s, people[1], q.ID)
	require.NoError(t, s.LikeAnswer(ctx, people[1], a1.ID))
	require.NoError(t, s.LikeAnswer(ctx, people[2], a1.ID))
	require.NoError(t, s.LikeAnswer(ctx, people[2], a2.ID))
	require.NoError(t, s.LikeAnswer(ctx, people[0], b.ID))
	// dislikes and question likes do not count
	require.NoError(t, s.DislikeAnswer(ctx, asker, b.ID))
	require.NoError(t, s.LikeQuestion(ctx, people[2], q.ID))

	best, err := s.BestUsers(ctx, 2)
	require.NoError(t, err)
	require.Len(t, best, 2)
	assert.Equal(t, people[0].UserID, best[0].ID)
	assert.EqualValues(t, 3, best[0].AnswerLikeCount)
	assert.Equal(t, people[1].UserID, best[1].ID)
	assert.EqualValues(t, 1, best[1].AnswerLikeCount)

	all, err := s.BestUsers(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Zero(t, all[3].AnswerLikeCount)
}
