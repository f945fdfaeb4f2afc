package forum

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/emilythestrangee/askme/backend/internal/models"
)

// Counts are derived on every read from the ledger and answer tables. Each
// view runs one ranking query that yields ids and counts, then loads the
// rows with their author and tags.

const questionCountColumns = `questions.id,
	(SELECT COUNT(*) FROM question_likes WHERE question_likes.question_id = questions.id) AS like_count,
	(SELECT COUNT(*) FROM question_dislikes WHERE question_dislikes.question_id = questions.id) AS dislike_count,
	(SELECT COUNT(*) FROM answers WHERE answers.question_id = questions.id) AS answer_count`

const answerCountColumns = `answers.id,
	(SELECT COUNT(*) FROM answer_likes WHERE answer_likes.answer_id = answers.id) AS like_count,
	(SELECT COUNT(*) FROM answer_dislikes WHERE answer_dislikes.answer_id = answers.id) AS dislike_count`

const byDate = "questions.created_at DESC, questions.id DESC"

type questionRank struct {
	ID           uint
	LikeCount    int64
	DislikeCount int64
	AnswerCount  int64
}

type answerRank struct {
	ID           uint
	LikeCount    int64
	DislikeCount int64
}

type userRank struct {
	ID              uint
	AnswerLikeCount int64
}

func rankingLimit(limit int) int {
	if limit <= 0 {
		return DefaultRankingLimit
	}
	return limit
}

func orderedTags(db *gorm.DB) *gorm.DB {
	return db.Order("tags.id")
}

// QuestionsByDate lists every question, newest first.
func (s *Service) QuestionsByDate(ctx context.Context) ([]models.QuestionView, error) {
	return s.rankQuestions(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Order(byDate)
	})
}

// QuestionsByPopularity lists the most liked questions. Equal like counts
// fall back to newest first.
func (s *Service) QuestionsByPopularity(ctx context.Context, limit int) ([]models.QuestionView, error) {
	return s.rankQuestions(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Order("like_count DESC, " + byDate).Limit(rankingLimit(limit))
	})
}

// QuestionsByTag lists the questions carrying the named tag, newest first.
func (s *Service) QuestionsByTag(ctx context.Context, title string) ([]models.QuestionView, error) {
	tag, err := s.TagByTitle(ctx, title)
	if err != nil {
		return nil, err
	}

	return s.rankQuestions(ctx, func(q *gorm.DB) *gorm.DB {
		return q.
			Where("EXISTS (SELECT 1 FROM question_tags WHERE question_tags.question_id = questions.id AND question_tags.tag_id = ?)", tag.ID).
			Order(byDate)
	})
}

// QuestionByID returns one question with its counts.
func (s *Service) QuestionByID(ctx context.Context, id uint) (models.QuestionView, error) {
	views, err := s.rankQuestions(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("questions.id = ?", id)
	})
	if err != nil {
		return models.QuestionView{}, err
	}
	if len(views) == 0 {
		return models.QuestionView{}, ErrQuestionNotFound
	}
	return views[0], nil
}

func (s *Service) rankQuestions(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]models.QuestionView, error) {
	db := s.db.WithContext(ctx)

	var ranks []questionRank
	if err := scope(db.Table("questions").Select(questionCountColumns)).Scan(&ranks).Error; err != nil {
		return nil, errors.Wrap(err, "rank questions")
	}

	views := make([]models.QuestionView, 0, len(ranks))
	if len(ranks) == 0 {
		return views, nil
	}

	ids := make([]uint, len(ranks))
	for i, r := range ranks {
		ids[i] = r.ID
	}

	var questions []models.Question
	if err := db.Preload("Author").Preload("Tags", orderedTags).Find(&questions, ids).Error; err != nil {
		return nil, errors.Wrap(err, "load questions")
	}
	byID := make(map[uint]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	for _, r := range ranks {
		q, ok := byID[r.ID]
		if !ok {
			// deleted between the two reads
			continue
		}
		if q.Tags == nil {
			q.Tags = []models.Tag{}
		}
		views = append(views, models.QuestionView{
			Question:     q,
			LikeCount:    r.LikeCount,
			DislikeCount: r.DislikeCount,
			AnswerCount:  r.AnswerCount,
		})
	}
	return views, nil
}

// AnswersForQuestion lists the answers of a question in the order they were
// posted, each with its vote counts.
func (s *Service) AnswersForQuestion(ctx context.Context, questionID uint) ([]models.AnswerView, error) {
	db := s.db.WithContext(ctx)

	err := db.Select("id").First(&models.Question{}, questionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQuestionNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "look up question")
	}

	var ranks []answerRank
	err = db.Table("answers").
		Select(answerCountColumns).
		Where("answers.question_id = ?", questionID).
		Order("answers.id ASC").
		Scan(&ranks).Error
	if err != nil {
		return nil, errors.Wrap(err, "rank answers")
	}

	views := make([]models.AnswerView, 0, len(ranks))
	if len(ranks) == 0 {
		return views, nil
	}

	ids := make([]uint, len(ranks))
	for i, r := range ranks {
		ids[i] = r.ID
	}

	var answers []models.Answer
	if err := db.Preload("Author").Find(&answers, ids).Error; err != nil {
		return nil, errors.Wrap(err, "load answers")
	}
	byID := make(map[uint]models.Answer, len(answers))
	for _, a := range answers {
		byID[a.ID] = a
	}

	for _, r := range ranks {
		a, ok := byID[r.ID]
		if !ok {
			continue
		}
		views = append(views, models.AnswerView{
			Answer:       a,
			LikeCount:    r.LikeCount,
			DislikeCount: r.DislikeCount,
		})
	}
	return views, nil
}

// BestUsers ranks users by the total number of likes their answers have
// received. Equal totals are ordered by registration.
func (s *Service) BestUsers(ctx context.Context, limit int) ([]models.UserRating, error) {
	db := s.db.WithContext(ctx)

	var ranks []userRank
	err := db.Table("users").
		Select("users.id, COUNT(answer_likes.id) AS answer_like_count").
		Joins("LEFT JOIN answers ON answers.author_id = users.id").
		Joins("LEFT JOIN answer_likes ON answer_likes.answer_id = answers.id").
		Group("users.id").
		Order("answer_like_count DESC, users.id ASC").
		Limit(rankingLimit(limit)).
		Scan(&ranks).Error
	if err != nil {
		return nil, errors.Wrap(err, "rank users")
	}

	ratings := make([]models.UserRating, 0, len(ranks))
	if len(ranks) == 0 {
		return ratings, nil
	}

	ids := make([]uint, len(ranks))
	for i, r := range ranks {
		ids[i] = r.ID
	}

	var users []models.User
	if err := db.Find(&users, ids).Error; err != nil {
		return nil, errors.Wrap(err, "load users")
	}
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	for _, r := range ranks {
		u, ok := byID[r.ID]
		if !ok {
			continue
		}
		ratings = append(ratings, models.UserRating{User: u, AnswerLikeCount: r.AnswerLikeCount})
	}
	return ratings, nil
}
