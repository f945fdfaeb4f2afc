package forum

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/askme/backend/internal/models"
	"github.com/emilythestrangee/askme/backend/internal/pagination"
)

func requireUser(tx *gorm.DB, id uint) error {
	err := tx.Select("id").First(&models.User{}, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	return errors.Wrap(err, "look up user")
}

// CreateQuestion stores a new question by actor and attaches the tags named
// in rawTags (see ParseTags).
func (s *Service) CreateQuestion(ctx context.Context, actor Actor, title, text, rawTags string) (models.Question, error) {
	if !actor.Authenticated() {
		return models.Question{}, ErrUnauthorized
	}
	if strings.TrimSpace(title) == "" {
		return models.Question{}, invalid("question title is required")
	}
	if strings.TrimSpace(text) == "" {
		return models.Question{}, invalid("question text is required")
	}

	question := models.Question{
		AuthorID: actor.UserID,
		Title:    title,
		Text:     text,
		IsActive: true,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUser(tx, actor.UserID); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&question).Error; err != nil {
			return errors.Wrap(err, "insert question")
		}
		if _, err := attachTags(tx, question.ID, ParseTags(rawTags)); err != nil {
			return err
		}
		return tx.Preload("Author").Preload("Tags", orderedTags).First(&question, question.ID).Error
	})
	if err != nil {
		return models.Question{}, err
	}

	s.log.WithFields(logrus.Fields{
		"question_id": question.ID,
		"author_id":   actor.UserID,
		"tags":        len(question.Tags),
	}).Info("question created")
	return question, nil
}

// CreateAnswer stores an answer by actor on an existing question. Nothing is
// written when the question does not exist.
func (s *Service) CreateAnswer(ctx context.Context, actor Actor, questionID uint, text string) (models.Answer, error) {
	if !actor.Authenticated() {
		return models.Answer{}, ErrUnauthorized
	}
	if strings.TrimSpace(text) == "" {
		return models.Answer{}, invalid("answer text is required")
	}

	answer := models.Answer{
		AuthorID:   actor.UserID,
		QuestionID: questionID,
		Text:       text,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Select("id").First(&models.Question{}, questionID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		if err != nil {
			return errors.Wrap(err, "look up question")
		}
		if err := requireUser(tx, actor.UserID); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&answer).Error; err != nil {
			return errors.Wrap(err, "insert answer")
		}
		return tx.Preload("Author").First(&answer, answer.ID).Error
	})
	if err != nil {
		return models.Answer{}, err
	}

	s.log.WithFields(logrus.Fields{
		"answer_id":   answer.ID,
		"question_id": questionID,
		"author_id":   actor.UserID,
	}).Info("answer created")
	return answer, nil
}

// MarkCorrect flags an answer as correct. Only the author of the question
// the answer belongs to may do so. Other answers keep their flag.
func (s *Service) MarkCorrect(ctx context.Context, actor Actor, answerID uint) (models.Answer, error) {
	if !actor.Authenticated() {
		return models.Answer{}, ErrUnauthorized
	}

	var answer models.Answer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Preload("Question").Preload("Author").First(&answer, answerID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnswerNotFound
		}
		if err != nil {
			return errors.Wrap(err, "look up answer")
		}
		if answer.Question == nil || answer.Question.AuthorID != actor.UserID {
			return ErrForbidden
		}
		if answer.IsCorrect {
			return nil
		}
		err = tx.Model(&models.Answer{}).Where("id = ?", answer.ID).Update("is_correct", true).Error
		if err != nil {
			return errors.Wrap(err, "mark answer correct")
		}
		answer.IsCorrect = true
		return nil
	})
	if err != nil {
		return models.Answer{}, err
	}
	return answer, nil
}

// AnswerPageOf returns the number of the last page of a question's answers
// for the given page size, which is where a freshly posted answer lands.
func (s *Service) AnswerPageOf(ctx context.Context, questionID uint, pageSize int) (int, error) {
	if pageSize <= 0 {
		return 0, pagination.ErrInvalidPageSize
	}

	db := s.db.WithContext(ctx)
	err := db.Select("id").First(&models.Question{}, questionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrQuestionNotFound
	}
	if err != nil {
		return 0, errors.Wrap(err, "look up question")
	}

	var count int64
	if err := db.Model(&models.Answer{}).Where("question_id = ?", questionID).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count answers")
	}
	return pagination.TotalPages(int(count), pageSize), nil
}
