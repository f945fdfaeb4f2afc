package forum

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/askme/backend/internal/database"
	"github.com/emilythestrangee/askme/backend/internal/models"
)

// SubjectType is the kind of content a vote targets.
type SubjectType string

const (
	SubjectQuestion SubjectType = "question"
	SubjectAnswer   SubjectType = "answer"
)

type Polarity string

const (
	Like    Polarity = "like"
	Dislike Polarity = "dislike"
)

// ParsePolarity accepts "like" or "dislike".
func ParsePolarity(raw string) (Polarity, error) {
	switch p := Polarity(raw); p {
	case Like, Dislike:
		return p, nil
	default:
		return "", invalid("unknown vote polarity " + raw)
	}
}

// voteRow builds the ledger row for one vote. Each (subject, polarity) pair
// has its own table.
func voteRow(subject SubjectType, subjectID, userID uint, polarity Polarity) (interface{}, error) {
	switch {
	case subject == SubjectQuestion && polarity == Like:
		return &models.QuestionLike{QuestionID: subjectID, UserID: userID}, nil
	case subject == SubjectQuestion && polarity == Dislike:
		return &models.QuestionDislike{QuestionID: subjectID, UserID: userID}, nil
	case subject == SubjectAnswer && polarity == Like:
		return &models.AnswerLike{AnswerID: subjectID, UserID: userID}, nil
	case subject == SubjectAnswer && polarity == Dislike:
		return &models.AnswerDislike{AnswerID: subjectID, UserID: userID}, nil
	default:
		return nil, invalid("unknown vote subject " + string(subject) + "/" + string(polarity))
	}
}

func subjectExists(tx *gorm.DB, subject SubjectType, id uint) error {
	var (
		row      interface{}
		notFound error
	)
	switch subject {
	case SubjectQuestion:
		row, notFound = &models.Question{}, ErrQuestionNotFound
	case SubjectAnswer:
		row, notFound = &models.Answer{}, ErrAnswerNotFound
	default:
		return invalid("unknown vote subject " + string(subject))
	}

	err := tx.Select("id").First(row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return errors.Wrap(err, "look up vote subject")
}

// CastVote records one like or dislike by actor on a question or answer.
// A second vote of the same polarity fails with ErrDuplicateVote and leaves
// the ledger unchanged. Likes and dislikes are independent, casting one
// never removes the other.
func (s *Service) CastVote(ctx context.Context, actor Actor, subject SubjectType, subjectID uint, polarity Polarity) error {
	if !actor.Authenticated() {
		return ErrUnauthorized
	}

	row, err := voteRow(subject, subjectID, actor.UserID, polarity)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := subjectExists(tx, subject, subjectID); err != nil {
			return err
		}

		err := tx.Omit(clause.Associations).Create(row).Error
		switch {
		case database.IsUniqueViolation(err):
			return ErrDuplicateVote
		case database.IsForeignKeyViolation(err):
			return ErrUserNotFound
		case err != nil:
			return errors.Wrap(err, "insert vote")
		}
		return nil
	})

	entry := s.log.WithFields(logrus.Fields{
		"subject":    subject,
		"subject_id": subjectID,
		"user_id":    actor.UserID,
		"polarity":   polarity,
	})
	switch {
	case err == nil:
		entry.Debug("vote cast")
	case errors.Is(err, ErrDuplicateVote):
		entry.Info("duplicate vote rejected")
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidInput):
		// caller mistakes, reported to the caller only
	default:
		entry.WithError(err).Error("cast vote failed")
	}
	return err
}

func (s *Service) LikeQuestion(ctx context.Context, actor Actor, questionID uint) error {
	return s.CastVote(ctx, actor, SubjectQuestion, questionID, Like)
}

func (s *Service) DislikeQuestion(ctx context.Context, actor Actor, questionID uint) error {
	return s.CastVote(ctx, actor, SubjectQuestion, questionID, Dislike)
}

func (s *Service) LikeAnswer(ctx context.Context, actor Actor, answerID uint) error {
	return s.CastVote(ctx, actor, SubjectAnswer, answerID, Like)
}

func (s *Service) DislikeAnswer(ctx context.Context, actor Actor, answerID uint) error {
	return s.CastVote(ctx, actor, SubjectAnswer, answerID, Dislike)
}

// VoteCounts returns the current like and dislike totals of one subject.
func (s *Service) VoteCounts(ctx context.Context, subject SubjectType, subjectID uint) (likes, dislikes int64, err error) {
	likeRow, err := voteRow(subject, subjectID, 0, Like)
	if err != nil {
		return 0, 0, err
	}
	dislikeRow, _ := voteRow(subject, subjectID, 0, Dislike)

	column := "question_id"
	if subject == SubjectAnswer {
		column = "answer_id"
	}

	db := s.db.WithContext(ctx)
	if err := db.Model(likeRow).Where(column+" = ?", subjectID).Count(&likes).Error; err != nil {
		return 0, 0, errors.Wrap(err, "count likes")
	}
	if err := db.Model(dislikeRow).Where(column+" = ?", subjectID).Count(&dislikes).Error; err != nil {
		return 0, 0, errors.Wrap(err, "count dislikes")
	}
	return likes, dislikes, nil
}
