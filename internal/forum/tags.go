package forum

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/askme/backend/internal/models"
)

// ParseTags splits a raw tag string on commas and then splits every comma
// segment on whitespace. Each non-empty token is one tag, so
// "tag1 tag2,tag3" yields tag1, tag2 and tag3. Repeated tokens are kept once.
func ParseTags(raw string) []string {
	seen := make(map[string]struct{})
	var titles []string
	for _, segment := range strings.Split(raw, ",") {
		for _, token := range strings.Fields(segment) {
			if _, dup := seen[token]; dup {
				continue
			}
			seen[token] = struct{}{}
			titles = append(titles, token)
		}
	}
	return titles
}

// AttachTags associates every tag named in raw with the question, creating
// missing tags. Attaching a tag the question already has is a no-op.
func (s *Service) AttachTags(ctx context.Context, questionID uint, raw string) ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Select("id").First(&models.Question{}, questionID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		if err != nil {
			return errors.Wrap(err, "look up question")
		}

		tags, err = attachTags(tx, questionID, ParseTags(raw))
		return err
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func attachTags(tx *gorm.DB, questionID uint, titles []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(titles))
	for _, title := range titles {
		tag, err := ensureTag(tx, title)
		if err != nil {
			return nil, err
		}

		link := models.QuestionTag{QuestionID: questionID, TagID: tag.ID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
			return nil, errors.Wrapf(err, "attach tag %q", title)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// ensureTag returns the tag with the exact title, creating it first when it
// does not exist yet. Concurrent creators of the same title converge on one
// row through the unique index.
func ensureTag(tx *gorm.DB, title string) (models.Tag, error) {
	candidate := models.Tag{Title: title}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "title"}},
		DoNothing: true,
	}).Create(&candidate).Error
	if err != nil {
		return models.Tag{}, errors.Wrapf(err, "create tag %q", title)
	}

	var tag models.Tag
	if err := tx.Where("title = ?", title).First(&tag).Error; err != nil {
		return models.Tag{}, errors.Wrapf(err, "load tag %q", title)
	}
	return tag, nil
}

// TagByTitle looks a tag up by its exact, case-sensitive title.
func (s *Service) TagByTitle(ctx context.Context, title string) (models.Tag, error) {
	var tag models.Tag
	err := s.db.WithContext(ctx).Where("title = ?", title).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Tag{}, ErrTagNotFound
	}
	if err != nil {
		return models.Tag{}, errors.Wrap(err, "look up tag")
	}
	return tag, nil
}

func (s *Service) AllTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.WithContext(ctx).Order("id").Find(&tags).Error; err != nil {
		return nil, errors.Wrap(err, "list tags")
	}
	return tags, nil
}

type tagRank struct {
	ID            uint
	Title         string
	QuestionCount int64
}

// BestTags returns the ten tags used by the most distinct questions, most
// used first. Tags with equal counts keep creation order; callers must not
// rely on that tie-break.
func (s *Service) BestTags(ctx context.Context) ([]models.TagCount, error) {
	var rows []tagRank
	err := s.db.WithContext(ctx).
		Table("tags").
		Select("tags.id, tags.title, COUNT(DISTINCT question_tags.question_id) AS question_count").
		Joins("LEFT JOIN question_tags ON question_tags.tag_id = tags.id").
		Group("tags.id, tags.title").
		Order("question_count DESC, tags.id ASC").
		Limit(bestTagsLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "rank tags")
	}

	ranked := make([]models.TagCount, 0, len(rows))
	for _, row := range rows {
		ranked = append(ranked, models.TagCount{
			Tag:           models.Tag{ID: row.ID, Title: row.Title},
			QuestionCount: row.QuestionCount,
		})
	}
	return ranked, nil
}
