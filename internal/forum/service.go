// Package forum implements the question and answer core: content writes,
// the vote ledger, the tag index and the ranked read views.
package forum

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	DefaultRankingLimit = 10
	bestTagsLimit       = 10
)

type Service struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

func NewService(db *gorm.DB, log logrus.FieldLogger) *Service {
	return &Service{
		db:  db,
		log: log.WithField("component", "forum"),
	}
}
