package models

import "time"

// Likes and dislikes live in separate tables so the two polarities are
// independent ledgers. Each table allows one row per (subject, user).

type QuestionLike struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"not null;uniqueIndex:idx_question_like_user" json:"question_id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_question_like_user;index" json:"user_id"`
	Question   *Question `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
	User       *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

type QuestionDislike struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"not null;uniqueIndex:idx_question_dislike_user" json:"question_id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_question_dislike_user;index" json:"user_id"`
	Question   *Question `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
	User       *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

type AnswerLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AnswerID  uint      `gorm:"not null;uniqueIndex:idx_answer_like_user" json:"answer_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_answer_like_user;index" json:"user_id"`
	Answer    *Answer   `gorm:"foreignKey:AnswerID;constraint:OnDelete:CASCADE" json:"-"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type AnswerDislike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AnswerID  uint      `gorm:"not null;uniqueIndex:idx_answer_dislike_user" json:"answer_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_answer_dislike_user;index" json:"user_id"`
	Answer    *Answer   `gorm:"foreignKey:AnswerID;constraint:OnDelete:CASCADE" json:"-"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// All lists every table the migrations manage, parents first.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Tag{},
		&Question{},
		&QuestionTag{},
		&Answer{},
		&QuestionLike{},
		&QuestionDislike{},
		&AnswerLike{},
		&AnswerDislike{},
	}
}
