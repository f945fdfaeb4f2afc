package models

import "time"

type Answer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AuthorID   uint      `gorm:"not null;index" json:"author_id"`
	Author     User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	QuestionID uint      `gorm:"not null;index" json:"question_id"`
	Question   *Question `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	IsCorrect  bool      `gorm:"not null;default:false" json:"is_correct"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreateAnswerRequest struct {
	Text string `json:"text" binding:"required"`
}

// AnswerView is an answer annotated with its vote counts.
type AnswerView struct {
	Answer
	LikeCount    int64 `json:"like_count"`
	DislikeCount int64 `json:"dislike_count"`
}
