package models

import "time"

type Question struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Tags      []Tag     `gorm:"many2many:question_tags" json:"tags"`
	Title     string    `gorm:"size:120;not null" json:"title"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
}

type CreateQuestionRequest struct {
	Title string `json:"title" binding:"required,max=120"`
	Text  string `json:"text" binding:"required"`
	Tags  string `json:"tags" binding:"max=100"`
}

// QuestionView is a question annotated with counts derived at read time.
type QuestionView struct {
	Question
	LikeCount    int64 `json:"like_count"`
	DislikeCount int64 `json:"dislike_count"`
	AnswerCount  int64 `json:"answer_count"`
}
