package models

import "time"

type Tag struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Title string `gorm:"size:50;uniqueIndex;not null" json:"title"`
}

// QuestionTag is the join row between questions and tags.
type QuestionTag struct {
	QuestionID uint      `gorm:"primaryKey" json:"question_id"`
	TagID      uint      `gorm:"primaryKey;index" json:"tag_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TagCount is a tag together with the number of distinct questions using it.
type TagCount struct {
	Tag
	QuestionCount int64 `json:"question_count"`
}
