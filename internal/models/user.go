package models

import "time"

// DefaultAvatar is assigned when a user registers without a picture.
const DefaultAvatar = "uploads/default_image.jpg"

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:150;unique;not null" json:"username"`
	Email    string `gorm:"size:254;unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Nickname string `gorm:"size:100" json:"nickname"`
	Avatar   string `gorm:"size:255" json:"avatar"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Nickname string `json:"nickname"`
	Password string `json:"password" binding:"required,min=6"`
	Avatar   string `json:"avatar"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// EditProfileRequest fields left empty keep their current value.
type EditProfileRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

type AuthResponse struct {
	Token   string `json:"token"`
	User    User   `json:"user"`
	Message string `json:"message"`
}

// UserRating is a user ranked by the likes their answers received.
type UserRating struct {
	User
	AnswerLikeCount int64 `json:"answer_like_count"`
}
