package db

import "time"

type UserModel struct {
	ID             string    `gorm:"type:uuid;primaryKey"`
	Username       string    `gorm:"uniqueIndex;not null"`
	PasswordDigest string    `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}

type AuthorityModel struct {
	ID     string `gorm:"type:uuid;primaryKey"`
	UserID string `gorm:"type:uuid;not null;uniqueIndex:idx_user_authority"`
	Name   string `gorm:"not null;uniqueIndex:idx_user_authority"`
}

func (AuthorityModel) TableName() string {
	return "authorities"
}

type PostModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Title       string    `gorm:"size:50;uniqueIndex;not null"`
	Content     string    `gorm:"size:500;not null"`
	Released    bool      `gorm:"not null;default:false"`
	ReleaseDate time.Time `gorm:"not null"`
}

func (PostModel) TableName() string {
	return "posts"
}

type CommentModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	PostID    int64     `gorm:"index;not null"`
	Content   string    `gorm:"size:500;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (CommentModel) TableName() string {
	return "comments"
}
