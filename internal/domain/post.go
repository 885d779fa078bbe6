package domain

import (
	"context"
	"time"
)

const (
	MaxPostTitleLen   = 50
	MaxPostContentLen = 500
	MaxCommentLen     = 500
)

type Post struct {
	ID          int64
	Title       string
	Content     string
	Released    bool
	ReleaseDate time.Time
}

type Comment struct {
	ID        int64
	PostID    int64
	Content   string
	CreatedAt time.Time
}

type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	Update(ctx context.Context, post Post) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*Post, error)
	List(ctx context.Context, offset, limit int) ([]Post, int64, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	SetReleased(ctx context.Context, id int64, released bool) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	ListByPost(ctx context.Context, postID int64) ([]Comment, error)
}
