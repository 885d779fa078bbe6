package usecase

import (
	"context"
	"fmt"
	"time"

	"chronicle/internal/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type PostService struct {
	posts    domain.PostRepository
	comments domain.CommentRepository
	now      func() time.Time
}

func NewPostService(posts domain.PostRepository, comments domain.CommentRepository, now func() time.Time) *PostService {
	if now == nil {
		now = time.Now
	}
	return &PostService{posts: posts, comments: comments, now: now}
}

func (s *PostService) Create(ctx context.Context, title, content string) (domain.Post, error) {
	if err := validatePostFields(title, content); err != nil {
		return domain.Post{}, err
	}
	exists, err := s.posts.ExistsByTitle(ctx, title)
	if err != nil {
		return domain.Post{}, err
	}
	if exists {
		return domain.Post{}, fmt.Errorf("%w: post with the same title already exists", domain.ErrConflict)
	}
	post := domain.Post{
		Title:       title,
		Content:     content,
		Released:    false,
		ReleaseDate: s.now(),
	}
	if err := s.posts.Create(ctx, &post); err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

// Update replaces title and content; the release state only changes through
// ChangeReleaseStatus.
func (s *PostService) Update(ctx context.Context, id int64, title, content string) error {
	if err := validatePostFields(title, content); err != nil {
		return err
	}
	current, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	current.Title = title
	current.Content = content
	return s.posts.Update(ctx, *current)
}

func (s *PostService) Delete(ctx context.Context, id int64) error {
	return s.posts.Delete(ctx, id)
}

func (s *PostService) ChangeReleaseStatus(ctx context.Context, id int64, released bool) error {
	return s.posts.SetReleased(ctx, id, released)
}

func (s *PostService) GetByID(ctx context.Context, id int64) (domain.Post, []domain.Comment, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return domain.Post{}, nil, err
	}
	comments, err := s.comments.ListByPost(ctx, id)
	if err != nil {
		return domain.Post{}, nil, err
	}
	return *post, comments, nil
}

func (s *PostService) List(ctx context.Context, page, size int) ([]domain.Post, int64, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return s.posts.List(ctx, page*size, size)
}

func (s *PostService) AddComment(ctx context.Context, postID int64, content string) (domain.Comment, error) {
	if content == "" || len(content) > domain.MaxCommentLen {
		return domain.Comment{}, fmt.Errorf("%w: comment content must be 1-%d characters", domain.ErrInvalidArgument, domain.MaxCommentLen)
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return domain.Comment{}, err
	}
	comment := domain.Comment{
		PostID:    postID,
		Content:   content,
		CreatedAt: s.now(),
	}
	if err := s.comments.Create(ctx, &comment); err != nil {
		return domain.Comment{}, err
	}
	return comment, nil
}

func validatePostFields(title, content string) error {
	if title == "" || len(title) > domain.MaxPostTitleLen {
		return fmt.Errorf("%w: title must be 1-%d characters", domain.ErrInvalidArgument, domain.MaxPostTitleLen)
	}
	if content == "" || len(content) > domain.MaxPostContentLen {
		return fmt.Errorf("%w: content must be 1-%d characters", domain.ErrInvalidArgument, domain.MaxPostContentLen)
	}
	return nil
}
