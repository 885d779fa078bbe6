package memstore

import (
	"context"
	"sync"

	"chronicle/internal/domain"
)

type PostRepository struct {
	mu     sync.RWMutex
	nextID int64
	posts  map[int64]domain.Post
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[int64]domain.Post)}
}

func (r *PostRepository) Create(_ context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.posts {
		if existing.Title == post.Title {
			return domain.ErrConflict
		}
	}
	r.nextID++
	post.ID = r.nextID
	r.posts[post.ID] = *post
	return nil
}

func (r *PostRepository) Update(_ context.Context, post domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.posts[post.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for id, existing := range r.posts {
		if id != post.ID && existing.Title == post.Title {
			return domain.ErrConflict
		}
	}
	current.Title = post.Title
	current.Content = post.Content
	r.posts[post.ID] = current
	return nil
}

func (r *PostRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *PostRepository) GetByID(_ context.Context, id int64) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &post, nil
}

func (r *PostRepository) List(_ context.Context, offset, limit int) ([]domain.Post, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	// Newest first, mirroring the sql repository's id DESC ordering.
	ordered := make([]domain.Post, 0, len(r.posts))
	for id := r.nextID; id >= 1; id-- {
		if post, ok := r.posts[id]; ok {
			ordered = append(ordered, post)
		}
	}
	total := int64(len(ordered))
	if offset >= len(ordered) {
		return nil, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(ordered) {
		end = len(ordered)
	}
	return append([]domain.Post(nil), ordered[offset:end]...), total, nil
}

func (r *PostRepository) ExistsByTitle(_ context.Context, title string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, existing := range r.posts {
		if existing.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (r *PostRepository) SetReleased(_ context.Context, id int64, released bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return domain.ErrNotFound
	}
	post.Released = released
	r.posts[id] = post
	return nil
}

type CommentRepository struct {
	mu       sync.RWMutex
	nextID   int64
	comments map[int64][]domain.Comment
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: make(map[int64][]domain.Comment)}
}

func (r *CommentRepository) Create(_ context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	comment.ID = r.nextID
	r.comments[comment.PostID] = append(r.comments[comment.PostID], *comment)
	return nil
}

func (r *CommentRepository) ListByPost(_ context.Context, postID int64) ([]domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Comment(nil), r.comments[postID]...), nil
}
