package db

import (
	"context"

	"chronicle/internal/domain"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if r.db == nil {
		return errDBUnavailable
	}
	model := CommentModel{
		PostID:    comment.PostID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	comment.ID = model.ID
	return nil
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]domain.Comment, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []CommentModel
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).Order("id").Find(&models).Error
	if err != nil {
		return nil, err
	}
	comments := make([]domain.Comment, 0, len(models))
	for _, m := range models {
		comments = append(comments, domain.Comment{
			ID:        m.ID,
			PostID:    m.PostID,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return comments, nil
}
