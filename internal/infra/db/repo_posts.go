package db

import (
	"context"
	"errors"

	"chronicle/internal/domain"

	"gorm.io/gorm"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	if r.db == nil {
		return errDBUnavailable
	}
	model := PostModel{
		Title:       post.Title,
		Content:     post.Content,
		Released:    post.Released,
		ReleaseDate: post.ReleaseDate,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrConflict
		}
		return err
	}
	post.ID = model.ID
	return nil
}

func (r *PostRepository) Update(ctx context.Context, post domain.Post) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).Model(&PostModel{}).Where("id = ?", post.ID).Updates(map[string]any{
		"title":   post.Title,
		"content": post.Content,
	})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrConflict
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).Delete(&PostModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return r.db.WithContext(ctx).Where("post_id = ?", id).Delete(&CommentModel{}).Error
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model PostModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	post := toPost(model)
	return &post, nil
}

func (r *PostRepository) List(ctx context.Context, offset, limit int) ([]domain.Post, int64, error) {
	if r.db == nil {
		return nil, 0, errDBUnavailable
	}
	var total int64
	if err := r.db.WithContext(ctx).Model(&PostModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var models []PostModel
	err := r.db.WithContext(ctx).Order("id DESC").Offset(offset).Limit(limit).Find(&models).Error
	if err != nil {
		return nil, 0, err
	}
	posts := make([]domain.Post, 0, len(models))
	for _, m := range models {
		posts = append(posts, toPost(m))
	}
	return posts, total, nil
}

func (r *PostRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	if r.db == nil {
		return false, errDBUnavailable
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&PostModel{}).Where("title = ?", title).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostRepository) SetReleased(ctx context.Context, id int64, released bool) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).Model(&PostModel{}).Where("id = ?", id).Update("released", released)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func toPost(model PostModel) domain.Post {
	return domain.Post{
		ID:          model.ID,
		Title:       model.Title,
		Content:     model.Content,
		Released:    model.Released,
		ReleaseDate: model.ReleaseDate,
	}
}
