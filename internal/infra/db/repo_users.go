package db

import (
	"context"
	"errors"

	"chronicle/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	if r.db == nil {
		return errDBUnavailable
	}
	model := UserModel{
		ID:             user.ID,
		Username:       user.Username,
		PasswordDigest: user.PasswordDigest,
		CreatedAt:      user.CreatedAt,
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrConflict
			}
			return err
		}
		for _, name := range user.Authorities {
			authority := AuthorityModel{
				ID:     uuid.NewString(),
				UserID: user.ID,
				Name:   name,
			}
			if err := tx.Create(&authority).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model UserModel
	err := r.db.WithContext(ctx).First(&model, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var authorities []AuthorityModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", model.ID).Order("name").Find(&authorities).Error; err != nil {
		return nil, err
	}
	user := domain.User{
		ID:             model.ID,
		Username:       model.Username,
		PasswordDigest: model.PasswordDigest,
		CreatedAt:      model.CreatedAt,
	}
	for _, a := range authorities {
		user.Authorities = append(user.Authorities, a.Name)
	}
	return &user, nil
}
