package db

import (
	"errors"
	"fmt"
	"log"

	"chronicle/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var errDBUnavailable = errors.New("db unavailable")

type Store struct {
	DB *gorm.DB
}

func NewStore(cfg config.Config) (*Store, error) {
	if cfg.PostgresDSN == "" {
		log.Printf("POSTGRES_DSN not set; starting in no-db mode")
		return &Store{DB: nil}, nil
	}

	gdb, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := gdb.AutoMigrate(&UserModel{}, &AuthorityModel{}, &PostModel{}, &CommentModel{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &Store{DB: gdb}, nil
}
