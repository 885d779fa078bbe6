// Package memstore holds in-memory repositories. They back the no-db mode
// the store falls into when POSTGRES_DSN is unset, and the handler tests.
package memstore

import (
	"context"
	"sync"

	"chronicle/internal/domain"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

func (r *UserRepository) Create(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return domain.ErrConflict
	}
	user.Authorities = append([]string(nil), user.Authorities...)
	r.users[user.Username] = user
	return nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	user.Authorities = append([]string(nil), user.Authorities...)
	return &user, nil
}
