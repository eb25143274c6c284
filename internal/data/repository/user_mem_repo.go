package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"donor-booking/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]entity.User
	log   *zap.Logger
}

func NewMemoryUserRepository(log *zap.Logger) UserRepository {
	return &memoryUserRepository{
		users: make(map[uuid.UUID]entity.User),
		log:   log.With(zap.String("repository", "user_memory")),
	}
}

func (r *memoryUserRepository) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		var field string
		switch {
		case u.ID == user.ID:
			field = "id"
		case strings.EqualFold(u.Email, user.Email):
			field = "email"
		case u.Username == user.Username:
			field = "username"
		case u.Phone == user.Phone:
			field = "phone"
		}
		if field != "" {
			return fmt.Errorf("create user %s: %w (%s)", user.Username, ErrDuplicate, field)
		}
	}

	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id }), nil
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (r *memoryUserRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Username == username }), nil
}

func (r *memoryUserRepository) FindByPhone(_ context.Context, phone string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Phone == phone }), nil
}

func (r *memoryUserRepository) find(match func(*entity.User) bool) *entity.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(&u) {
			cp := u
			return &cp
		}
	}
	return nil
}
