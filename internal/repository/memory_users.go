package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"imovelhub-api/internal/domain"
)

// MemoryUsersRepository in-memory UsersRepository for tests and DB-less
// development mode.
type MemoryUsersRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User // user_id -> record
}

func NewMemoryUsersRepository() *MemoryUsersRepository {
	return &MemoryUsersRepository{users: map[string]*domain.User{}}
}

var _ UsersRepository = (*MemoryUsersRepository)(nil)

func (r *MemoryUsersRepository) ListUsers(ctx context.Context, companyID string) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.User
	for _, u := range r.users {
		if u.CompanyID != companyID {
			continue
		}
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryUsersRepository) GetUser(ctx context.Context, companyID, userID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userID]
	if !ok || u.CompanyID != companyID {
		return nil, ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *MemoryUsersRepository) GetUserByProviderSubject(ctx context.Context, subject string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ProviderSubject == subject {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *MemoryUsersRepository) CreateUser(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *u
	now := time.Now()
	clone.CreatedAt = now
	clone.UpdatedAt = now
	r.users[clone.UserID] = &clone
	return nil
}

func (r *MemoryUsersRepository) UpdateUser(ctx context.Context, companyID, userID string, updates map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok || u.CompanyID != companyID {
		return ErrUserNotFound
	}
	for col, val := range updates {
		s, _ := val.(string)
		switch col {
		case "email":
			u.Email = s
		case "name":
			u.Name = s
		case "phone":
			u.Phone = s
		case "role":
			u.Role = s
		case "status":
			u.Status = s
		}
	}
	u.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryUsersRepository) DeleteUser(ctx context.Context, companyID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok || u.CompanyID != companyID {
		return ErrUserNotFound
	}
	delete(r.users, userID)
	return nil
}
