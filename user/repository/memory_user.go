package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ravikgupta/affilink/backend/domain"
)

// memoryUserRepository keeps user profiles and their activity feeds in
// process memory
type memoryUserRepository struct {
	mu         sync.RWMutex
	users      map[primitive.ObjectID]domain.User
	activities []domain.Activity
}

// NewMemoryUserRepository will create an in-memory object that represents
// the domain.UserRepository interface, preloaded with seed
func NewMemoryUserRepository(seed []domain.User) domain.UserRepository {
	users := make(map[primitive.ObjectID]domain.User, len(seed))
	for _, u := range seed {
		users[u.ID] = u
	}
	return &memoryUserRepository{users: users}
}

func (m *memoryUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user was not found: %w", domain.ErrNotFound)
	}

	return &u, nil
}

func (m *memoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}

	return nil, fmt.Errorf("user was not found: %w", domain.ErrNotFound)
}

func (m *memoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.ID]; ok {
		return fmt.Errorf("user %s: %w", user.ID.Hex(), domain.ErrConflict)
	}

	m.users[user.ID] = *user
	return nil
}

func (m *memoryUserRepository) Update(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.ID]; !ok {
		return fmt.Errorf("user %s: %w", user.ID.Hex(), domain.ErrNoAffected)
	}

	m.users[user.ID] = *user
	return nil
}

func (m *memoryUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return fmt.Errorf("user %s: %w", id.Hex(), domain.ErrNoAffected)
	}

	delete(m.users, id)
	return nil
}

func (m *memoryUserRepository) StoreActivity(ctx context.Context, activity *domain.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.activities = append(m.activities, *activity)
	return nil
}

func (m *memoryUserRepository) RecentActivity(ctx context.Context, userID string, limit int64) ([]*domain.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*domain.Activity, 0)
	for i := range m.activities {
		if m.activities[i].UserID == userID {
			a := m.activities[i]
			result = append(result, &a)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if int64(len(result)) > limit {
		result = result[:limit]
	}

	return result, nil
}
