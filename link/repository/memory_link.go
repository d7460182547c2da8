package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ravikgupta/affilink/backend/domain"
	"github.com/ravikgupta/affilink/backend/expiry"
)

// memoryLinkRepository keeps affiliate links in process memory. Contents are
// lost on restart; it backs development setups and tests.
type memoryLinkRepository struct {
	mu    sync.RWMutex
	links []domain.AffiliateLink
	clock expiry.Clock
}

// NewMemoryLinkRepository will create an in-memory object that represents
// the domain.LinkRepository interface, preloaded with seed
func NewMemoryLinkRepository(clock expiry.Clock, seed []domain.AffiliateLink) domain.LinkRepository {
	if clock == nil {
		clock = expiry.RealClock{}
	}
	return &memoryLinkRepository{
		links: append([]domain.AffiliateLink(nil), seed...),
		clock: clock,
	}
}

func (m *memoryLinkRepository) GetByID(ctx context.Context, id string) (*domain.AffiliateLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.links {
		if m.links[i].ID == id {
			l := m.links[i]
			return &l, nil
		}
	}

	return nil, fmt.Errorf("affiliate link was not found: %w", domain.ErrNotFound)
}

func (m *memoryLinkRepository) Fetch(ctx context.Context, filter domain.LinkFilter) ([]*domain.AffiliateLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := m.clock.Now().Unix()
	search := strings.ToLower(filter.Search)

	result := make([]*domain.AffiliateLink, 0)
	for i := range m.links {
		l := m.links[i]

		if filter.Platform != "" && string(l.Platform) != filter.Platform {
			continue
		}

		// Active status is the conjunction of the flag and a live expiry,
		// evaluated against the clock at query time.
		active := l.IsActive && l.ExpiryUnix > now
		if filter.Status == domain.StatusActive && !active {
			continue
		}
		if filter.Status == domain.StatusInactive && active {
			continue
		}

		if search != "" &&
			!strings.Contains(strings.ToLower(l.URL), search) &&
			!strings.Contains(strings.ToLower(l.DestinationURL), search) &&
			!strings.Contains(strings.ToLower(l.Tags), search) {
			continue
		}

		result = append(result, &l)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt > result[j].CreatedAt
	})

	return result, nil
}

func (m *memoryLinkRepository) Store(ctx context.Context, link *domain.AffiliateLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.links {
		if m.links[i].ID == link.ID {
			return fmt.Errorf("affiliate link %s: %w", link.ID, domain.ErrConflict)
		}
	}

	m.links = append(m.links, *link)
	return nil
}

func (m *memoryLinkRepository) Update(ctx context.Context, link *domain.AffiliateLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.links {
		if m.links[i].ID == link.ID {
			m.links[i] = *link
			return nil
		}
	}

	return fmt.Errorf("affiliate link %s: %w", link.ID, domain.ErrNoAffected)
}

func (m *memoryLinkRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.links {
		if m.links[i].ID == id {
			m.links = append(m.links[:i], m.links[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("affiliate link %s: %w", id, domain.ErrNoAffected)
}
