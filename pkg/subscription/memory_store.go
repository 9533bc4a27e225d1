package subscription

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memStore is an in-memory Store for tests and local development.
type memStore struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]*Subscription
}

// NewMemStore returns an empty in-memory Store.
func NewMemStore() Store {
	return &memStore{subs: make(map[uuid.UUID]*Subscription)}
}

func (m *memStore) Get(ctx context.Context, id uuid.UUID) (*Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sub, ok := m.subs[id]
	if !ok {
		return nil, ErrSubscriptionNotFound
	}
	return sub.Clone(), nil
}

func (m *memStore) GetUserActiveSubscription(ctx context.Context, userID uuid.UUID) (*Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	candidates := make([]*Subscription, 0, 1)
	for _, sub := range m.subs {
		if sub.UserID == userID {
			candidates = append(candidates, sub)
		}
	}

	winner := LatestActive(candidates)
	if winner == nil {
		return nil, ErrSubscriptionNotFound
	}
	return winner.Clone(), nil
}

func (m *memStore) Save(ctx context.Context, sub *Subscription) error {
	if sub == nil || sub.ID == uuid.Nil || sub.UserID == uuid.Nil {
		return ErrInvalidSubscription
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored := sub.Clone()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	stored.UpdatedAt = time.Now().UTC()
	m.subs[sub.ID] = stored
	return nil
}
