package upgrade

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemPromptStore is an in-memory PromptStore for tests and local
// development.
type MemPromptStore struct {
	mu      sync.RWMutex
	prompts []*Prompt
}

// NewMemPromptStore returns an empty in-memory PromptStore.
func NewMemPromptStore() *MemPromptStore {
	return &MemPromptStore{}
}

func (m *MemPromptStore) Save(ctx context.Context, prompt *Prompt) error {
	if prompt.ID == uuid.Nil {
		prompt.ID = uuid.New()
	}
	if prompt.ShownAt.IsZero() {
		prompt.ShownAt = time.Now().UTC()
	}

	stored := *prompt
	m.mu.Lock()
	m.prompts = append(m.prompts, &stored)
	m.mu.Unlock()
	return nil
}

// ByUser returns stored prompts for a user in insertion order.
func (m *MemPromptStore) ByUser(userID uuid.UUID) []Prompt {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Prompt, 0, len(m.prompts))
	for _, p := range m.prompts {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out
}
