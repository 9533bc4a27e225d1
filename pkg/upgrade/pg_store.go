package upgrade

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGPromptStore persists prompts to the upgrade_prompts table.
type PGPromptStore struct {
	pool *pgxpool.Pool
}

// NewPGPromptStore returns a PromptStore backed by the given pool.
// Panics on a nil pool to fail fast during wiring.
func NewPGPromptStore(pool *pgxpool.Pool) *PGPromptStore {
	if pool == nil {
		panic("upgrade: pgxpool is required")
	}
	return &PGPromptStore{pool: pool}
}

func (s *PGPromptStore) Save(ctx context.Context, prompt *Prompt) error {
	if prompt.ID == uuid.Nil {
		prompt.ID = uuid.New()
	}
	if prompt.ShownAt.IsZero() {
		prompt.ShownAt = time.Now().UTC()
	}

	content, err := json.Marshal(prompt.Content)
	if err != nil {
		return errors.Join(ErrFailedToSavePrompt, err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO upgrade_prompts (id, user_id, prompt_type, feature, content, shown_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		prompt.ID, prompt.UserID, prompt.Type, prompt.Feature, content, prompt.ShownAt)
	if err != nil {
		return errors.Join(ErrFailedToSavePrompt, err)
	}
	return nil
}

// CountRecent returns how many prompts of a type were shown to a user
// since the given time. Used by callers to throttle prompt frequency.
func (s *PGPromptStore) CountRecent(ctx context.Context, userID uuid.UUID, pt PromptType, since time.Time) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM upgrade_prompts
		 WHERE user_id = $1 AND prompt_type = $2 AND shown_at >= $3`,
		userID, pt, since).Scan(&n)
	if err != nil {
		return 0, errors.Join(ErrFailedToQueryPrompts, err)
	}
	return n, nil
}
