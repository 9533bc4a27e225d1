package subscription

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lv-asc/vangarments/pkg/pg"
)

// PGStore is a pgx-backed Store over the subscriptions table.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore returns a Store backed by the given connection pool.
// Panics on a nil pool to fail fast during wiring.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	if pool == nil {
		panic("subscription: pgxpool is required")
	}
	return &PGStore{pool: pool}
}

const subscriptionColumns = `id, user_id, plan_type, overrides, status, billing_cycle, amount, currency, created_at, updated_at, cancelled_at`

func (s *PGStore) Get(ctx context.Context, id uuid.UUID) (*Subscription, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = $1`, id)
	return scanSubscription(row)
}

func (s *PGStore) GetUserActiveSubscription(ctx context.Context, userID uuid.UUID) (*Subscription, error) {
	// Most recently updated active row wins when duplicates exist.
	row := s.pool.QueryRow(ctx,
		`SELECT `+subscriptionColumns+`
		 FROM subscriptions
		 WHERE user_id = $1 AND status = $2
		 ORDER BY updated_at DESC
		 LIMIT 1`, userID, StatusActive)
	return scanSubscription(row)
}

func (s *PGStore) Save(ctx context.Context, sub *Subscription) error {
	if sub == nil || sub.ID == uuid.Nil || sub.UserID == uuid.Nil {
		return ErrInvalidSubscription
	}

	overrides, err := json.Marshal(sub.Overrides)
	if err != nil {
		return errors.Join(ErrFailedToSaveSubscription, err)
	}

	now := time.Now().UTC()
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = now
	}
	sub.UpdatedAt = now

	_, err = s.pool.Exec(ctx,
		`INSERT INTO subscriptions (`+subscriptionColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (id) DO UPDATE SET
			plan_type = EXCLUDED.plan_type,
			overrides = EXCLUDED.overrides,
			status = EXCLUDED.status,
			billing_cycle = EXCLUDED.billing_cycle,
			amount = EXCLUDED.amount,
			currency = EXCLUDED.currency,
			updated_at = EXCLUDED.updated_at,
			cancelled_at = EXCLUDED.cancelled_at`,
		sub.ID, sub.UserID, sub.Type, overrides, sub.Status, sub.BillingCycle,
		sub.Price.Amount, sub.Price.Currency, sub.CreatedAt, sub.UpdatedAt, sub.CancelledAt)
	if err != nil {
		return errors.Join(ErrFailedToSaveSubscription, err)
	}
	return nil
}

func scanSubscription(row pgx.Row) (*Subscription, error) {
	var (
		sub       Subscription
		overrides []byte
	)
	err := row.Scan(&sub.ID, &sub.UserID, &sub.Type, &overrides, &sub.Status,
		&sub.BillingCycle, &sub.Price.Amount, &sub.Price.Currency,
		&sub.CreatedAt, &sub.UpdatedAt, &sub.CancelledAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, errors.Join(ErrFailedToQuerySubscription, err)
	}

	if len(overrides) > 0 {
		if err := json.Unmarshal(overrides, &sub.Overrides); err != nil {
			return nil, errors.Join(ErrFailedToQuerySubscription, err)
		}
	}
	return &sub, nil
}
