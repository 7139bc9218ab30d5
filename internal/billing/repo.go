package billing

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Subscription mirrors the billing provider's subscription object.
// The provider's webhooks are the authoritative writer; the mirror is
// only ever eventually aligned.
type Subscription struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"user_id"`
	StripeCustomerID     string    `json:"stripe_customer_id"`
	StripeSubscriptionID string    `json:"stripe_subscription_id"`
	Status               string    `json:"status"`
	PriceID              string    `json:"price_id"`
	CurrentPeriodEnd     time.Time `json:"current_period_end"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// PremiumAt reports whether the mirror row grants premium at the given
// instant: the status must be good AND the paid period must not have
// lapsed. A stale "active" row past its period end is not premium.
func (s *Subscription) PremiumAt(now time.Time) bool {
	if s == nil {
		return false
	}
	if s.Status != "active" && s.Status != "trialing" {
		return false
	}
	return s.CurrentPeriodEnd.After(now)
}

// Repo handles PostgreSQL operations for the subscriptions mirror.
type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Upsert creates or updates a mirror row keyed by the provider's
// subscription id, which makes webhook replays naturally idempotent.
// An empty UserID leaves any previously recorded owner in place.
func (r *Repo) Upsert(ctx context.Context, sub *Subscription) error {
	if sub.StripeSubscriptionID == "" {
		return fmt.Errorf("stripe_subscription_id required")
	}
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}

	query := `
		INSERT INTO subscriptions (
			id, user_id, stripe_customer_id, stripe_subscription_id,
			status, price_id, current_period_end
		)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7)
		ON CONFLICT (stripe_subscription_id) DO UPDATE SET
			user_id = COALESCE(EXCLUDED.user_id, subscriptions.user_id),
			stripe_customer_id = EXCLUDED.stripe_customer_id,
			status = EXCLUDED.status,
			price_id = EXCLUDED.price_id,
			current_period_end = EXCLUDED.current_period_end,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		sub.ID, sub.UserID, sub.StripeCustomerID, sub.StripeSubscriptionID,
		sub.Status, sub.PriceID, sub.CurrentPeriodEnd,
	).Scan(&sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert subscription %s: %w", sub.StripeSubscriptionID, err)
	}

	return nil
}

// GetByUserID returns the user's most recently updated mirror row,
// or nil when the user never subscribed.
func (r *Repo) GetByUserID(ctx context.Context, userID string) (*Subscription, error) {
	query := `
		SELECT id, user_id::text, stripe_customer_id, stripe_subscription_id,
		       status, price_id, current_period_end, created_at, updated_at
		FROM subscriptions
		WHERE user_id = $1::uuid
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var sub Subscription
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&sub.ID, &sub.UserID, &sub.StripeCustomerID, &sub.StripeSubscriptionID,
		&sub.Status, &sub.PriceID, &sub.CurrentPeriodEnd, &sub.CreatedAt, &sub.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get subscription for user %s: %w", userID, err)
	}

	return &sub, nil
}

// IsPremium is the feature gate: database row only, the optimistic
// client-side cookie is never consulted here.
func (r *Repo) IsPremium(ctx context.Context, userID string) (bool, error) {
	sub, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	return sub.PremiumAt(time.Now()), nil
}

// ListForReconcile returns provider subscription ids of all non-terminal
// mirror rows, for the nightly alignment job.
func (r *Repo) ListForReconcile(ctx context.Context) ([]string, error) {
	query := `
		SELECT stripe_subscription_id
		FROM subscriptions
		WHERE status NOT IN ('canceled')
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions for reconcile: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0, 32)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
