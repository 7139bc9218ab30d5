package billing

import (
	"context"
	"log"
	"time"
)

// Reconciler realigns the mirror with the provider. Webhooks can be
// dropped; the nightly pass catches whatever they missed.
type Reconciler struct {
	repo   *Repo
	client *Client
}

func NewReconciler(repo *Repo, client *Client) *Reconciler {
	return &Reconciler{repo: repo, client: client}
}

func (r *Reconciler) Run(ctx context.Context) {
	start := time.Now()
	log.Println("[reconcile] subscription reconciliation started")

	ids, err := r.repo.ListForReconcile(ctx)
	if err != nil {
		log.Printf("[reconcile] list subscriptions: %v", err)
		return
	}

	synced, failed := 0, 0
	for _, id := range ids {
		full, err := r.client.GetSubscription(id)
		if err != nil {
			log.Printf("[reconcile] fetch %s: %v", id, err)
			failed++
			continue
		}

		sub := &Subscription{
			UserID:               full.Metadata["user_id"],
			StripeSubscriptionID: full.ID,
		}
		applyStripeSubscription(sub, full)

		if err := r.repo.Upsert(ctx, sub); err != nil {
			log.Printf("[reconcile] upsert %s: %v", id, err)
			failed++
			continue
		}
		synced++
	}

	log.Printf("[reconcile] done: synced=%d failed=%d took=%s", synced, failed, time.Since(start))
}
