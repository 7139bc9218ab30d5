package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/oreltrt123/displan-sub003/config"
	"github.com/oreltrt123/displan-sub003/internal/billing"

	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

// The worker re-syncs subscription state from Stripe so a missed
// webhook cannot leave a user premium (or locked out) forever.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	repo := billing.NewRepo(db)
	client := billing.NewClient(cfg.Stripe.SecretKey, cfg.Stripe.PriceID, cfg.App.BaseURL)
	reconciler := billing.NewReconciler(repo, client)

	c := cron.New(cron.WithSeconds())

	// Nightly at 12:00 AM
	_, err = c.AddFunc("0 0 0 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		reconciler.Run(ctx)
	})
	if err != nil {
		log.Fatalf("failed to create cron job: %v", err)
	}

	log.Println("reconcile scheduler started (running nightly at 12:00AM)")
	c.Start()

	select {}
}
