package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/oreltrt123/displan-sub003/config"
	"github.com/oreltrt123/displan-sub003/internal/assets"
	"github.com/oreltrt123/displan-sub003/internal/bootstrap"

	_ "github.com/lib/pq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{
		DSN:       cfg.Database.DSN,
		MaxConns:  cfg.Database.MaxConns,
		MinConns:  cfg.Database.MinConns,
		ConnectTO: 10 * time.Second,
		PingTO:    5 * time.Second,
	})
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	// Billing runs on database/sql against the same database.
	billingDB, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatalf("billing db: %v", err)
	}
	defer billingDB.Close()

	rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Printf("redis unavailable, serving without cache: %v", err)
		rdb = nil
	}

	storage, err := assets.NewStorage(ctx, assets.StorageOptions{
		Bucket:    cfg.Storage.Bucket,
		Endpoint:  cfg.Storage.Endpoint,
		Region:    cfg.Storage.Region,
		PublicURL: cfg.Storage.PublicURL,
	})
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:   "displan-api",
		Version:       cfg.App.Version,
		JWTSecret:     cfg.Auth.JWTSecret,
		PublishDomain: cfg.Publish.Domain,
		AppBaseURL:    cfg.App.BaseURL,
		AllowOrigins:  cfg.Server.AllowOrigins,

		DB:        pool,
		BillingDB: billingDB,
		Redis:     rdb,
		Storage:   storage,

		StripeSecretKey:     cfg.Stripe.SecretKey,
		StripePriceID:       cfg.Stripe.PriceID,
		StripeWebhookSecret: cfg.Stripe.WebhookSecret,

		AssistantBaseURL: cfg.Assistant.BaseURL,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
