package bootstrap

import (
	"database/sql"
	"time"

	httpapi "github.com/oreltrt123/displan-sub003/internal/api/http"
	"github.com/oreltrt123/displan-sub003/internal/api/http/middleware"
	"github.com/oreltrt123/displan-sub003/internal/assets"
	"github.com/oreltrt123/displan-sub003/internal/assistant"
	"github.com/oreltrt123/displan-sub003/internal/auth"
	"github.com/oreltrt123/displan-sub003/internal/billing"
	"github.com/oreltrt123/displan-sub003/internal/elements"
	"github.com/oreltrt123/displan-sub003/internal/pages"
	"github.com/oreltrt123/displan-sub003/internal/projects"
	"github.com/oreltrt123/displan-sub003/internal/publish"
	"github.com/oreltrt123/displan-sub003/internal/users"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type RouterDeps struct {
	ServiceName   string
	Version       string
	JWTSecret     string
	PublishDomain string
	AppBaseURL    string
	AllowOrigins  []string

	DB        *pgxpool.Pool
	BillingDB *sql.DB
	Redis     *redis.Client
	Storage   *assets.Storage

	StripeSecretKey     string
	StripePriceID       string
	StripeWebhookSecret string

	AssistantBaseURL string
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(dep.AllowOrigins) > 0 {
		corsCfg.AllowOrigins = dep.AllowOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Request-Id")
	corsCfg.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsCfg))
	r.Use(middleware.RequestID())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	userRepo := users.NewRepo(dep.DB)
	projectRepo := projects.NewRepo(dep.DB)
	pageRepo := pages.NewRepo(dep.DB)
	elementRepo := elements.NewRepo(dep.DB)
	assetRepo := assets.NewRepo(dep.DB)
	publishRepo := publish.NewRepo(dep.DB)
	billingRepo := billing.NewRepo(dep.BillingDB)

	publishCache := publish.NewCache(dep.Redis)
	stripeClient := billing.NewClient(dep.StripeSecretKey, dep.StripePriceID, dep.AppBaseURL)
	publishHandler := publish.NewHandler(publishRepo, projectRepo, publishCache, dep.PublishDomain)

	api := r.Group("/api")

	// Public surface: published sites and the signed Stripe webhook.
	// The webhook authenticates by signature, not by session.
	publishHandler.RegisterPublic(api)
	webhookHandler := billing.NewWebhookHandler(dep.StripeWebhookSecret, billingRepo, stripeClient)
	api.POST("/webhooks/stripe", webhookHandler.Handle)

	authed := api.Group("")
	authed.Use(auth.WithUser(dep.JWTSecret, userRepo))

	projectsGroup := authed.Group("/projects")
	projects.Register(projectsGroup, projectRepo)
	pages.RegisterProjectsSubroutes(projectsGroup, pageRepo)

	elements.Register(authed.Group("/canvas/elements"), elementRepo, pageRepo)
	assets.Register(authed.Group("/assets"), assetRepo, dep.Storage)
	publishHandler.Register(authed)
	billing.Register(authed.Group("/billing"), billingRepo, stripeClient)

	assistantClient := assistant.NewClient(dep.AssistantBaseURL)
	assistantLimiter := assistant.NewUserLimiter(20, 5) // 20 req/min, burst of 5
	assistant.Register(authed.Group("/assistant"), assistantClient, billingRepo, elementRepo, assistantLimiter)

	return r
}
