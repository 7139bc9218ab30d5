package billing

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

const maxWebhookBody = 64 << 10 // Stripe recommends a 64KB cap on webhook payloads

// WebhookHandler verifies and applies Stripe events. Upserts are keyed
// by the provider subscription id, so replayed events are harmless.
type WebhookHandler struct {
	secret string
	repo   *Repo
	client *Client
}

func NewWebhookHandler(secret string, repo *Repo, client *Client) *WebhookHandler {
	return &WebhookHandler{secret: secret, repo: repo, client: client}
}

// Handle is mounted without auth middleware: trust comes from the
// signature, not a session.
func (h *WebhookHandler) Handle(c *gin.Context) {
	if h.secret == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "STRIPE_WEBHOOK_SECRET is not set"})
		return
	}

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "read body: " + err.Error()})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), h.secret)
	if err != nil {
		// Nothing below runs on a bad signature; the table stays untouched.
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "signature verification failed"})
		return
	}

	ctx := c.Request.Context()

	switch string(event.Type) {
	case "checkout.session.completed":
		err = h.onCheckoutCompleted(ctx, event.Data.Raw)
	case "customer.subscription.updated":
		err = h.onSubscriptionEvent(ctx, event.Data.Raw, "")
	case "customer.subscription.deleted":
		err = h.onSubscriptionEvent(ctx, event.Data.Raw, "canceled")
	default:
		log.Printf("[stripe] ignoring event %s (%s)", event.ID, event.Type)
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *WebhookHandler) onCheckoutCompleted(ctx context.Context, raw json.RawMessage) error {
	var s stripe.CheckoutSession
	if err := json.Unmarshal(raw, &s); err != nil {
		return err
	}
	if s.Subscription == nil || s.Subscription.ID == "" {
		log.Printf("[stripe] checkout session %s has no subscription, skipping", s.ID)
		return nil
	}

	sub := &Subscription{
		UserID:               s.ClientReferenceID,
		StripeSubscriptionID: s.Subscription.ID,
		Status:               "active",
	}
	if s.Customer != nil {
		sub.StripeCustomerID = s.Customer.ID
	}

	// The session itself carries no period end; ask the provider when a
	// key is configured, otherwise record the row and let the
	// subscription.updated event fill in the rest.
	if h.client != nil {
		if full, err := h.client.GetSubscription(s.Subscription.ID); err != nil {
			log.Printf("[stripe] fetch subscription %s: %v", s.Subscription.ID, err)
		} else {
			applyStripeSubscription(sub, full)
		}
	}

	return h.repo.Upsert(ctx, sub)
}

func (h *WebhookHandler) onSubscriptionEvent(ctx context.Context, raw json.RawMessage, statusOverride string) error {
	var s stripe.Subscription
	if err := json.Unmarshal(raw, &s); err != nil {
		return err
	}

	sub := &Subscription{
		UserID:               s.Metadata["user_id"],
		StripeSubscriptionID: s.ID,
	}
	applyStripeSubscription(sub, &s)
	if statusOverride != "" {
		sub.Status = statusOverride
	}

	return h.repo.Upsert(ctx, sub)
}

func applyStripeSubscription(dst *Subscription, src *stripe.Subscription) {
	dst.Status = string(src.Status)
	dst.CurrentPeriodEnd = time.Unix(src.CurrentPeriodEnd, 0).UTC()
	if src.Customer != nil {
		dst.StripeCustomerID = src.Customer.ID
	}
	if src.Items != nil && len(src.Items.Data) > 0 && src.Items.Data[0].Price != nil {
		dst.PriceID = src.Items.Data[0].Price.ID
	}
}
