package billing

import (
	"fmt"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/subscription"
)

// Client wraps the Stripe SDK. The secret key is checked on first use
// so a deployment without billing still boots.
type Client struct {
	secretKey string
	priceID   string
	baseURL   string
}

func NewClient(secretKey, priceID, baseURL string) *Client {
	if secretKey != "" {
		stripe.Key = secretKey
	}
	return &Client{secretKey: secretKey, priceID: priceID, baseURL: baseURL}
}

func (c *Client) ready() error {
	if c.secretKey == "" {
		return fmt.Errorf("STRIPE_SECRET_KEY is not set")
	}
	if c.priceID == "" {
		return fmt.Errorf("STRIPE_PRICE_ID is not set")
	}
	return nil
}

// CreateCheckoutSession starts a subscription checkout for the user and
// returns the hosted payment page URL. The user's db id travels as
// client_reference_id and as subscription metadata so webhooks can map
// the provider objects back to the account.
func (c *Client) CreateCheckoutSession(userDBID, email string) (string, error) {
	if err := c.ready(); err != nil {
		return "", err
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(c.priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(c.baseURL + "/dashboard?checkout=success"),
		CancelURL:         stripe.String(c.baseURL + "/pricing?checkout=cancelled"),
		ClientReferenceID: stripe.String(userDBID),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{"user_id": userDBID},
		},
	}
	if email != "" {
		params.CustomerEmail = stripe.String(email)
	}

	s, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}

	return s.URL, nil
}

// GetSubscription fetches the provider's current view of a subscription.
func (c *Client) GetSubscription(subscriptionID string) (*stripe.Subscription, error) {
	if c.secretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is not set")
	}

	sub, err := subscription.Get(subscriptionID, nil)
	if err != nil {
		return nil, fmt.Errorf("get subscription %s: %w", subscriptionID, err)
	}
	return sub, nil
}
