package billing

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_test_secret"

// signPayload builds a Stripe-Signature header the way Stripe's CLI does.
func signPayload(payload []byte, secret string, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", at.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func postWebhook(t *testing.T, h *WebhookHandler, payload []byte, signature string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe", bytes.NewReader(payload))
	if signature != "" {
		c.Request.Header.Set("Stripe-Signature", signature)
	}

	h.Handle(c)
	return w
}

func TestWebhookHandler_InvalidSignature(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	h := NewWebhookHandler(testWebhookSecret, NewRepo(db), nil)

	payload := []byte(`{"id":"evt_1","type":"customer.subscription.updated","data":{"object":{"id":"sub_123"}}}`)

	t.Run("missing signature is a 400", func(t *testing.T) {
		w := postWebhook(t, h, payload, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "signature verification failed")
	})

	t.Run("garbage signature is a 400", func(t *testing.T) {
		w := postWebhook(t, h, payload, "t=1,v1=deadbeef")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("signature over a different body is a 400", func(t *testing.T) {
		sig := signPayload([]byte(`{"other":"body"}`), testWebhookSecret, time.Now())
		w := postWebhook(t, h, payload, sig)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	// No expectations were registered: any write would fail the test.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhookHandler_SubscriptionUpdated(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	h := NewWebhookHandler(testWebhookSecret, NewRepo(db), nil)

	userID := "3f6f1c2a-7a0e-4a3c-9d55-0b9f4a8b1c22"
	periodEnd := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	payload := []byte(fmt.Sprintf(`{
		"id": "evt_2",
		"api_version": %q,
		"type": "customer.subscription.updated",
		"data": {"object": {
			"id": "sub_123",
			"status": "active",
			"current_period_end": %d,
			"metadata": {"user_id": %q},
			"customer": {"id": "cus_9"},
			"items": {"data": [{"price": {"id": "price_pro"}}]}
		}}
	}`, stripe.APIVersion, periodEnd.Unix(), userID))

	mock.ExpectQuery(`INSERT INTO subscriptions`).
		WithArgs(
			sqlmock.AnyArg(), // id (UUID)
			userID,
			"cus_9",
			"sub_123",
			"active",
			"price_pro",
			sqlmock.AnyArg(), // current_period_end
		).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
			AddRow(time.Now(), time.Now()))

	sig := signPayload(payload, testWebhookSecret, time.Now())
	w := postWebhook(t, h, payload, sig)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhookHandler_SubscriptionDeleted(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	h := NewWebhookHandler(testWebhookSecret, NewRepo(db), nil)

	payload := []byte(fmt.Sprintf(`{
		"id": "evt_3",
		"api_version": %q,
		"type": "customer.subscription.deleted",
		"data": {"object": {
			"id": "sub_123",
			"status": "active",
			"current_period_end": 0,
			"metadata": {}
		}}
	}`, stripe.APIVersion))

	// The status override wins even when the payload still says active.
	mock.ExpectQuery(`INSERT INTO subscriptions`).
		WithArgs(
			sqlmock.AnyArg(),
			"", // no user_id in metadata; upsert keeps the recorded owner
			sqlmock.AnyArg(),
			"sub_123",
			"canceled",
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
			AddRow(time.Now(), time.Now()))

	sig := signPayload(payload, testWebhookSecret, time.Now())
	w := postWebhook(t, h, payload, sig)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhookHandler_NoSecretConfigured(t *testing.T) {
	h := NewWebhookHandler("", nil, nil)
	w := postWebhook(t, h, []byte(`{}`), "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
