package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubscription_PremiumAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("active within period", func(t *testing.T) {
		s := &Subscription{Status: "active", CurrentPeriodEnd: now.Add(24 * time.Hour)}
		assert.True(t, s.PremiumAt(now))
	})

	t.Run("trialing within period", func(t *testing.T) {
		s := &Subscription{Status: "trialing", CurrentPeriodEnd: now.Add(time.Hour)}
		assert.True(t, s.PremiumAt(now))
	})

	t.Run("active but period lapsed is not premium", func(t *testing.T) {
		s := &Subscription{Status: "active", CurrentPeriodEnd: now.Add(-time.Minute)}
		assert.False(t, s.PremiumAt(now))
	})

	t.Run("canceled is not premium even inside period", func(t *testing.T) {
		s := &Subscription{Status: "canceled", CurrentPeriodEnd: now.Add(24 * time.Hour)}
		assert.False(t, s.PremiumAt(now))
	})

	t.Run("past_due is not premium", func(t *testing.T) {
		s := &Subscription{Status: "past_due", CurrentPeriodEnd: now.Add(24 * time.Hour)}
		assert.False(t, s.PremiumAt(now))
	})

	t.Run("nil subscription is not premium", func(t *testing.T) {
		var s *Subscription
		assert.False(t, s.PremiumAt(now))
	})
}
