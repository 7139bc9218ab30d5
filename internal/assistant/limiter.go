package assistant

import (
	"sync"

	"golang.org/x/time/rate"
)

// UserLimiter hands out one token-bucket limiter per user so a single
// tenant hammering the assistant cannot starve everyone else's quota
// against the upstream model.
type UserLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func NewUserLimiter(perMinute float64, burst int) *UserLimiter {
	return &UserLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(perMinute / 60.0),
		burst:    burst,
	}
}

// Allow reports whether the user may make a request right now.
func (l *UserLimiter) Allow(userID string) bool {
	l.mu.Lock()
	lim, ok := l.limiters[userID]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[userID] = lim
	}
	l.mu.Unlock()

	return lim.Allow()
}
