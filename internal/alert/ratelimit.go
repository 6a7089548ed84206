package alert

import (
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter guards alert delivery with three layered checks, evaluated
// in this order: a global cooldown since the last alert of any kind, an
// hourly cap (backed by golang.org/x/time/rate as a token bucket), and a
// per-condition cooldown. All three must pass for Allow to succeed.
type RateLimiter struct {
	globalCooldown      time.Duration
	perConditionCooldown time.Duration

	lastAlertAt        time.Time
	haveLastAlertAt    bool
	perConditionLastAt map[string]time.Time

	hourly *rate.Limiter
}

// NewRateLimiter builds a limiter with the given global cooldown,
// per-condition cooldown, and maximum alerts per rolling hour.
func NewRateLimiter(globalCooldown, perConditionCooldown time.Duration, maxPerHour int) *RateLimiter {
	// Burst equals maxPerHour so the first hour's worth of alerts isn't
	// throttled below the configured cap; refill rate spreads that cap
	// evenly across the hour.
	limit := rate.Limit(float64(maxPerHour) / time.Hour.Seconds())
	return &RateLimiter{
		globalCooldown:       globalCooldown,
		perConditionCooldown: perConditionCooldown,
		perConditionLastAt:   map[string]time.Time{},
		hourly:               rate.NewLimiter(limit, maxPerHour),
	}
}

// Allow reports whether an alert for condition may fire at now. Allow is
// a pure check: it consumes no budget, so calling it for every condition
// on every line (most of which never fire) does not drain the hourly
// cap. Only RecordAlert spends from it.
func (r *RateLimiter) Allow(condition string, now time.Time) bool {
	if r.haveLastAlertAt && now.Sub(r.lastAlertAt) < r.globalCooldown {
		return false
	}
	if r.hourly.TokensAt(now) < 1 {
		return false
	}
	if last, ok := r.perConditionLastAt[condition]; ok && now.Sub(last) < r.perConditionCooldown {
		return false
	}
	return true
}

// RecordAlert updates the limiter's state after an alert for condition
// fires at now: it spends the hourly token and resets both cooldowns.
// Call only after Allow returned true for the same (condition, now);
// RecordAlert does not re-check the guards.
func (r *RateLimiter) RecordAlert(condition string, now time.Time) {
	r.hourly.AllowN(now, 1)
	r.lastAlertAt = now
	r.haveLastAlertAt = true
	r.perConditionLastAt[condition] = now
}
