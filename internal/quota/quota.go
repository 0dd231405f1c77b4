// Package quota implements session-scoped consumption limits. A quota
// allows up to limit units, then rests for a cooldown; the reset is
// derived lazily from the cooldown timestamp, the same way producers
// and vehicles resolve.
package quota

import (
	"time"

	"github.com/osse101/IdleYard_Go/internal/clock"
	"github.com/osse101/IdleYard_Go/internal/domain"
	"github.com/osse101/IdleYard_Go/internal/rules"
)

// Resolved is the derived view of a quota at a point in time
type Resolved struct {
	Used              int64
	Limit             int64
	Remaining         int64
	CooldownRemaining int64
}

// Resolve derives the quota's current standing, applying any pending
// cooldown-to-active transition without mutating the input
func Resolve(q *domain.Quota, rule *rules.QuotaRule, now time.Time) Resolved {
	cooldown := time.Duration(rule.CooldownSeconds) * time.Second

	if !q.CooldownStartedAt.IsZero() {
		if remaining := clock.Remaining(q.CooldownStartedAt, now, cooldown); remaining > 0 {
			return Resolved{
				Used:              q.Used,
				Limit:             rule.Limit,
				Remaining:         0,
				CooldownRemaining: remaining,
			}
		}
		// Cooldown elapsed: quota is back to full
		return Resolved{Used: 0, Limit: rule.Limit, Remaining: rule.Limit}
	}

	remaining := rule.Limit - q.Used
	if remaining < 0 {
		remaining = 0
	}
	return Resolved{Used: q.Used, Limit: rule.Limit, Remaining: remaining}
}

// Normalize persists the lazily derived reset
func Normalize(q *domain.Quota, rule *rules.QuotaRule, now time.Time) {
	if q.CooldownStartedAt.IsZero() {
		return
	}
	cooldown := time.Duration(rule.CooldownSeconds) * time.Second
	if clock.Remaining(q.CooldownStartedAt, now, cooldown) == 0 {
		q.Used = 0
		q.CooldownStartedAt = time.Time{}
	}
}

// Consume attempts to use amount units against the quota, bounded by
// the available supply. It returns the granted amount, which is
// min(amount, remaining, supply). When the quota is exhausted and the
// cooldown has not elapsed it returns domain.ErrQuotaExhausted and
// mutates nothing. Consuming the last unit starts the cooldown.
func Consume(q *domain.Quota, rule *rules.QuotaRule, amount, supply int64, now time.Time) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidQuantity
	}

	Normalize(q, rule, now)

	resolved := Resolve(q, rule, now)
	if resolved.Remaining == 0 {
		return 0, domain.ErrQuotaExhausted
	}

	granted := amount
	if granted > resolved.Remaining {
		granted = resolved.Remaining
	}
	if granted > supply {
		granted = supply
	}
	if granted <= 0 {
		return 0, domain.ErrInsufficientStock
	}

	q.Used += granted
	if q.Used >= rule.Limit {
		q.CooldownStartedAt = now
	}
	return granted, nil
}
