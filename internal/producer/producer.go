// Package producer implements the timed production state machine shared
// by every game. Resolution is a pure function of the persisted producer
// and the current time; there are no background timers.
package producer

import (
	"math"
	"time"

	"github.com/osse101/IdleYard_Go/internal/clock"
	"github.com/osse101/IdleYard_Go/internal/domain"
	"github.com/osse101/IdleYard_Go/internal/rules"
)

// Resolved is the derived view of a producer at a point in time
type Resolved struct {
	State            domain.ProducerState
	SecondsRemaining int64
	// Collectible is floor(rate * elapsedCappedToCycle) adjusted for
	// feed bonus; meaningful for cyclic producers only
	Collectible int64
}

// Resolve derives the current state of a producer. It never mutates its
// input and returns identical results for identical (producer, now)
// pairs. An elapsed time exactly equal to a phase duration counts as
// having completed that phase.
func Resolve(p *domain.Producer, rule rules.KindRule, now time.Time) Resolved {
	if rule.SingleMaturation() {
		return resolveMaturation(p, rule, now)
	}
	if rule.ProduceSeconds == 0 {
		// Continuous producer: always producing, yield is folded into
		// the pending pool by offline catch-up
		return Resolved{State: domain.ProducerProducing}
	}
	return resolveCyclic(p, rule, now)
}

func resolveMaturation(p *domain.Producer, rule rules.KindRule, now time.Time) Resolved {
	if p.State == domain.ProducerGrown {
		return Resolved{State: domain.ProducerGrown}
	}
	grow := time.Duration(rule.GrowSeconds) * time.Second
	if remaining := clock.Remaining(p.StateEnteredAt, now, grow); remaining > 0 {
		return Resolved{State: domain.ProducerGrowing, SecondsRemaining: remaining}
	}
	return Resolved{State: domain.ProducerGrown}
}

func resolveCyclic(p *domain.Producer, rule rules.KindRule, now time.Time) Resolved {
	produce := time.Duration(rule.ProduceSeconds) * time.Second
	rest := time.Duration(rule.RestSeconds) * time.Second

	ref := p.StateEnteredAt
	state := p.State

	// A producer persisted as resting may have finished resting and
	// produced a full cycle since; chain the phases forward
	if state == domain.ProducerResting {
		if remaining := clock.Remaining(ref, now, rest); remaining > 0 {
			return Resolved{State: domain.ProducerResting, SecondsRemaining: remaining}
		}
		ref = ref.Add(rest)
		state = domain.ProducerProducing
	}

	if state == domain.ProducerReady {
		return Resolved{
			State:       domain.ProducerReady,
			Collectible: CycleYield(p, rule, rule.ProduceSeconds),
		}
	}

	elapsed := clock.Elapsed(ref, now, produce)
	if remaining := clock.Remaining(ref, now, produce); remaining > 0 {
		return Resolved{
			State:            domain.ProducerProducing,
			SecondsRemaining: remaining,
			Collectible:      CycleYield(p, rule, elapsed),
		}
	}

	return Resolved{
		State:       domain.ProducerReady,
		Collectible: CycleYield(p, rule, rule.ProduceSeconds),
	}
}

// CycleYield computes the yield of the current cycle after elapsed
// seconds of production: floor(rate * elapsed), scaled by the feed
// bonus. Yields always floor, never round.
func CycleYield(p *domain.Producer, rule rules.KindRule, elapsedSeconds int64) int64 {
	if elapsedSeconds <= 0 {
		return 0
	}
	raw := rule.EffectiveRate(p.Level, p.Workers) * float64(elapsedSeconds)
	if rule.FeedYieldBonus > 0 && p.Fed > 0 {
		raw *= 1 + rule.FeedYieldBonus*float64(p.Fed)
	}
	return int64(math.Floor(raw))
}

// Collect applies the collect transition: the producer restarts its
// cycle (through resting when configured) and the feed bonus resets.
// The caller is responsible for having checked that the resolved state
// was ready.
func Collect(p *domain.Producer, rule rules.KindRule, now time.Time) {
	if rule.RestSeconds > 0 {
		p.State = domain.ProducerResting
	} else {
		p.State = domain.ProducerProducing
	}
	p.StateEnteredAt = now
	p.Fed = 0
}

// New creates a freshly purchased producer of the given kind
func New(kind string, rule rules.KindRule, now time.Time) *domain.Producer {
	state := domain.ProducerProducing
	if rule.SingleMaturation() {
		state = domain.ProducerGrowing
	}
	return &domain.Producer{
		Kind:           kind,
		Level:          1,
		State:          state,
		StateEnteredAt: now,
	}
}

// Normalize rewrites the persisted state to the resolved one so stored
// records do not drift from what a read would derive. Phase entry
// timestamps move to the moment the phase actually began, keeping later
// resolutions identical.
func Normalize(p *domain.Producer, rule rules.KindRule, now time.Time) {
	if rule.SingleMaturation() {
		if p.State == domain.ProducerGrowing {
			if clock.Remaining(p.StateEnteredAt, now, time.Duration(rule.GrowSeconds)*time.Second) == 0 {
				p.State = domain.ProducerGrown
				p.StateEnteredAt = p.StateEnteredAt.Add(time.Duration(rule.GrowSeconds) * time.Second)
			}
		}
		return
	}
	if rule.ProduceSeconds == 0 {
		return
	}

	if p.State == domain.ProducerResting {
		rest := time.Duration(rule.RestSeconds) * time.Second
		if clock.Remaining(p.StateEnteredAt, now, rest) > 0 {
			return
		}
		p.State = domain.ProducerProducing
		p.StateEnteredAt = p.StateEnteredAt.Add(rest)
	}

	if p.State == domain.ProducerProducing {
		produce := time.Duration(rule.ProduceSeconds) * time.Second
		if clock.Remaining(p.StateEnteredAt, now, produce) == 0 {
			p.State = domain.ProducerReady
			p.StateEnteredAt = p.StateEnteredAt.Add(produce)
		}
	}
}
