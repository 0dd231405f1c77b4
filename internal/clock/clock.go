package clock

import "time"

// Now is an injectable time source. Services hold one so tests can pin
// the clock.
type Now func() time.Time

// Elapsed returns the whole seconds between ref and now, clamped to
// [0, window]. A zero window means no cap.
//
// Malformed references resolve to 0 elapsed rather than an error: a
// future or zero ref yields 0. This tolerates clock skew between the
// client and the authoritative store.
func Elapsed(ref, now time.Time, window time.Duration) int64 {
	if ref.IsZero() || !ref.Before(now) {
		return 0
	}
	secs := int64(now.Sub(ref).Seconds())
	if secs < 0 {
		return 0
	}
	if window > 0 {
		if max := int64(window.Seconds()); secs > max {
			return max
		}
	}
	return secs
}

// Remaining returns the whole seconds until ref+duration, or 0 if that
// moment has passed. The boundary counts as elapsed: at exactly
// ref+duration the phase is complete.
func Remaining(ref, now time.Time, duration time.Duration) int64 {
	deadline := ref.Add(duration)
	if !now.Before(deadline) {
		return 0
	}
	rem := int64(deadline.Sub(now).Seconds())
	if rem <= 0 {
		// Sub-second remainder still counts as one second on display
		return 1
	}
	return rem
}
