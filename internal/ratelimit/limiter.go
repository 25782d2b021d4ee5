// Package ratelimit throttles the beacon HTTP client's two endpoints so
// a caller retrying a TooEarly decrypt in a loop cannot hammer the
// network.
package ratelimit

import (
	"time"

	"golang.org/x/time/rate"
)

// Limiter holds one token bucket for chain-info lookups and one for
// round fetches. The two are kept separate because they have very
// different call patterns: chain info is fetched at most once per
// client lifetime, while a round fetch happens on every decrypt and is
// the one a tight retry loop actually hammers. rate.Limiter is already
// safe for concurrent use, so Limiter needs no locking of its own.
type Limiter struct {
	info   *rate.Limiter
	public *rate.Limiter
}

// New builds a Limiter whose two endpoint buckets each get the same
// rps/burst settings but draw on separate budgets. It returns nil if rps or burst is non-positive; a nil
// Limiter's Allow* methods always return true, so callers can pass it
// straight through without a nil check of their own.
func New(rps float64, burst int) *Limiter {
	if rps <= 0 || burst <= 0 {
		return nil
	}
	limit := rate.Limit(rps)
	return &Limiter{
		info:   rate.NewLimiter(limit, burst),
		public: rate.NewLimiter(limit, burst),
	}
}

// AllowChainInfo reports whether a GET /info call may proceed at now.
func (l *Limiter) AllowChainInfo(now time.Time) bool {
	if l == nil {
		return true
	}
	return l.info.AllowN(now, 1)
}

// AllowBeacon reports whether a GET /public/{round} call may proceed at
// now, regardless of which round is being fetched.
func (l *Limiter) AllowBeacon(now time.Time) bool {
	if l == nil {
		return true
	}
	return l.public.AllowN(now, 1)
}
