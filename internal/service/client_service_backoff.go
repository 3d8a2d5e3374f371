package service

import (
	"github.com/MKhiriev/go-study-sync/internal/config"
	"github.com/sethvargo/go-retry"
)

// BackoffFactory produces a fresh backoff sequence for one sync item. The
// drain replays the sequence RetryCount steps to compute the item's next
// eligibility time, so the delay grows with every failed attempt.
//
// A nil factory keeps retries immediate: failed items become eligible again
// on the very next drain.
type BackoffFactory func() retry.Backoff

// NewBackoffFactory builds the retry backoff from sync configuration.
// BackoffBase <= 0 disables the delay entirely and returns nil; a positive
// BackoffCap bounds the exponential growth.
func NewBackoffFactory(cfg config.ClientSync) BackoffFactory {
	if cfg.BackoffBase <= 0 {
		return nil
	}

	return func() retry.Backoff {
		b := retry.NewExponential(cfg.BackoffBase)
		if cfg.BackoffCap > 0 {
			b = retry.WithCappedDuration(cfg.BackoffCap, b)
		}
		return b
	}
}
