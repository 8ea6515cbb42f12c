package queuectl

import (
	"math"
	"time"
)

// BackoffConfig controls the retry policy applied after a failed
// attempt.
//
// MaxRetries bounds the number of attempts a job may consume before it
// transitions to dead. Base is the exponent base of the backoff
// schedule: the delay after the k-th consumed attempt is Base^k
// seconds. The schedule is exact; no jitter is applied.
type BackoffConfig struct {
	MaxRetries int
	Base       float64
}

// Exhausted reports whether attempts has reached the retry bound.
// attempts is the post-increment value, i.e. attempts already consumed.
func (bc BackoffConfig) Exhausted(attempts int) bool {
	return attempts >= bc.MaxRetries
}

// Delay returns the backoff delay scheduled after the given number of
// consumed attempts.
func (bc BackoffConfig) Delay(attempts int) time.Duration {
	return time.Duration(math.Pow(bc.Base, float64(attempts)) * float64(time.Second))
}

// NextRetryAt returns the instant at which a job that has consumed the
// given number of attempts becomes leasable again.
func (bc BackoffConfig) NextRetryAt(now time.Time, attempts int) time.Time {
	return now.Add(bc.Delay(attempts))
}
