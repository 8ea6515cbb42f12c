package queuectl_test

import (
	"testing"
	"time"

	"github.com/queuectl/queuectl"
)

func TestBackoffDelay(t *testing.T) {
	bc := queuectl.BackoffConfig{MaxRetries: 3, Base: 2}
	cases := []struct {
		attempts int
		want     time.Duration
	}{
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
	}
	for _, tc := range cases {
		if got := bc.Delay(tc.attempts); got != tc.want {
			t.Fatalf("attempts %d: expected %v, got %v", tc.attempts, tc.want, got)
		}
	}
}

func TestBackoffDelayFloatBase(t *testing.T) {
	bc := queuectl.BackoffConfig{MaxRetries: 3, Base: 1.5}
	if got := bc.Delay(2); got != 2250*time.Millisecond {
		t.Fatalf("expected 2.25s, got %v", got)
	}
}

func TestBackoffNextRetryAt(t *testing.T) {
	bc := queuectl.BackoffConfig{MaxRetries: 3, Base: 2}
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	want := now.Add(4 * time.Second)
	if got := bc.NextRetryAt(now, 2); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestBackoffExhausted(t *testing.T) {
	bc := queuectl.BackoffConfig{MaxRetries: 2, Base: 2}
	if bc.Exhausted(1) {
		t.Fatal("one attempt must not exhaust a budget of two")
	}
	if !bc.Exhausted(2) {
		t.Fatal("two attempts must exhaust a budget of two")
	}
}
