package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errBackend = errors.New("backend down")

func newTestBreaker(threshold int) (*CircuitBreaker, *time.Time) {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker("test", CircuitBreakerConfig{
		FailureThreshold: threshold,
		Cooldown:         time.Minute,
	})
	cb.now = func() time.Time { return now }
	return cb, &now
}

func fail() error { return errBackend }
func succeed() error { return nil }

func TestCircuitOpensAfterThreshold(t *testing.T) {
	cb, _ := newTestBreaker(3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := cb.Execute(ctx, fail); !errors.Is(err, errBackend) {
			t.Fatalf("call %d err = %v", i, err)
		}
	}
	if cb.State() != CircuitOpen {
		t.Fatalf("state = %s, want OPEN", cb.State())
	}

	called := false
	err := cb.Execute(ctx, func() error { called = true; return nil })
	if !errors.Is(err, ErrCircuitOpen) || called {
		t.Errorf("open circuit let the call through: err=%v called=%v", err, called)
	}
	if s := cb.Stats(); s.TotalRejected != 1 || s.TotalFailures != 3 {
		t.Errorf("stats = %+v", s)
	}
}

func TestSuccessResetsFailureCount(t *testing.T) {
	cb, _ := newTestBreaker(2)
	ctx := context.Background()

	cb.Execute(ctx, fail)
	cb.Execute(ctx, succeed)
	cb.Execute(ctx, fail)
	if cb.State() != CircuitClosed {
		t.Errorf("state = %s, want CLOSED", cb.State())
	}
}

func TestHalfOpenAfterCooldown(t *testing.T) {
	cb, now := newTestBreaker(1)
	ctx := context.Background()

	cb.Execute(ctx, fail)
	if cb.State() != CircuitOpen {
		t.Fatalf("state = %s", cb.State())
	}

	*now = now.Add(2 * time.Minute)
	if err := cb.Execute(ctx, succeed); err != nil {
		t.Fatalf("trial call err = %v", err)
	}
	if cb.State() != CircuitClosed {
		t.Errorf("state after trial success = %s", cb.State())
	}

	cb.Execute(ctx, fail)
	*now = now.Add(2 * time.Minute)
	cb.Execute(ctx, fail)
	if cb.State() != CircuitOpen {
		t.Errorf("failed trial should reopen, state = %s", cb.State())
	}
}

func TestIsFailureFiltersErrors(t *testing.T) {
	errClient := errors.New("bad request")
	cb := NewCircuitBreaker("filtered", CircuitBreakerConfig{
		FailureThreshold: 1,
		IsFailure:        func(err error) bool { return !errors.Is(err, errClient) },
	})

	if err := cb.Execute(context.Background(), func() error { return errClient }); !errors.Is(err, errClient) {
		t.Fatalf("err = %v", err)
	}
	if cb.State() != CircuitClosed {
		t.Errorf("client error opened the circuit")
	}
}

func TestCancelledContextSkipsCall(t *testing.T) {
	cb, _ := newTestBreaker(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := cb.Execute(ctx, fail); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v", err)
	}
	if cb.State() != CircuitClosed {
		t.Errorf("state = %s", cb.State())
	}
}
