package quota

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"studyvault-be/internal/config"
	"studyvault-be/internal/dto"
	"studyvault-be/internal/entity"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeCounter struct {
	counts map[string]int64
	err    error
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{counts: make(map[string]int64)}
}

func (c *fakeCounter) Increment(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if c.err != nil {
		return 0, c.err
	}
	c.counts[key]++
	return c.counts[key], nil
}

func (c *fakeCounter) Get(ctx context.Context, key string) (int64, error) {
	if c.err != nil {
		return 0, c.err
	}
	return c.counts[key], nil
}

type fakePlans struct {
	plan string
}

func (p *fakePlans) PlanFor(ctx context.Context, userId uuid.UUID) (string, error) {
	return p.plan, nil
}

func testConfig() config.QuotaConfig {
	return config.QuotaConfig{
		DailyLimitFree:        3,
		DailyLimitPro:         100,
		RateLimitFreeRequests: 1000,
		RateLimitFreeWindow:   60,
		RateLimitProRequests:  1000,
		RateLimitProWindow:    60,
		WindowSeconds:         86400,
	}
}

func TestGateEnforceDailyLimit(t *testing.T) {
	gate := NewGate(newFakeCounter(), &fakePlans{plan: entity.PlanFree}, testConfig(), nopLogger{})
	userId := uuid.New()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := gate.Enforce(ctx, userId); err != nil {
			t.Fatalf("request %d within limit rejected: %v", i+1, err)
		}
	}

	err := gate.Enforce(ctx, userId)
	var quotaErr *dto.QuotaExceededError
	if !errors.As(err, &quotaErr) {
		t.Fatalf("request over limit returned %v, want QuotaExceededError", err)
	}
	if quotaErr.Limit != 3 || quotaErr.Used != 3 {
		t.Errorf("quota error = %+v, want limit 3 used 3", quotaErr)
	}
	if quotaErr.ResetAfter.IsZero() {
		t.Error("reset time missing")
	}
}

func TestGateProPlanGetsHigherLimit(t *testing.T) {
	counter := newFakeCounter()
	gate := NewGate(counter, &fakePlans{plan: entity.PlanPro}, testConfig(), nopLogger{})
	userId := uuid.New()
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if err := gate.Enforce(ctx, userId); err != nil {
			t.Fatalf("pro request %d rejected: %v", i+1, err)
		}
	}
}

func TestGateFailsOpenOnCounterOutage(t *testing.T) {
	counter := newFakeCounter()
	counter.err = errors.New("connection refused")
	gate := NewGate(counter, &fakePlans{plan: entity.PlanFree}, testConfig(), nopLogger{})

	if err := gate.Enforce(context.Background(), uuid.New()); err != nil {
		t.Errorf("counter outage blocked a request: %v", err)
	}
}

func TestGateSlidingRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitFreeRequests = 2
	gate := NewGate(newFakeCounter(), &fakePlans{plan: entity.PlanFree}, cfg, nopLogger{})
	userId := uuid.New()
	ctx := context.Background()

	if err := gate.Enforce(ctx, userId); err != nil {
		t.Fatalf("first request rejected: %v", err)
	}
	if err := gate.Enforce(ctx, userId); err != nil {
		t.Fatalf("second request rejected: %v", err)
	}

	err := gate.Enforce(ctx, userId)
	var quotaErr *dto.QuotaExceededError
	if !errors.As(err, &quotaErr) {
		t.Fatalf("burst over rate limit returned %v, want QuotaExceededError", err)
	}
}

func TestGateRateLimitResetUsesPlanWindow(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitProRequests = 1
	cfg.RateLimitProWindow = 120
	gate := NewGate(newFakeCounter(), &fakePlans{plan: entity.PlanPro}, cfg, nopLogger{})
	frozen := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	gate.now = func() time.Time { return frozen }
	userId := uuid.New()
	ctx := context.Background()

	if err := gate.Enforce(ctx, userId); err != nil {
		t.Fatalf("first request rejected: %v", err)
	}

	err := gate.Enforce(ctx, userId)
	var quotaErr *dto.QuotaExceededError
	if !errors.As(err, &quotaErr) {
		t.Fatalf("burst over rate limit returned %v, want QuotaExceededError", err)
	}
	if want := frozen.Add(120 * time.Second); !quotaErr.ResetAfter.Equal(want) {
		t.Errorf("ResetAfter = %v, want %v", quotaErr.ResetAfter, want)
	}
}

func TestGateCheckStatusDoesNotConsume(t *testing.T) {
	counter := newFakeCounter()
	gate := NewGate(counter, &fakePlans{plan: entity.PlanFree}, testConfig(), nopLogger{})
	userId := uuid.New()
	ctx := context.Background()

	if err := gate.Enforce(ctx, userId); err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if err := gate.Enforce(ctx, userId); err != nil {
		t.Fatalf("enforce failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		status, err := gate.CheckStatus(ctx, userId)
		if err != nil {
			t.Fatalf("CheckStatus failed: %v", err)
		}
		if status.Usage != 2 || status.Limit != 3 || status.Remaining != 1 {
			t.Fatalf("status = %+v, want usage 2 of 3", status)
		}
		if !status.CanSend {
			t.Error("CanSend should be true below the limit")
		}
		if status.IsPro {
			t.Error("free plan reported as pro")
		}
	}
}
