package quota

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"studyvault-be/internal/config"
	"studyvault-be/internal/dto"
	"studyvault-be/internal/entity"
	"studyvault-be/internal/pkg/logger"
)

// PlanSource resolves the subscription plan of a user.
type PlanSource interface {
	PlanFor(ctx context.Context, userId uuid.UUID) (string, error)
}

// Gate enforces the two usage limits that guard ingestion: a daily
// document quota per plan and a short sliding-window rate limit. The
// check happens before any pipeline work starts, so a rejected request
// leaves no partial state behind.
type Gate struct {
	counter  UsageCounter
	plans    PlanSource
	cfg      config.QuotaConfig
	logger   logger.ILogger
	limiters sync.Map // userId -> *rate.Limiter
	now      func() time.Time
}

func NewGate(counter UsageCounter, plans PlanSource, cfg config.QuotaConfig, logger logger.ILogger) *Gate {
	return &Gate{
		counter: counter,
		plans:   plans,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

func (g *Gate) dailyKey(userId uuid.UUID) string {
	return fmt.Sprintf("quota:daily:%s:%s", userId, g.now().UTC().Format("2006-01-02"))
}

func (g *Gate) limitFor(plan string) int {
	if plan == entity.PlanPro {
		return g.cfg.DailyLimitPro
	}
	return g.cfg.DailyLimitFree
}

func (g *Gate) resetAt() time.Time {
	now := g.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
}

func (g *Gate) rateWindow(plan string) int {
	window := g.cfg.RateLimitFreeWindow
	if plan == entity.PlanPro {
		window = g.cfg.RateLimitProWindow
	}
	if window <= 0 {
		window = 60
	}
	return window
}

func (g *Gate) limiterFor(userId uuid.UUID, plan string) *rate.Limiter {
	requests := g.cfg.RateLimitFreeRequests
	if plan == entity.PlanPro {
		requests = g.cfg.RateLimitProRequests
	}
	window := g.rateWindow(plan)

	key := userId.String() + ":" + plan
	if existing, ok := g.limiters.Load(key); ok {
		return existing.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(rate.Limit(float64(requests)/float64(window)), requests)
	actual, _ := g.limiters.LoadOrStore(key, limiter)
	return actual.(*rate.Limiter)
}

// Enforce consumes one unit of quota or returns a typed error describing
// the rejection. Counter outages are fail-open: a user who cannot be
// counted is still served, with a warning in the logs.
func (g *Gate) Enforce(ctx context.Context, userId uuid.UUID) error {
	plan, err := g.plans.PlanFor(ctx, userId)
	if err != nil {
		return fmt.Errorf("resolve plan: %w", err)
	}
	limit := g.limitFor(plan)

	if !g.limiterFor(userId, plan).Allow() {
		return &dto.QuotaExceededError{
			Limit:      limit,
			Used:       limit,
			ResetAfter: g.now().Add(time.Duration(g.rateWindow(plan)) * time.Second),
		}
	}

	count, err := g.counter.Increment(ctx, g.dailyKey(userId), time.Duration(g.cfg.WindowSeconds)*time.Second)
	if err != nil {
		g.logger.Warn("Gate.Enforce", "usage counter unavailable, allowing request", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		return nil
	}

	if count > int64(limit) {
		return &dto.QuotaExceededError{
			Limit:      limit,
			Used:       int(count) - 1,
			ResetAfter: g.resetAt(),
		}
	}

	return nil
}

// CheckStatus reports usage without consuming quota.
func (g *Gate) CheckStatus(ctx context.Context, userId uuid.UUID) (*dto.QuotaStatusResponse, error) {
	plan, err := g.plans.PlanFor(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("resolve plan: %w", err)
	}
	limit := g.limitFor(plan)

	count, err := g.counter.Get(ctx, g.dailyKey(userId))
	if err != nil {
		g.logger.Warn("Gate.CheckStatus", "usage counter unavailable, reporting zero usage", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		count = 0
	}

	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return &dto.QuotaStatusResponse{
		CanSend:   int(count) < limit,
		Usage:     int(count),
		Limit:     limit,
		Remaining: remaining,
		IsPro:     plan == entity.PlanPro,
	}, nil
}
