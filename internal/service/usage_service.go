package service

import (
	"context"

	"github.com/google/uuid"

	"studyvault-be/internal/config"
	"studyvault-be/internal/dto"
	"studyvault-be/pkg/quota"
)

type IUsageService interface {
	GetQuotaStatus(ctx context.Context, userId uuid.UUID) (*dto.QuotaStatusResponse, error)
	GetSystemLimits(ctx context.Context) (*dto.SystemLimitsResponse, error)
}

type usageService struct {
	gate *quota.Gate
	cfg  config.QuotaConfig
}

func NewUsageService(gate *quota.Gate, cfg config.QuotaConfig) IUsageService {
	return &usageService{
		gate: gate,
		cfg:  cfg,
	}
}

func (c *usageService) GetQuotaStatus(ctx context.Context, userId uuid.UUID) (*dto.QuotaStatusResponse, error) {
	return c.gate.CheckStatus(ctx, userId)
}

func (c *usageService) GetSystemLimits(ctx context.Context) (*dto.SystemLimitsResponse, error) {
	return &dto.SystemLimitsResponse{
		DailyLimitFree:        c.cfg.DailyLimitFree,
		DailyLimitPro:         c.cfg.DailyLimitPro,
		RateLimitFreeRequests: c.cfg.RateLimitFreeRequests,
		RateLimitFreeWindow:   c.cfg.RateLimitFreeWindow,
		RateLimitProRequests:  c.cfg.RateLimitProRequests,
		RateLimitProWindow:    c.cfg.RateLimitProWindow,
		MaxFileSizeMB:         c.cfg.MaxFileSizeMB,
	}, nil
}
