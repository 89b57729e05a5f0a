package dto

import (
	"fmt"
	"time"
)

// QuotaStatusResponse mirrors the gate's check result for UI display.
type QuotaStatusResponse struct {
	CanSend   bool `json:"can_send"`
	Usage     int  `json:"usage"`
	Limit     int  `json:"limit"`
	Remaining int  `json:"remaining"`
	IsPro     bool `json:"is_pro"`
}

// SystemLimitsResponse is static configuration, not user-specific.
type SystemLimitsResponse struct {
	DailyLimitFree        int `json:"daily_limit_free"`
	DailyLimitPro         int `json:"daily_limit_pro"`
	RateLimitFreeRequests int `json:"rate_limit_free_requests"`
	RateLimitFreeWindow   int `json:"rate_limit_free_window"`
	RateLimitProRequests  int `json:"rate_limit_pro_requests"`
	RateLimitProWindow    int `json:"rate_limit_pro_window"`
	MaxFileSizeMB         int `json:"max_file_size_mb"`
}

// QuotaExceededError is a typed error that carries usage details so the
// HTTP boundary can build a 429 payload.
type QuotaExceededError struct {
	Limit      int
	Used       int
	ResetAfter time.Time
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("daily quota exceeded: used %d of %d", e.Used, e.Limit)
}

// QuotaExceededData is the data payload for 429 responses
type QuotaExceededData struct {
	Limit      int    `json:"limit"`
	Used       int    `json:"used"`
	ResetAfter string `json:"reset_after"`
}
