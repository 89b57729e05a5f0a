package serverutils

import (
	"errors"
	"time"

	"studyvault-be/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts typed domain errors escaping the
// controllers into response envelopes. Anything unrecognized becomes a
// plain 500 without leaking internals.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var quotaErr *dto.QuotaExceededError
		if errors.As(err, &quotaErr) {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(Response[dto.QuotaExceededData]{
				Code:    fiber.StatusTooManyRequests,
				Message: "Daily quota exceeded",
				Data: dto.QuotaExceededData{
					Limit:      quotaErr.Limit,
					Used:       quotaErr.Used,
					ResetAfter: quotaErr.ResetAfter.Format(time.RFC3339),
				},
			})
		}

		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, validationErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
	}
}
