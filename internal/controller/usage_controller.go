package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"studyvault-be/internal/pkg/serverutils"
	"studyvault-be/internal/service"
)

type IUsageController interface {
	RegisterRoutes(r fiber.Router)
	GetStatus(ctx *fiber.Ctx) error
	GetLimits(ctx *fiber.Ctx) error
}

type usageController struct {
	usageService service.IUsageService
}

func NewUsageController(usageService service.IUsageService) IUsageController {
	return &usageController{
		usageService: usageService,
	}
}

func (c *usageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/usage/v1")
	h.Get("limits", c.GetLimits)
	h.Use(serverutils.JwtMiddleware)
	h.Get("status", c.GetStatus)
}

func (c *usageController) GetStatus(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.usageService.GetQuotaStatus(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get quota status", res))
}

func (c *usageController) GetLimits(ctx *fiber.Ctx) error {
	res, err := c.usageService.GetSystemLimits(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get system limits", res))
}
