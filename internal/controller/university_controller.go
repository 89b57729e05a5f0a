package controller

import (
	"github.com/gofiber/fiber/v2"

	"studyvault-be/internal/dto"
	"studyvault-be/internal/pkg/serverutils"
	"studyvault-be/internal/service"
)

type IUniversityController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
}

type universityController struct {
	universityService service.IUniversityService
}

func NewUniversityController(universityService service.IUniversityService) IUniversityController {
	return &universityController{
		universityService: universityService,
	}
}

func (c *universityController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/university/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
}

func (c *universityController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.universityService.GetAll(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get universities", res))
}

func (c *universityController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateUniversityRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.universityService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create university", res))
}
