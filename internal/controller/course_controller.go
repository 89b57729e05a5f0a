package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"studyvault-be/internal/dto"
	"studyvault-be/internal/pkg/serverutils"
	"studyvault-be/internal/service"
)

type ICourseController interface {
	RegisterRoutes(r fiber.Router)
	GetAllByUniversity(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	GetOutline(ctx *fiber.Ctx) error
	RegenerateOutline(ctx *fiber.Ctx) error
}

type courseController struct {
	courseService service.ICourseService
}

func NewCourseController(courseService service.ICourseService) ICourseController {
	return &courseController{
		courseService: courseService,
	}
}

func (c *courseController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/course/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("university/:universityId", c.GetAllByUniversity)
	h.Post("", c.Create)
	h.Get(":id/outline", c.GetOutline)
	h.Post(":id/outline/regenerate", c.RegenerateOutline)
}

func (c *courseController) GetAllByUniversity(ctx *fiber.Ctx) error {
	universityId, err := uuid.Parse(ctx.Params("universityId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid university id")
	}

	res, err := c.courseService.GetAllByUniversity(ctx.Context(), universityId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get courses", res))
}

func (c *courseController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateCourseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.courseService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "university not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create course", res))
}

func (c *courseController) GetOutline(ctx *fiber.Ctx) error {
	courseId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid course id")
	}

	res, err := c.courseService.GetOutline(ctx.Context(), courseId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "course outline not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get course outline", res))
}

func (c *courseController) RegenerateOutline(ctx *fiber.Ctx) error {
	courseId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid course id")
	}

	queued, err := c.courseService.RequestOutlineRegeneration(ctx.Context(), courseId)
	if err != nil {
		return err
	}
	if !queued {
		return fiber.NewError(fiber.StatusNotFound, "course not found")
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Outline regeneration queued", nil))
}
