package controller

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"studyvault-be/internal/dto"
	"studyvault-be/internal/pkg/serverutils"
	"studyvault-be/internal/service"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Ingest(ctx *fiber.Ctx) error
	GetAllByCourse(ctx *fiber.Ctx) error
	SemanticSearch(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
	maxFileSizeMB   int
}

func NewDocumentController(documentService service.IDocumentService, maxFileSizeMB int) IDocumentController {
	return &documentController{
		documentService: documentService,
		maxFileSizeMB:   maxFileSizeMB,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("ingest", c.Ingest)
	h.Get("semantic-search", c.SemanticSearch)
	h.Get("course/:courseId", c.GetAllByCourse)
	h.Delete(":id", c.Delete)
}

// Ingest accepts a multipart upload and answers with a server-sent event
// stream of pipeline progress. Quota rejection happens before the first
// byte of the stream, so a denied upload is a plain 429 JSON response.
func (c *documentController) Ingest(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	courseId, err := uuid.Parse(ctx.FormValue("course_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid course_id")
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}
	if fileHeader.Size > int64(c.maxFileSizeMB)*1024*1024 {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge,
			fmt.Sprintf("file exceeds %d MB limit", c.maxFileSizeMB))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "cannot read uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "cannot read uploaded file")
	}

	events, err := c.documentService.Ingest(ctx.Context(), userId, courseId, fileHeader.Filename, data)
	if err != nil {
		return err
	}
	if events == nil {
		return fiber.NewError(fiber.StatusNotFound, "course not found")
	}

	ctx.Set("Content-Type", "text/event-stream")
	ctx.Set("Cache-Control", "no-cache")
	ctx.Set("Connection", "keep-alive")

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		for event := range events {
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			// A failed flush means the client is gone; the pipeline
			// unwinds via context cancellation.
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))
	return nil
}

func (c *documentController) GetAllByCourse(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	courseId, err := uuid.Parse(ctx.Params("courseId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid course id")
	}

	res, err := c.documentService.GetAllByCourse(ctx.Context(), userId, courseId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get documents", res))
}

func (c *documentController) SemanticSearch(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	query := ctx.Query("q")
	if query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "query parameter q is required")
	}
	courseId, err := uuid.Parse(ctx.Query("course_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid course_id")
	}

	res, err := c.documentService.SemanticSearch(ctx.Context(), userId, courseId, query)
	if err != nil {
		return err
	}
	if res == nil {
		res = make([]*dto.SemanticSearchResponse, 0)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success semantic search", res))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid document id")
	}

	if err := c.documentService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete document", nil))
}
