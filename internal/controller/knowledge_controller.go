package controller

import (
	"github.com/Nix128/asisten-pengawasan-apip/internal/dto"
	"github.com/Nix128/asisten-pengawasan-apip/internal/pkg/serverutils"
	"github.com/Nix128/asisten-pengawasan-apip/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IKnowledgeController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	UpdateChunk(ctx *fiber.Ctx) error
	DeleteChunk(ctx *fiber.Ctx) error
	DeleteDocument(ctx *fiber.Ctx) error
}

type knowledgeController struct {
	knowledgeService service.IKnowledgeService
	jwtMiddleware    fiber.Handler
}

func NewKnowledgeController(knowledgeService service.IKnowledgeService, jwtMiddleware fiber.Handler) IKnowledgeController {
	return &knowledgeController{
		knowledgeService: knowledgeService,
		jwtMiddleware:    jwtMiddleware,
	}
}

func (c *knowledgeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/knowledge/v1")
	h.Use(c.jwtMiddleware)
	h.Get("", c.List)
	h.Put("chunk", c.UpdateChunk)
	h.Delete("chunk/:id", c.DeleteChunk)
	h.Delete("", c.DeleteDocument)
}

// List mengembalikan listing grouped, atau seluruh chunk satu dokumen kalau
// query document_name diisi.
func (c *knowledgeController) List(ctx *fiber.Ctx) error {
	documentName := ctx.Query("document_name", "")
	if documentName != "" {
		res, err := c.knowledgeService.ListChunks(ctx.Context(), documentName)
		if err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("Success list knowledge chunks", res))
	}

	res, err := c.knowledgeService.ListGrouped(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list knowledge base", res))
}

func (c *knowledgeController) UpdateChunk(ctx *fiber.Ctx) error {
	var req dto.UpdateChunkRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.knowledgeService.UpdateChunk(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update chunk", res))
}

func (c *knowledgeController) DeleteChunk(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid chunk ID")
	}

	if err := c.knowledgeService.DeleteChunk(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete chunk", nil))
}

func (c *knowledgeController) DeleteDocument(ctx *fiber.Ctx) error {
	documentName := ctx.Query("document_name", "")
	if documentName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "document_name is required")
	}

	deleted, err := c.knowledgeService.DeleteDocument(ctx.Context(), documentName)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete document chunks", fiber.Map{
		"deleted": deleted,
	}))
}
