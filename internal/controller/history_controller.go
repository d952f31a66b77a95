package controller

import (
	"github.com/Nix128/asisten-pengawasan-apip/internal/dto"
	"github.com/Nix128/asisten-pengawasan-apip/internal/pkg/serverutils"
	"github.com/Nix128/asisten-pengawasan-apip/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IHistoryController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	ListFiles(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type historyController struct {
	historyService service.IHistoryService
}

func NewHistoryController(historyService service.IHistoryService) IHistoryController {
	return &historyController{
		historyService: historyService,
	}
}

func (c *historyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/history/v1")
	h.Post("ask", c.Ask)
	h.Get("files", c.ListFiles)
	h.Get("", c.List)
	h.Put("", c.Update)
	h.Delete("", c.Delete)
}

func (c *historyController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.historyService.Ask(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success ask", res))
}

// ListFiles mengembalikan nama dokumen yang bisa dipakai di parameter files.
func (c *historyController) ListFiles(ctx *fiber.Ctx) error {
	res, err := c.historyService.ListDocuments(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list knowledge documents", res))
}

func (c *historyController) List(ctx *fiber.Ctx) error {
	res, err := c.historyService.List(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list history", res))
}

func (c *historyController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateHistoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.historyService.Update(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update history", res))
}

func (c *historyController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Query("id", ""))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid history ID")
	}

	if err := c.historyService.Delete(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete history", nil))
}
