package controller

import (
	"github.com/Nix128/asisten-pengawasan-apip/internal/dto"
	"github.com/Nix128/asisten-pengawasan-apip/internal/pkg/serverutils"
	"github.com/Nix128/asisten-pengawasan-apip/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Conversations(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("", c.Chat)
	h.Get("history", c.History)
	h.Get("conversations", c.Conversations)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.Chat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success chat", res))
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	sessionID := ctx.Query("session_id", "")
	if sessionID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "session_id is required")
	}

	res, err := c.chatService.GetHistory(ctx.Context(), sessionID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func (c *chatController) Conversations(ctx *fiber.Ctx) error {
	res, err := c.chatService.ListConversations(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list conversations", res))
}
