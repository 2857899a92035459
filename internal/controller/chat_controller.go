package controller

import (
	"knowledge-chatbot-be/internal/constant"
	"knowledge-chatbot-be/internal/dto"
	"knowledge-chatbot-be/internal/pkg/serverutils"
	"knowledge-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
	Export(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.SessionMiddleware)
	h.Post("/message", c.Send)
	h.Get("/history", c.History)
	h.Delete("/history", c.Clear)
	h.Get("/export", c.Export)
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	sessionId := ctx.Locals("session_id").(string)

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Send(ctx.Context(), sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	sessionId := ctx.Locals("session_id").(string)

	res, err := c.service.History(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func (c *chatController) Clear(ctx *fiber.Ctx) error {
	sessionId := ctx.Locals("session_id").(string)

	if err := c.service.Clear(ctx.Context(), sessionId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success clear conversation", nil))
}

// Export streams the session's exported history as a plain-text download.
// Every browser sees the same download name; the file on disk is per-session.
func (c *chatController) Export(ctx *fiber.Ctx) error {
	sessionId := ctx.Locals("session_id").(string)

	path, err := c.service.Export(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.Download(path, constant.ExportFileName)
}
