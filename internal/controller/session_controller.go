package controller

import (
	"time"

	"knowledge-chatbot-be/internal/pkg/serverutils"
	"knowledge-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
}

type sessionController struct {
	service    service.ISessionService
	sessionTTL time.Duration
}

func NewSessionController(service service.ISessionService, sessionTTL time.Duration) ISessionController {
	return &sessionController{service: service, sessionTTL: sessionTTL}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Post("", c.Create)
}

// Create mints the session and hands the browser a bearer token scoping all
// later calls to that session's state.
func (c *sessionController) Create(ctx *fiber.Ctx) error {
	res, err := c.service.Create(ctx.Context())
	if err != nil {
		return err
	}

	token, err := serverutils.NewSessionToken(res.SessionId, c.sessionTTL)
	if err != nil {
		return err
	}
	res.Token = token

	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}
