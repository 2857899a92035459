package serverutils

import (
	"errors"

	"knowledge-chatbot-be/internal/repository/memory"
	"knowledge-chatbot-be/internal/service"
	"knowledge-chatbot-be/pkg/assistant"
	"knowledge-chatbot-be/pkg/storage"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware translates errors returned by handlers into an HTTP
// status and a JSON error envelope. Remote failures stay fatal to the current
// interaction; there is no retry here.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
		case errors.Is(err, memory.ErrSessionNotFound):
			status = fiber.StatusUnauthorized
		case errors.Is(err, service.ErrEmptyPrompt),
			errors.Is(err, service.ErrUnsupportedFileType),
			errors.Is(err, storage.ErrNotText):
			status = fiber.StatusBadRequest
		case errors.Is(err, service.ErrNothingToExport):
			status = fiber.StatusNotFound
		case errors.Is(err, assistant.ErrRunTimedOut),
			errors.Is(err, assistant.ErrIngestionTimedOut):
			status = fiber.StatusGatewayTimeout
		case errors.Is(err, assistant.ErrRunFailed),
			errors.Is(err, assistant.ErrIngestionFailed),
			errors.Is(err, assistant.ErrNoReply):
			status = fiber.StatusBadGateway
		}

		return ctx.Status(status).JSON(ErrorResponse(err.Error()))
	}
}
