package handler

import (
	"github.com/gofiber/fiber/v2"

	"knowledgehub/internal/service"
)

type askRequest struct {
	DocumentID string `json:"document_id"`
	Message    string `json:"message"`
}

// AskAssistant forwards a question to the chat-completion backend, optionally
// grounded on a document the caller can read.
func AskAssistant(svc service.AssistantService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req askRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		res, err := svc.Ask(c.UserContext(), actorFromCtx(c), req.DocumentID, req.Message)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}
