package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"knowledgehub/internal/http/middleware"
	"knowledgehub/internal/service"
)

// actorFromCtx builds the service-level actor from the verified token claims.
// Routes behind middleware.Auth always have claims; elsewhere the zero Actor
// stands for an anonymous caller.
func actorFromCtx(c *fiber.Ctx) service.Actor {
	claims := middleware.ClaimsFromCtx(c)
	if claims == nil {
		return service.Actor{}
	}
	return service.Actor{ID: claims.UserID, Role: claims.Role}
}

// pagination parses limit/offset query parameters. A write to the response
// has already happened when ok is false.
func pagination(c *fiber.Ctx) (limit, offset int, ok bool, err error) {
	limit, convErr := strconv.Atoi(c.Query("limit", "10"))
	if convErr != nil {
		return 0, 0, false, writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
	}
	offset, convErr = strconv.Atoi(c.Query("offset", "0"))
	if convErr != nil {
		return 0, 0, false, writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
	}
	return limit, offset, true, nil
}

// pathID validates the :id path parameter as a UUID. A write to the response
// has already happened when ok is false.
func pathID(c *fiber.Ctx) (string, bool, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false, writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}
	return id, true, nil
}
