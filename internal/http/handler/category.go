package handler

import (
	"github.com/gofiber/fiber/v2"

	"knowledgehub/internal/service"
)

type categoryRequest struct {
	Name string `json:"name"`
}

// ListCategories returns all categories.
func ListCategories(svc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cats, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": cats})
	}
}

// CreateCategory adds a category. Admin only.
func CreateCategory(svc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req categoryRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		cat, err := svc.Create(c.UserContext(), actorFromCtx(c), req.Name)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(cat)
	}
}
