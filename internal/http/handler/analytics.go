package handler

import (
	"github.com/gofiber/fiber/v2"

	"knowledgehub/internal/service"
)

// GetDashboard returns the admin dashboard aggregates.
func GetDashboard(svc service.AnalyticsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Dashboard(c.UserContext(), actorFromCtx(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// ListActivity returns the audit trail, newest first. Admin only.
func ListActivity(svc service.AnalyticsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok, err := pagination(c)
		if !ok {
			return err
		}
		res, err := svc.ListActivity(c.UserContext(), actorFromCtx(c), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}
