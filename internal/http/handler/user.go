package handler

import (
	"github.com/gofiber/fiber/v2"

	"knowledgehub/internal/model"
	"knowledgehub/internal/service"
)

type profileUpdateRequest struct {
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

type roleRequest struct {
	Role string `json:"role"`
}

type activeRequest struct {
	Active bool `json:"active"`
}

// GetMyProfile returns the caller's profile.
func GetMyProfile(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := actorFromCtx(c)
		p, err := svc.Get(c.UserContext(), actor.ID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// UpdateMyProfile changes the caller's display name and avatar.
func UpdateMyProfile(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req profileUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		p, err := svc.UpdateProfile(c.UserContext(), actorFromCtx(c), req.DisplayName, req.AvatarURL)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// ListUsers returns all profiles. Admin only.
func ListUsers(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok, err := pagination(c)
		if !ok {
			return err
		}
		res, err := svc.List(c.UserContext(), actorFromCtx(c), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// ChangeUserRole switches a profile between user and admin. Admin only.
func ChangeUserRole(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := pathID(c)
		if !ok {
			return err
		}
		var req roleRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if err := svc.ChangeRole(c.UserContext(), actorFromCtx(c), id, model.Role(req.Role)); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// SetUserActive activates or deactivates an account. Admin only.
func SetUserActive(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := pathID(c)
		if !ok {
			return err
		}
		var req activeRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if err := svc.SetActive(c.UserContext(), actorFromCtx(c), id, req.Active); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
