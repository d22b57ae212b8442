package handler

import (
	"github.com/gofiber/fiber/v2"

	"knowledgehub/internal/service"
)

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type themeRequest struct {
	Theme string `json:"theme"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type resetRequest struct {
	Email string `json:"email"`
}

type resetConfirmRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// Register creates an account and returns the access token with the profile.
func Register(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		res, err := svc.Register(c.UserContext(), req.Email, req.Password, req.DisplayName)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// Login exchanges credentials for an access token.
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		res, err := svc.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// Logout clears the caller's server-side session.
func Logout(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := actorFromCtx(c)
		if err := svc.Logout(c.UserContext(), actor.ID); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GetSession returns the caller's session state including the theme.
func GetSession(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := actorFromCtx(c)
		sess, err := svc.Session(c.UserContext(), actor.ID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(sess)
	}
}

// SetTheme stores the theme preference on the session.
func SetTheme(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req themeRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		actor := actorFromCtx(c)
		sess, err := svc.SetTheme(c.UserContext(), actor.ID, req.Theme)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(sess)
	}
}

// ChangePassword updates the caller's password after verifying the current one.
func ChangePassword(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req changePasswordRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		actor := actorFromCtx(c)
		if err := svc.UpdatePassword(c.UserContext(), actor.ID, req.CurrentPassword, req.NewPassword); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// RequestPasswordReset issues a single-use reset token. The response is the
// same whether or not the email exists.
func RequestPasswordReset(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req resetRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		token, err := svc.RequestReset(c.UserContext(), req.Email)
		if err != nil {
			return writeServiceError(c, err)
		}
		// The token would normally go out by email. It is returned here since
		// no mail transport is wired in.
		body := fiber.Map{"status": "ok"}
		if token != "" {
			body["token"] = token
		}
		return c.JSON(body)
	}
}

// ConfirmPasswordReset consumes a reset token and sets the new password.
func ConfirmPasswordReset(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req resetConfirmRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if err := svc.ConfirmReset(c.UserContext(), req.Token, req.Password); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
