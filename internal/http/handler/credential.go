package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"reviewapi/internal/service"
)

// loginRequest is the JSON body shared by both login endpoints.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminLogin authenticates the fixed admin account and returns a session token.
//
// @Summary Admin login
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Admin credentials"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errorPayload
// @Router /admin/login [post]
func AdminLogin(svc service.CredentialService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "malformed request body")
		}

		token, err := svc.AdminLogin(c.UserContext(), req.Username, req.Password)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"token": token})
	}
}

// ModeratorLogin authenticates a moderator account and returns a session token.
//
// @Summary Moderator login
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Moderator credentials"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errorPayload
// @Router /moderators/login [post]
func ModeratorLogin(svc service.CredentialService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "malformed request body")
		}

		token, mod, err := svc.ModeratorLogin(c.UserContext(), req.Username, req.Password)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"token":    token,
			"username": mod.Username,
		})
	}
}

// RegisterModerator creates a new moderator account. Admin only.
//
// @Summary Register a moderator
// @Tags moderators
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "New moderator credentials"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errorPayload
// @Failure 403 {object} errorPayload
// @Security BearerAuth
// @Router /moderators [post]
func RegisterModerator(svc service.CredentialService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !isAdmin(c) {
			return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "admin privileges required")
		}

		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "malformed request body")
		}

		mod, err := svc.Register(c.UserContext(), req.Username, req.Password)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"username": mod.Username})
	}
}

// ListModerators returns every moderator account. Admin only.
//
// @Summary List moderators
// @Tags moderators
// @Produce json
// @Success 200 {array} model.Moderator
// @Failure 403 {object} errorPayload
// @Security BearerAuth
// @Router /moderators [get]
func ListModerators(svc service.CredentialService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !isAdmin(c) {
			return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "admin privileges required")
		}

		mods, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(mods)
	}
}

// DeleteModerator removes a moderator and all of its papers. Admin only.
//
// @Summary Delete a moderator
// @Tags moderators
// @Produce json
// @Param id path string true "Moderator ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Security BearerAuth
// @Router /moderators/{id} [delete]
func DeleteModerator(svc service.CredentialService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !isAdmin(c) {
			return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "admin privileges required")
		}

		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		res, err := svc.Delete(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"message": "moderator deleted",
			"cascade": res,
		})
	}
}
