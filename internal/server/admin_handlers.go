package server

import (
	"strings"

	"learnhub/internal/middleware"
	"learnhub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListUsers handles GET /api/users (admin only)
// @Summary List active users, newest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{users=[]models.PublicUser}
// @Failure 403 {object} models.ErrorResponse
// @Router /users [get]
func (s *Server) ListUsers(c *fiber.Ctx) error {
	callerID := middleware.UserID(c)
	page := parsePagination(c, 100)

	users, err := s.accounts.AdminListUsers(c.Context(), callerID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	return c.JSON(fiber.Map{"users": users})
}

// DeleteUser handles DELETE /api/users/:id (admin only). The account is
// soft-deleted: it stops authenticating and disappears from listings, but
// the record and its username/email reservation remain.
// @Summary Soft-delete a user account
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Target user ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [delete]
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	callerID := middleware.UserID(c)

	targetID := strings.TrimSpace(c.Params("id"))
	if targetID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid user ID"))
	}

	if _, err := s.accounts.AdminDeleteUser(c.Context(), callerID, targetID); err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	return c.JSON(fiber.Map{"message": "User deactivated"})
}
