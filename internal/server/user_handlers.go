package server

import (
	"learnhub/internal/middleware"
	"learnhub/internal/models"
	"learnhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/profile
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{user=models.PublicUser}
// @Failure 404 {object} models.ErrorResponse
// @Router /profile [get]
func (s *Server) GetProfile(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	user, err := s.accounts.GetProfile(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	return c.JSON(fiber.Map{"user": user})
}

// UpdateProfile handles PUT /api/profile
// @Summary Update the authenticated user's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{full_name=string,email=string} true "Profile fields"
// @Success 200 {object} object{message=string,user=models.PublicUser}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /profile [put]
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.accounts.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:   userID,
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated",
		"user":    user,
	})
}
