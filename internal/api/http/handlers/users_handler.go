package handlers

import (
	"context"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/api/dto"
	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/auth"
	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/domain"
	apperrors "github.com/ArigalaPunithKumar/Alumnus-Backend/pkg/util"
)

// ProfileReader loads accounts by email.
type ProfileReader interface {
	GetProfile(ctx context.Context, email string) (*domain.User, error)
}

// UsersHandler exposes authenticated account endpoints.
type UsersHandler struct {
	profiles ProfileReader
}

// NewUsersHandler constructs handler.
func NewUsersHandler(profiles ProfileReader) *UsersHandler {
	return &UsersHandler{profiles: profiles}
}

// Me handles GET /api/users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	user, err := h.profiles.GetProfile(c.UserContext(), principal.Email)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserView(user))
}

// GetByEmail handles GET /api/admin/users/:email.
func (h *UsersHandler) GetByEmail(c *fiber.Ctx) error {
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil || email == "" {
		return apperrors.NewValidationError("invalid email", nil)
	}
	user, err := h.profiles.GetProfile(c.UserContext(), email)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserView(user))
}
