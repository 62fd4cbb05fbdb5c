package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/api/dto"
	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/domain"
	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/service"
	apperrors "github.com/ArigalaPunithKumar/Alumnus-Backend/pkg/util"
)

// Authenticator is the subset of service.AuthService used by handlers.
type Authenticator interface {
	Login(ctx context.Context, in service.LoginInput) (domain.Token, error)
	Register(ctx context.Context, in service.RegisterInput) (string, error)
	SocialLogin(ctx context.Context, in service.SocialLoginInput) (domain.Token, error)
}

// PasswordResetter is the subset of service.PasswordResetService used by handlers.
type PasswordResetter interface {
	RequestReset(ctx context.Context, in service.RequestResetInput) (string, error)
	ConfirmReset(ctx context.Context, in service.ConfirmResetInput) (string, error)
}

// AuthHandler exposes the public /api/auth endpoints.
type AuthHandler struct {
	auth   Authenticator
	resets PasswordResetter
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService Authenticator, resetService PasswordResetter) *AuthHandler {
	return &AuthHandler{auth: authService, resets: resetService}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	token, err := h.auth.Login(c.UserContext(), service.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return err
	}
	return c.JSON(tokenResponse(token))
}

// Register handles POST /api/auth/register. Rejections the caller can fix
// are returned in the success/message envelope.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	msg, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
		ProfileFields: domain.ProfileFields{
			CompanyName: req.CompanyName,
			CompanyRole: req.CompanyRole,
			CollegeName: req.CollegeName,
			Branch:      req.Branch,
			CollegeID:   req.CollegeID,
		},
	})
	if err != nil {
		var domainErr *apperrors.DomainError
		if errors.As(err, &domainErr) && isRegisterRejection(domainErr.Code) {
			return c.Status(domainErr.HTTPStatus).JSON(dto.APIResponse{Success: false, Message: domainErr.Message})
		}
		return err
	}
	return c.JSON(dto.APIResponse{Success: true, Message: msg})
}

// SocialLogin handles POST /api/auth/social-login.
func (h *AuthHandler) SocialLogin(c *fiber.Ctx) error {
	var req dto.SocialLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	token, err := h.auth.SocialLogin(c.UserContext(), service.SocialLoginInput{Provider: req.Provider, Token: req.Token})
	if err != nil {
		return err
	}
	return c.JSON(tokenResponse(token))
}

// ForgotPassword handles POST /api/auth/forgot-password.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	msg, err := h.resets.RequestReset(c.UserContext(), service.RequestResetInput{Email: req.Email})
	if err != nil {
		return err
	}
	return c.JSON(dto.APIResponse{Success: true, Message: msg})
}

// ResetPassword handles POST /api/auth/reset-password.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	msg, err := h.resets.ConfirmReset(c.UserContext(), service.ConfirmResetInput{Token: req.Token, Password: req.Password})
	if err != nil {
		return err
	}
	return c.JSON(dto.APIResponse{Success: true, Message: msg})
}

func tokenResponse(token domain.Token) dto.JWTAuthResponse {
	return dto.JWTAuthResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
	}
}

func isRegisterRejection(code string) bool {
	switch code {
	case apperrors.CodeDuplicateEmail, apperrors.CodeInvalidRole, apperrors.CodeValidationFailed:
		return true
	}
	return false
}
