package service

import (
	"context"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/auth"
	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/events"
	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/repository"
	apperrors "github.com/ArigalaPunithKumar/Alumnus-Backend/pkg/util"
)

// Acknowledgements returned by the reset flow.
const (
	ResetRequestedMessage = "If an account with that email exists, a password reset link has been sent."
	ResetCompletedMessage = "Password has been reset successfully."
)

// PasswordResetService issues and redeems single-use reset tokens.
type PasswordResetService struct {
	users      repository.UserRepository
	resets     repository.PasswordResetRepository
	dispatcher events.Dispatcher
	ttl        time.Duration
	bcryptCost int
	logger     *zap.Logger
	now        func() time.Time
}

// PasswordResetDependencies encapsulates collaborators for the reset flow.
type PasswordResetDependencies struct {
	UserRepo          repository.UserRepository
	PasswordResetRepo repository.PasswordResetRepository
	Dispatcher        events.Dispatcher
	TokenTTL          time.Duration
	BcryptCost        int
	Logger            *zap.Logger
}

// NewPasswordResetService builds the service.
func NewPasswordResetService(deps PasswordResetDependencies) *PasswordResetService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := deps.TokenTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &PasswordResetService{
		users:      deps.UserRepo,
		resets:     deps.PasswordResetRepo,
		dispatcher: deps.Dispatcher,
		ttl:        ttl,
		bcryptCost: deps.BcryptCost,
		logger:     logger,
		now:        time.Now,
	}
}

// RequestResetInput is the forgot-password form.
type RequestResetInput struct {
	Email string
}

func (in RequestResetInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, emailRules...),
	)
}

// RequestReset always returns the same acknowledgement once the input is
// well formed. Lookup, storage and publish failures are logged only.
func (s *PasswordResetService) RequestReset(ctx context.Context, in RequestResetInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", validationFailed(err)
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Error("reset lookup failed", zap.String("email", in.Email), zap.Error(err))
		} else {
			s.logger.Info("reset requested for unknown email", zap.String("email", in.Email))
		}
		return ResetRequestedMessage, nil
	}

	token := uuid.NewString()
	if err := s.resets.Save(ctx, token, user.Email, s.ttl); err != nil {
		s.logger.Error("reset token store failed", zap.String("email", user.Email), zap.Error(err))
		return ResetRequestedMessage, nil
	}

	if s.dispatcher != nil {
		event := events.New(events.EventPasswordResetRequested, events.PasswordResetRequestedPayload{
			Email:     user.Email,
			Name:      user.Name,
			Token:     token,
			ExpiresAt: s.now().Add(s.ttl),
		})
		if err := s.dispatcher.Publish(ctx, event); err != nil {
			s.logger.Error("reset notification not queued", zap.String("email", user.Email), zap.Error(err))
		}
	}
	return ResetRequestedMessage, nil
}

// ConfirmResetInput is the reset-completion form.
type ConfirmResetInput struct {
	Token    string
	Password string
}

func (in ConfirmResetInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Token, validation.Required),
		validation.Field(&in.Password, passwordRules...),
	)
}

// ConfirmReset redeems token and sets a new password. A token can be used
// once; unknown, expired and spent tokens all fail with ErrTokenInvalid.
func (s *PasswordResetService) ConfirmReset(ctx context.Context, in ConfirmResetInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", validationFailed(err)
	}

	email, err := s.resets.Consume(ctx, in.Token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperrors.ErrTokenInvalid
		}
		return "", apperrors.NewInternalError(err)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperrors.ErrTokenInvalid
		}
		return "", apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return "", apperrors.NewInternalError(err)
	}

	s.logger.Info("password reset completed", zap.String("user_id", user.ID))
	return ResetCompletedMessage, nil
}
