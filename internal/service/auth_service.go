package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/auth"
	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/domain"
	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/events"
	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/repository"
	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/social"
	apperrors "github.com/ArigalaPunithKumar/Alumnus-Backend/pkg/util"
)

// RegisterSuccessMessage is returned after a successful registration.
const RegisterSuccessMessage = "User registered successfully!"

const defaultSocialName = "Social User"

// TokenIssuer mints access tokens for an authenticated principal.
type TokenIssuer interface {
	Issue(principal domain.Principal) (domain.Token, error)
}

// AuthService coordinates login, registration and social login flows.
type AuthService struct {
	users      repository.UserRepository
	providers  *social.Registry
	tokens     TokenIssuer
	dispatcher events.Dispatcher
	bcryptCost int
	burner     *auth.Burner
	logger     *zap.Logger
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Providers  *social.Registry
	Tokens     TokenIssuer
	Dispatcher events.Dispatcher
	BcryptCost int
	Logger     *zap.Logger
}

// NewAuthService builds the service. The dummy hash used for unknown emails
// is generated at BcryptCost.
func NewAuthService(deps AuthDependencies) (*AuthService, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	burner, err := auth.NewBurner(deps.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("dummy password hash: %w", err)
	}
	return &AuthService{
		users:      deps.UserRepo,
		providers:  deps.Providers,
		tokens:     deps.Tokens,
		dispatcher: deps.Dispatcher,
		bcryptCost: deps.BcryptCost,
		burner:     burner,
		logger:     logger,
	}, nil
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string
	Password string
}

func (in LoginInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Password, validation.Required),
	)
}

// Login authenticates by email and password. Unknown emails and wrong
// passwords both fail with ErrInvalidCredentials after a bcrypt comparison.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (domain.Token, error) {
	if err := in.Validate(); err != nil {
		return domain.Token{}, validationFailed(err)
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return domain.Token{}, apperrors.NewInternalError(err)
		}
		s.burner.Burn(in.Password)
		s.logger.Info("login rejected", zap.String("email", in.Email))
		return domain.Token{}, apperrors.ErrInvalidCredentials
	}
	if err := auth.ComparePassword(user.PasswordHash, in.Password); err != nil {
		s.logger.Info("login rejected", zap.String("email", in.Email))
		return domain.Token{}, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Principal())
	if err != nil {
		return domain.Token{}, apperrors.NewInternalError(err)
	}
	s.logger.Info("login succeeded", zap.String("email", user.Email), zap.String("role", string(user.Role())))
	return token, nil
}

// RegisterInput carries the sign-up form.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     string
	domain.ProfileFields
}

func (in RegisterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Email, emailRules...),
		validation.Field(&in.Phone, validation.Required),
		validation.Field(&in.Password, passwordRules...),
		validation.Field(&in.Role, validation.Required.Error("Role must be 'Alumni', 'Student', or 'Admin'")),
	)
}

// Register creates an account. The store's unique email constraint is the
// authoritative duplicate check; the lookup before it only short-circuits.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", validationFailed(err)
	}

	exists, err := s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	if exists {
		return "", apperrors.ErrDuplicateEmail
	}

	role, ok := domain.ParseRole(in.Role)
	if !ok {
		return "", apperrors.ErrInvalidRole
	}
	profile, _ := domain.ShapeProfile(role, in.ProfileFields)

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        in.Phone,
		Profile:      profile,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", apperrors.ErrDuplicateEmail
		}
		return "", apperrors.NewInternalError(err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(role)))
	s.publishRegistered(ctx, user, "password")
	return RegisterSuccessMessage, nil
}

// SocialLoginInput names the provider and its identity token.
type SocialLoginInput struct {
	Provider string
	Token    string
}

func (in SocialLoginInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Provider, validation.Required),
		validation.Field(&in.Token, validation.Required),
	)
}

// SocialLogin verifies the provider token and signs in the matching account,
// creating a Student account on first use.
func (s *AuthService) SocialLogin(ctx context.Context, in SocialLoginInput) (domain.Token, error) {
	if err := in.Validate(); err != nil {
		return domain.Token{}, validationFailed(err)
	}

	verifier, ok := s.providers.Lookup(in.Provider)
	if !ok {
		return domain.Token{}, apperrors.ErrProviderUnsupported
	}
	identity, err := verifier.Verify(ctx, in.Token)
	if err != nil {
		s.logger.Warn("social token rejected", zap.String("provider", in.Provider), zap.Error(err))
		if errors.Is(err, social.ErrInvalidToken) || errors.Is(err, social.ErrEmailNotVerified) {
			return domain.Token{}, apperrors.ErrTokenInvalid.Wrap(err)
		}
		return domain.Token{}, apperrors.NewInternalError(err)
	}

	user, err := s.findOrCreateSocialUser(ctx, identity)
	if err != nil {
		return domain.Token{}, err
	}

	token, err := s.tokens.Issue(user.Principal())
	if err != nil {
		return domain.Token{}, apperrors.NewInternalError(err)
	}
	return token, nil
}

func (s *AuthService) findOrCreateSocialUser(ctx context.Context, identity social.Identity) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, identity.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewInternalError(err)
	}

	// Random password: the account can only be reached through the provider
	// until a reset sets a real one.
	hash, err := auth.HashPassword(uuid.NewString(), s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	name := strings.TrimSpace(identity.Name)
	if name == "" {
		name = defaultSocialName
	}
	user = &domain.User{
		Name:         name,
		Email:        identity.Email,
		PasswordHash: hash,
		Profile:      domain.StudentProfile{},
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			existing, getErr := s.users.GetByEmail(ctx, identity.Email)
			if getErr != nil {
				return nil, apperrors.NewInternalError(getErr)
			}
			return existing, nil
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("social user created", zap.String("user_id", user.ID), zap.String("provider", identity.Provider))
	s.publishRegistered(ctx, user, identity.Provider)
	return user, nil
}

// GetProfile returns the account registered under email.
func (s *AuthService) GetProfile(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("user", map[string]any{"email": email})
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

func (s *AuthService) publishRegistered(ctx context.Context, user *domain.User, source string) {
	if s.dispatcher == nil {
		return
	}
	event := events.New(events.EventUserRegistered, events.UserRegisteredPayload{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role()),
		Source: source,
	})
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish user_registered failed", zap.Error(err))
	}
}
