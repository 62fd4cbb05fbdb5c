package http

import (
	"context"
	"errors"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/api/dto"
	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/observability"
	apperrors "github.com/ArigalaPunithKumar/Alumnus-Backend/pkg/util"
)

// MiddlewareConfig controls the global middleware chain.
type MiddlewareConfig struct {
	Logger               *zap.Logger
	Metrics              *observability.Metrics
	Timeout              time.Duration
	ExposeInternalErrors bool
}

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
// The request logger wraps the error handler so it records rendered statuses.
func RegisterMiddlewares(app *fiber.App, cfg MiddlewareConfig) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout > 0 {
		app.Use(requestTimeoutMiddleware(cfg.Timeout))
	}
	app.Use(observability.RequestLogger(logger, cfg.Metrics))
	app.Use(errorHandlingMiddleware(logger, cfg.Metrics, cfg.ExposeInternalErrors))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics, exposeInternal bool) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := translate(err)
				metrics.RecordError(c.Route().Path, c.Method(), domainErr.Code)
				if domainErr.HTTPStatus >= http.StatusInternalServerError {
					logger.Error("request failed", zap.String("path", c.Path()), zap.Error(domainErr))
				}
				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(dto.ErrorDetails{
					Timestamp: time.Now().UTC(),
					Code:      domainErr.Code,
					Message:   domainErr.PublicMessage(exposeInternal),
					Details:   "uri=" + c.Path(),
					Fields:    domainErr.Details,
				})
				err = nil
			}
		}()
		return c.Next()
	}
}

// translate maps framework errors onto the domain taxonomy.
func translate(err error) *apperrors.DomainError {
	var fiberErr *fiber.Error
	if !errors.As(err, &fiberErr) {
		return apperrors.ToDomainError(err)
	}
	switch {
	case fiberErr.Code == http.StatusNotFound:
		return apperrors.NewNotFound("resource", nil).(*apperrors.DomainError)
	case fiberErr.Code == http.StatusUnauthorized:
		return apperrors.NewUnauthorized(fiberErr.Message).(*apperrors.DomainError)
	case fiberErr.Code == http.StatusForbidden:
		return apperrors.ErrAccessDenied
	case fiberErr.Code >= http.StatusInternalServerError:
		return apperrors.NewInternalError(fiberErr).(*apperrors.DomainError)
	case fiberErr.Code == http.StatusBadRequest || fiberErr.Code == http.StatusUnprocessableEntity:
		return apperrors.NewValidationError(fiberErr.Message, nil).(*apperrors.DomainError)
	default:
		return apperrors.NewDomainError(http.StatusText(fiberErr.Code), fiberErr.Message, fiberErr.Code, nil)
	}
}
