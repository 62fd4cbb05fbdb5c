package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/ArigalaPunithKumar/Alumnus-Backend/internal/api/http"
	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/api/http/handlers"
	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/auth"
	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/config"
	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/mail"
	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/observability"
	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/persistence"
	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/repository"
	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/service"
	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/social"
	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/worker"
)

const notificationQueueSize = 256

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := openUserStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open user store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer store.close()

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()
	resetRepo := repository.NewPasswordResetRepository(redis.Client)

	providers := social.NewRegistry()
	if cfg.Social.GoogleClientID != "" {
		jwks, err := social.NewGoogleJWKS(cfg.Social.GoogleJWKSURL, logger)
		if err != nil {
			logger.Warn("google sign-in disabled", zap.Error(err))
		} else {
			defer jwks.EndBackground()
			providers.Register(social.ProviderGoogle, social.NewGoogleVerifier(cfg.Social.GoogleClientID, jwks.Keyfunc))
		}
	}
	logger.Info("social providers", zap.Strings("enabled", providers.Providers()))

	notifications := worker.NewNotificationWorker(notificationQueueSize, logger)
	service.NewNotificationService(notifications, mail.NewSender(cfg.SMTP, logger), logger, cfg.SMTP, cfg.App).RegisterHandlers()
	notifications.Start(ctx)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	authService, err := service.NewAuthService(service.AuthDependencies{
		UserRepo:   store.users,
		Providers:  providers,
		Tokens:     tokens,
		Dispatcher: notifications,
		BcryptCost: cfg.Auth.BcryptCost,
		Logger:     logger,
	})
	if err != nil {
		logger.Fatal("failed to build auth service", zap.Error(err))
	}
	resetService := service.NewPasswordResetService(service.PasswordResetDependencies{
		UserRepo:          store.users,
		PasswordResetRepo: resetRepo,
		Dispatcher:        notifications,
		TokenTTL:          cfg.Auth.PasswordResetTTL(),
		BcryptCost:        cfg.Auth.BcryptCost,
		Logger:            logger,
	})

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: !cfg.IsDevelopment(),
	})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:               logger,
		Metrics:              metrics,
		Timeout:              cfg.App.RequestTimeout(),
		ExposeInternalErrors: cfg.App.ExposeInternalErrors,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, metrics, map[string]handlers.Pinger{
			cfg.Store.Driver: store.pinger,
			"redis":          redis,
		}),
		Auth:           handlers.NewAuthHandler(authService, resetService),
		Users:          handlers.NewUsersHandler(authService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, logger),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("fiber shutdown", zap.Error(err))
	}
	notifications.Stop()
}

type userStore struct {
	users  repository.UserRepository
	pinger handlers.Pinger
	close  func()
}

// openUserStore connects the configured credential store and makes sure the
// unique email constraint exists before serving traffic.
func openUserStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*userStore, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.Pool, logger); err != nil {
				pg.Close()
				return nil, err
			}
		}
		return &userStore{
			users:  repository.NewPostgresUserRepository(pg.Pool),
			pinger: pg,
			close:  pg.Close,
		}, nil
	default:
		m, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, err
		}
		if err := m.EnsureIndexes(ctx, logger); err != nil {
			m.Close(context.Background())
			return nil, err
		}
		return &userStore{
			users:  repository.NewMongoUserRepository(m.Users),
			pinger: m,
			close: func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				m.Close(closeCtx)
			},
		}, nil
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
