package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/rbe-platform/backend/api/handler"
	"github.com/rbe-platform/backend/internal/config"
	"github.com/rbe-platform/backend/internal/infrastructure/monitor"
	pgInfra "github.com/rbe-platform/backend/internal/infrastructure/postgres"
	redisInfra "github.com/rbe-platform/backend/internal/infrastructure/redis"
	"github.com/rbe-platform/backend/internal/middleware"
	"github.com/rbe-platform/backend/internal/router"
	"github.com/rbe-platform/backend/internal/services/lifecycle"
	"github.com/rbe-platform/backend/pkg/httpcontext"
	"github.com/rbe-platform/backend/pkg/logger"
	"github.com/rbe-platform/backend/pkg/token"
	"github.com/rbe-platform/backend/repository/postgres"
	authUC "github.com/rbe-platform/backend/usecase/auth"
	cityUC "github.com/rbe-platform/backend/usecase/city"
	contributionUC "github.com/rbe-platform/backend/usecase/contribution"
	"github.com/rbe-platform/backend/usecase/metrics"
	principleUC "github.com/rbe-platform/backend/usecase/principle"
	resourceUC "github.com/rbe-platform/backend/usecase/resource"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	if cfg.JWT.Secret == "" {
		zapLogger.Fatal("JWT_SECRET is required")
	}

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	// Rate limiting degrades gracefully without redis.
	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
		redisClient = nil
	} else {
		manager.Register("redis", func(ctx context.Context) error {
			return redisClient.Close()
		})
	}

	mon := monitor.New(pool, redisClient, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	resourceRepo := postgres.NewResourceRepository(pool)
	principleRepo := postgres.NewPrincipleRepository(pool)
	cooperationRepo := postgres.NewCooperationRepository(pool)
	automationRepo := postgres.NewAutomationRepository(pool)
	environmentalRepo := postgres.NewEnvironmentalRepository(pool)
	socialRepo := postgres.NewSocialRepository(pool)
	cityRepo := postgres.NewCityRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	contributionRepo := postgres.NewContributionRepository(pool)

	tokens := token.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry)

	resourceUseCase := resourceUC.New(resourceRepo, zapLogger)
	principleUseCase := principleUC.New(principleRepo, zapLogger)
	cooperationUseCase := metrics.NewCooperation(cooperationRepo, zapLogger)
	automationUseCase := metrics.NewAutomation(automationRepo, zapLogger)
	environmentalUseCase := metrics.NewEnvironmental(environmentalRepo, zapLogger)
	socialUseCase := metrics.NewSocial(socialRepo, zapLogger)
	cityUseCase := cityUC.New(cityRepo, zapLogger)
	authUseCase := authUC.New(userRepo, tokens, zapLogger)
	contributionUseCase := contributionUC.New(contributionRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Index:         apiHandler.NewIndexHandler(cfg.AppName, version, ctxAdapter, zapLogger),
		Health:        apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
		Auth:          apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Resource:      apiHandler.NewResourceHandler(resourceUseCase, ctxAdapter, zapLogger),
		Principle:     apiHandler.NewPrincipleHandler(principleUseCase, ctxAdapter, zapLogger),
		Cooperation:   apiHandler.NewCooperationHandler(cooperationUseCase, ctxAdapter, zapLogger),
		Automation:    apiHandler.NewAutomationHandler(automationUseCase, ctxAdapter, zapLogger),
		Environmental: apiHandler.NewEnvironmentalHandler(environmentalUseCase, ctxAdapter, zapLogger),
		Social:        apiHandler.NewSocialHandler(socialUseCase, ctxAdapter, zapLogger),
		City:          apiHandler.NewCityHandler(cityUseCase, ctxAdapter, zapLogger),
		Contribution:  apiHandler.NewContributionHandler(contributionUseCase, ctxAdapter, zapLogger),
	}

	mw := router.Middlewares{
		Auth:      middleware.JWTAuth(tokens, zapLogger),
		APILimit:  middleware.NewRateLimit(redisClient, "api", cfg.RateLimit.APIWindow, cfg.RateLimit.APIMax, zapLogger),
		AuthLimit: middleware.NewRateLimit(redisClient, "auth", cfg.RateLimit.AuthWindow, cfg.RateLimit.AuthMax, zapLogger),
	}

	r := router.New(handlers, mw)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
