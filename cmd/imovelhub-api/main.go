package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"imovelhub-api/internal/config"
	"imovelhub-api/internal/database"
	httpapi "imovelhub-api/internal/http"
	"imovelhub-api/internal/logger"
	"imovelhub-api/internal/render"
	"imovelhub-api/internal/repository"
	"imovelhub-api/internal/service"
	"imovelhub-api/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "imovelhub-api")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	sessions := store.NewRedisKV(redisClient)

	templatesRepo := repository.NewPostgresTemplatesRepository(db)
	propertiesRepo := repository.NewPostgresPropertiesRepository(db)
	companiesRepo := repository.NewPostgresCompaniesRepository(db)
	usersRepo := repository.NewPostgresUsersRepository(db)

	storage := service.NewStorageResolver(cfg.Storage.PublicBaseURL)
	qr := render.NewQRGenerator(256)
	analytics := service.NewAnalyticsClient(cfg.Analytics.Endpoint, cfg.Analytics.Enabled, log)

	authSvc := service.NewAuthService(usersRepo, sessions, cfg.Auth.UserinfoURL,
		time.Duration(cfg.Auth.SessionTTL)*time.Second, log)
	templateSvc := service.NewTemplateService(templatesRepo, log)
	propertySvc := service.NewPropertyService(propertiesRepo, storage, log)
	companySvc := service.NewCompanyService(companiesRepo, storage, log)
	userSvc := service.NewUserService(usersRepo, log)
	renderSvc := service.NewRenderService(templatesRepo, propertiesRepo, companiesRepo,
		storage, qr, analytics, cfg.Site.BaseURL, log)
	exportSvc := service.NewExportService(propertiesRepo, log)
	dashboardSvc := service.NewDashboardService(propertiesRepo, templatesRepo, log)

	mw := httpapi.NewAuthMiddleware(authSvc, log)
	router := httpapi.NewRouter(log)
	router.RegisterRoutes(httpapi.Handlers{
		Auth:       httpapi.NewAuthHandler(authSvc, log),
		Templates:  httpapi.NewTemplateHandler(templateSvc, log),
		Properties: httpapi.NewPropertyHandler(propertySvc, log),
		Renders:    httpapi.NewRenderHandler(renderSvc, log),
		Company:    httpapi.NewCompanyHandler(companySvc, log),
		Users:      httpapi.NewUserHandler(userSvc, log),
		Exports:    httpapi.NewExportHandler(exportSvc, log),
		Dashboard:  httpapi.NewDashboardHandler(dashboardSvc, log),
	}, mw)

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			log.Error("HTTP server failed", zap.Error(err))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
}
