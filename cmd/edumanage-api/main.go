package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/edumanage-api/api/swagger"
	"github.com/noah-isme/edumanage-api/internal/handler"
	"github.com/noah-isme/edumanage-api/internal/middleware"
	"github.com/noah-isme/edumanage-api/internal/repository"
	"github.com/noah-isme/edumanage-api/internal/service"
	"github.com/noah-isme/edumanage-api/pkg/config"
	"github.com/noah-isme/edumanage-api/pkg/database"
	"github.com/noah-isme/edumanage-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/edumanage-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/edumanage-api/pkg/middleware/requestid"
)

// @title EduManage API
// @version 1.0.0
// @description Student roster, course catalog and daily attendance
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := service.NewMetricsService()

	startCtx, cancel := context.WithTimeout(context.Background(), cfg.Store.Timeout)
	docs, closeDocs, err := openDocumentStore(startCtx, cfg, logr)
	if err != nil {
		cancel()
		logr.Sugar().Fatalw("failed to open document store", "driver", cfg.Store.Driver, "error", err)
	}
	defer closeDocs()

	store := repository.NewStore(docs, repository.StoreOptions{
		Namespace:  cfg.Store.Namespace,
		MaxRetries: cfg.Store.MaxRetries,
		Logger:     logr,
		Observer:   metrics,
	})
	if cfg.Store.SeedDemoData {
		if err := store.SeedDemoData(startCtx); err != nil {
			cancel()
			logr.Sugar().Fatalw("failed to seed demo data", "error", err)
		}
	}
	cancel()

	validate := validator.New()
	service.RegisterValidations(validate)

	accounts := make(map[string]string, len(cfg.Session.Accounts))
	for _, account := range cfg.Session.Accounts {
		accounts[account.Email] = account.Password
	}
	sessionSvc, err := service.NewSessionService(store, validate, logr, service.SessionConfig{
		Accounts: accounts,
		Role:     cfg.Session.Role,
	})
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare session accounts", "error", err)
	}
	rosterSvc := service.NewRosterService(store, validate, logr)
	catalogSvc := service.NewCatalogService(store, validate, logr)
	attendanceSvc := service.NewAttendanceService(store, validate, logr, metrics)
	exportSvc := service.NewExportService(store, attendanceSvc, logr, nil, nil)
	dashboardSvc := service.NewDashboardService(store, logr)

	metricsHandler := handler.NewMetricsHandler(metrics, store)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r.Group(cfg.APIPrefix), handler.Handlers{
		Session:    handler.NewSessionHandler(sessionSvc),
		Dashboard:  handler.NewDashboardHandler(dashboardSvc),
		Students:   handler.NewStudentHandler(rosterSvc, attendanceSvc),
		Courses:    handler.NewCourseHandler(catalogSvc),
		Attendance: handler.NewAttendanceHandler(attendanceSvc, exportSvc),
	}, middleware.SessionGuard(sessionSvc))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "store", cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}

// openDocumentStore connects the backend selected by STORE_DRIVER.
func openDocumentStore(ctx context.Context, cfg *config.Config, logr *zap.Logger) (repository.DocumentStore, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		docs := repository.NewPostgresDocumentStore(db)
		if err := docs.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return docs, func() { _ = db.Close() }, nil
	case config.StoreDriverRedis:
		client, err := database.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		docs := repository.NewRedisDocumentStore(client)
		return docs, func() { _ = docs.Close() }, nil
	case config.StoreDriverMemory, "":
		logr.Warn("using in-memory document store; data is lost on restart")
		return repository.NewMemoryDocumentStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
