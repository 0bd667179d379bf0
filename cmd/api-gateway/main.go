package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/studentools/studentools-api/api/swagger"
	"github.com/studentools/studentools-api/internal/handler"
	"github.com/studentools/studentools-api/internal/middleware"
	"github.com/studentools/studentools-api/internal/service"
	"github.com/studentools/studentools-api/pkg/cache"
	"github.com/studentools/studentools-api/pkg/config"
	"github.com/studentools/studentools-api/pkg/logger"
	corsmiddleware "github.com/studentools/studentools-api/pkg/middleware/cors"
	reqidmiddleware "github.com/studentools/studentools-api/pkg/middleware/requestid"
)

// @title studentools API
// @version 1.0.0
// @description Student utilities: timetable generation, GPA, citations, unit conversion, feedback.
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	validate := validator.New()
	metrics := service.NewMetricsService()

	store := service.NewMemoryProposalStore(cfg.Proposals.TTL)
	if cfg.Proposals.Store == config.ProposalStoreRedis {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, using in-memory proposal store", "error", err)
		} else {
			defer redisClient.Close() //nolint:errcheck
			store = service.NewRedisProposalStore(redisClient, cfg.Proposals.TTL)
		}
	}

	timetableSvc := service.NewTimetableService(cfg.Scheduler, store, validate, logr, metrics)
	exportSvc := service.NewExportService(logr, nil, nil, nil, nil)
	gpaSvc := service.NewGPAService(validate, logr)
	citationSvc := service.NewCitationService(cfg.Citations, nil, validate, logr)
	unitsSvc := service.NewUnitsService(validate, logr)
	feedbackSvc := service.NewFeedbackService(cfg.Feedback, validate, logr)
	feedbackSvc.Start(ctx)
	defer feedbackSvc.Stop()

	timetableHandler := handler.NewTimetableHandler(timetableSvc, exportSvc)
	gpaHandler := handler.NewGPAHandler(gpaSvc)
	citationHandler := handler.NewCitationHandler(citationSvc)
	unitsHandler := handler.NewUnitsHandler(unitsSvc)
	feedbackHandler := handler.NewFeedbackHandler(feedbackSvc)
	metricsHandler := handler.NewMetricsHandler(metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	lightweight := gin.HandlerFunc(func(c *gin.Context) { c.Next() })
	exportTier := lightweight
	lookupTier := lightweight
	if cfg.RateLimit.Enabled {
		lightweight = middleware.NewRateLimiter(middleware.TierLightweight, cfg.RateLimit.LightweightPerMin, metrics).Middleware()
		exportTier = middleware.NewRateLimiter(middleware.TierExport, cfg.RateLimit.ExportPerMin, metrics).Middleware()
		lookupTier = middleware.NewRateLimiter(middleware.TierLookup, cfg.RateLimit.LookupPerMin, metrics).Middleware()
	}

	timetable := api.Group("/timetable")
	{
		timetable.POST("/generate", lightweight, timetableHandler.Generate)
		timetable.POST("/conflicts", lightweight, timetableHandler.CheckConflicts)
		timetable.GET("/proposals/:id/export", exportTier, timetableHandler.Export)
	}

	gpa := api.Group("/gpa")
	{
		gpa.POST("/calculate", lightweight, gpaHandler.Calculate)
		gpa.GET("/scales", lightweight, gpaHandler.Scales)
	}

	api.POST("/citations/generate", lookupTier, citationHandler.Generate)

	units := api.Group("/units")
	{
		units.POST("/convert", lightweight, unitsHandler.Convert)
		units.GET("/catalog", lightweight, unitsHandler.Catalog)
	}

	api.POST("/feedback", lightweight, feedbackHandler.Submit)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown failed", "error", err)
	}
}
