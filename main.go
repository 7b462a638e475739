package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"secret-pages-service/internal/auth"
	"secret-pages-service/internal/config"
	"secret-pages-service/internal/db"
	"secret-pages-service/internal/handlers"
	"secret-pages-service/internal/logger"
	"secret-pages-service/internal/middleware"
	"secret-pages-service/internal/observability"
	"secret-pages-service/internal/rabbitmq"
	"secret-pages-service/internal/repositories"
	"secret-pages-service/internal/social"
	"secret-pages-service/internal/telemetry"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.Log)
	defer logger.Sync()

	logger.Info("starting secret-pages-service",
		zap.String("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.Bool("telemetry", cfg.Telemetry.Enabled),
	)

	database, err := db.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to db", zap.Error(err))
	}
	defer database.Close()

	shutdownTracing, err := observability.SetupTracing(context.Background(), cfg.Telemetry)
	if err != nil {
		logger.Fatal("failed to set up tracing", zap.Error(err))
	}

	publisher := rabbitmq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
	defer publisher.Close()
	emitter := telemetry.NewAuditEmitter(publisher, cfg.AMQP.RoutingKey, cfg.Telemetry.ServiceName, cfg.Telemetry.Environment)

	tokens := auth.NewTokenService(cfg.Auth)

	accountRepo := repositories.NewAccountRepo(database)
	profileRepo := repositories.NewProfileRepo(database)
	secretRepo := repositories.NewSecretMessageRepo(database)
	friendshipRepo := repositories.NewFriendshipRepo(database)

	socialService := social.NewService(profileRepo, secretRepo, friendshipRepo)

	authHandler := handlers.NewAuthHandler(accountRepo, tokens, emitter)
	profileHandler := handlers.NewProfileHandler(profileRepo)
	secretHandler := handlers.NewSecretHandler(secretRepo)
	friendsHandler := handlers.NewFriendsHandler(socialService, emitter)

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(logger.Recovery())
	router.Use(logger.RequestLogger())
	router.Use(observability.HTTPMetricsMiddleware())
	if cfg.Telemetry.Enabled {
		router.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	authMiddleware := middleware.AuthMiddleware(tokens)

	router.POST("/auth/register", authHandler.Register)
	router.POST("/auth/login", authHandler.Login)
	router.GET("/auth/me", authMiddleware, authHandler.Me)
	router.DELETE("/auth/account", authMiddleware, authHandler.DeleteAccount)

	router.POST("/profile/sync", authMiddleware, profileHandler.Sync)

	router.GET("/secret-message", authMiddleware, secretHandler.Get)
	router.PUT("/secret-message", authMiddleware, secretHandler.Save)

	router.GET("/friends", authMiddleware, friendsHandler.List)
	router.GET("/friends/requests", authMiddleware, friendsHandler.ListRequests)
	router.POST("/friends/requests", authMiddleware, friendsHandler.SendRequest)
	router.POST("/friends/requests/:requester_id/accept", authMiddleware, friendsHandler.AcceptRequest)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterDebugRoutes(router, emitter, cfg.Debug)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()
	logger.Info("server listening", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Error("tracing shutdown failed", zap.Error(err))
	}
}
