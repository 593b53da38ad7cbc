package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"recipebox/auth"
	"recipebox/config"
	"recipebox/db"
	"recipebox/logx"
	"recipebox/middleware"
	"recipebox/mq"
	"recipebox/profile"
	"recipebox/ratelim"
	"recipebox/rdx"
	"recipebox/recipes"
	"recipebox/routes"
	"recipebox/store"
)

// setupEmitter publishes events to Redis when it is configured and
// reachable, and drops them otherwise.
func setupEmitter(ctx context.Context, cfg *config.Config) (mq.Emitter, func()) {
	if cfg.RedisAddr == "" {
		logrus.Info("REDIS_ADDR not set; domain events are disabled")
		return mq.Nop{}, func() {}
	}
	conn, err := rdx.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logrus.WithError(err).Warn("Redis unavailable; domain events are disabled")
		return mq.Nop{}, func() {}
	}
	return mq.NewRedisEmitter(conn), func() { conn.Close() }
}

func main() {
	cfg := config.Load()
	logx.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()
	if err := db.Connect(ctx, cfg.MongoURL, cfg.MongoDB); err != nil {
		logrus.WithError(err).Fatal("MongoDB client could not be created")
	}
	go func() {
		if err := db.CreateIndexes(ctx); err != nil {
			logrus.WithError(err).Warn("indexes were not created")
		}
	}()

	events, closeEvents := setupEmitter(ctx, cfg)
	defer closeEvents()

	users := store.NewUsers(db.UserCollection)
	recipeStore := store.NewRecipes(db.RecipeCollection)

	rateLimiter := ratelim.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	stop := make(chan struct{})
	go rateLimiter.Run(stop)

	router := routes.SetupRouter(routes.Deps{
		Users:       users,
		Auth:        auth.NewHandler(auth.NewService(users, auth.NewTokenIssuer(cfg.TokenSecret), events)),
		Profile:     profile.NewHandler(profile.NewService(users, events)),
		Recipes:     recipes.NewHandler(recipes.NewService(recipeStore, events)),
		RateLimiter: rateLimiter,
	})

	handler := middleware.Stack(router, cfg.AllowedOrigins, db.Ready)

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		close(stop)
	})

	go func() {
		logrus.WithField("addr", cfg.Port).Info("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("ListenAndServe failed")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logrus.Info("shutdown signal received; shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}
	if err := db.Disconnect(shutdownCtx); err != nil {
		logrus.WithError(err).Error("MongoDB disconnect failed")
	}
	logrus.Info("server stopped")
}
