package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"account-service/internal/config"
	"account-service/internal/db"
	"account-service/internal/graph"
	"account-service/internal/logger"
	"account-service/internal/role"
	"account-service/internal/transport"
	"account-service/internal/user"

	"go.uber.org/zap"
)

func setupRouter(h *transport.Handler, gql http.Handler) http.Handler {
	mux := http.NewServeMux()
	h.Register(mux)
	mux.Handle("POST /graphql", gql)

	return logger.RequestIDMiddleware(
		logger.LoggingMiddleware(
			logger.RecoverMiddleware(mux),
		),
	)
}

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database := db.InitDB(cfg)
	defer database.Close()

	if err := db.Migrate(ctx, database, cfg.DBDriver); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	roleRepo := role.NewRepository(database)
	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, roleRepo, user.NewBcryptHasher(cfg.BcryptCost))

	schema, err := graph.NewSchema(&graph.Resolver{UserSvc: userSvc, Roles: roleRepo})
	if err != nil {
		log.Fatal("failed to build graphql schema", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           setupRouter(transport.NewHandler(userSvc, roleRepo, database), graph.Handler(schema)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("account service listening",
			zap.String("addr", srv.Addr),
			zap.String("db_driver", cfg.DBDriver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
