package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gatekeeper/internal/app/server/api"
	"gatekeeper/internal/app/server/config"
	"gatekeeper/internal/domain/user"
	"gatekeeper/internal/embedder"
	"gatekeeper/internal/infrastructure/storage/photostore"
	"gatekeeper/internal/infrastructure/storage/postgres"
	"gatekeeper/internal/utils/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	storage, err := postgres.New(cfg)
	if err != nil {
		log.Error("storage init failed", "error", err)
		os.Exit(1)
	}
	defer storage.Close()

	photos := photostore.New(cfg.Storage.PhotosDir, cfg.Storage.CapturesDir, log)
	if err := photos.EnsureDirs(); err != nil {
		log.Error("photo storage init failed", "error", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(storage.Pool(), log)
	userService := user.NewService(userRepo, log)
	if err := userService.EnsureDefaultAdmin(context.Background(),
		cfg.Auth.AdminIdentifier, cfg.Auth.AdminPassword); err != nil {
		log.Error("default admin bootstrap failed", "error", err)
		os.Exit(1)
	}

	provider := embedder.Select(cfg.Embedder.Name, cfg.Embedder.Endpoint, log)
	log.Info("embedder selected", "name", provider.Name())

	mux := api.New(cfg, storage, photos, provider, log)
	server := &http.Server{
		Addr:    cfg.Server.RunAddress,
		Handler: mux,
	}

	go func() {
		log.Info("server starting", "address", cfg.Server.RunAddress, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
