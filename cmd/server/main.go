package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"todo_api/internal/api"
	"todo_api/internal/api/middleware"
	"todo_api/internal/app/service"
	"todo_api/internal/common/security"
	"todo_api/internal/domain/repository"
	"todo_api/internal/logging"
	"todo_api/internal/platform/config"
	"todo_api/internal/platform/database"
	"todo_api/internal/platform/redisdb"
)

func main() {
	cfg := config.Load()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	db := database.Connect(cfg.DBConnStr)
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Could not run migrations: %v", err)
	}

	rdb := redisdb.Connect(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer rdb.Close()

	tokens := security.NewTokenManager(cfg.JWTKey, cfg.JWTExp)
	limiter := middleware.NewRateLimiter(rdb, logger)

	userRepo := repository.NewPgUserRepository(db)
	todoRepo := repository.NewPgTodoRepository(db)

	authService := service.NewAuthService(userRepo, tokens, cfg.BcryptCost, logger)
	userService := service.NewUserService(userRepo, cfg.DefaultPageSize, cfg.MaxPageSize)
	todoService := service.NewTodoService(todoRepo, cfg.DefaultPageSize, cfg.MaxPageSize, logger)

	router := api.NewRouter(cfg, tokens, limiter, authService, userService, todoService, logger)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()

	<-stop

	log.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
