package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"unbelong/internal/api"
	"unbelong/internal/auth"
	"unbelong/internal/server"
	"unbelong/pkg/database"
	"unbelong/pkg/utils"
)

func main() {
	configPath := flag.String("config", "", "config file (default $UNBELONG_CONFIG or config.toml)")
	flag.Parse()

	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("load .env", slog.Any("error", err))
	}

	cfg, err := utils.LoadConfig(*configPath)
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := utils.NewLogger(os.Stderr, cfg.Log)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg utils.Config, logger *slog.Logger) error {
	if cfg.Log.SlogLevel() > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.OpenAndMigrate(database.Config{Path: cfg.Session.DBPath})
	if err != nil {
		return err
	}
	defer db.Close()

	client, err := api.NewClient(cfg.API.BaseURL)
	if err != nil {
		return err
	}

	creds, err := auth.NewCredentials(cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.PasswordHash)
	if err != nil {
		return err
	}
	sessions := auth.NewSessions(auth.TokenService{
		Secret:   []byte(cfg.Session.Secret),
		Issuer:   cfg.Session.Issuer,
		Duration: cfg.Session.Duration,
	}, auth.NewRepo(db))

	handler, err := server.NewHandler(server.Deps{
		Config:      cfg,
		DB:          db,
		API:         client,
		Credentials: creds,
		Sessions:    sessions,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web server listening",
			slog.String("addr", cfg.Server.Addr),
			slog.String("api", client.BaseURL()),
			slog.String("db", cfg.Session.DBPath),
		)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
