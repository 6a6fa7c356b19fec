package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/arledger/internal/config"
	"github.com/MrJamesThe3rd/arledger/internal/database"
	arHttp "github.com/MrJamesThe3rd/arledger/internal/http"
	agingHandler "github.com/MrJamesThe3rd/arledger/internal/http/aging"
	"github.com/MrJamesThe3rd/arledger/internal/http/auth"
	ledgerHandler "github.com/MrJamesThe3rd/arledger/internal/http/ledger"
	previewHandler "github.com/MrJamesThe3rd/arledger/internal/http/preview"
	"github.com/MrJamesThe3rd/arledger/internal/importer"
	"github.com/MrJamesThe3rd/arledger/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/arledger/internal/ledger/store"
	"github.com/MrJamesThe3rd/arledger/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Logger())
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log = log.With(zap.String("app", cfg.App.Name))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.ConnectionString(), cfg.Pool())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := database.Migrate(ctx, db, ledgerStore.Schema); err != nil {
			return err
		}

		log.Info("schema applied")
	}

	authn := auth.New(cfg.Auth.Secret, log)
	if !authn.Enabled() {
		log.Warn("AUTH_SECRET is empty, API is unauthenticated")
	}

	var (
		ledgerService = ledger.NewService(ledgerStore.New(db), log)
		importService = importer.NewService()
	)

	var (
		ledgerH  = ledgerHandler.NewHandler(ledgerService)
		agingH   = agingHandler.NewHandler(ledgerService)
		previewH = previewHandler.NewHandler(importService)
	)

	router := arHttp.New(arHttp.Options{
		Logger:         log,
		Auth:           authn,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}, ledgerH, agingH, previewH)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
