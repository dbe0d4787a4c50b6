package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrsync/internal/api"
	"hrsync/internal/inspector"
	"hrsync/internal/platform/config"
	cryptoutil "hrsync/internal/platform/crypto"
	"hrsync/internal/report"
	"hrsync/internal/session"
	"hrsync/internal/store"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, cleanup, err := buildStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("session storage: %v", err)
	}
	defer cleanup()

	recorder := inspector.NewRecorder()
	manager := session.NewManager(storage)
	client := api.New(cfg.APIBaseURL, api.Options{
		Timeout:           cfg.APITimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.RequestBurst,
		Tokens:            manager,
		CallLog:           recorder,
	})
	manager.Attach(client)

	if err := manager.Restore(ctx); err != nil {
		slog.Warn("session restore failed", "err", err)
	}
	if manager.User() == nil && cfg.LoginEmail != "" {
		if _, err := manager.Login(ctx, cfg.LoginEmail, cfg.LoginPassword); err != nil {
			log.Fatalf("login failed: %v", err)
		}
		slog.Info("signed in", "email", cfg.LoginEmail)
	}

	personnel := store.NewPersonnel(client)
	leaves := store.NewLeaves(client)
	advances := store.NewAdvances(client)
	timesheets := store.NewTimesheets(client)
	pending := store.NewPending(client)

	go pending.Run(ctx, cfg.PendingPollInterval, func() bool {
		return manager.Valid() && manager.Privileged()
	})

	handler := inspector.NewHandler(recorder)
	handler.State = func() map[string]any {
		return map[string]any{
			"personnel":  personnel.Snapshot(),
			"leaves":     leaves.Snapshot(),
			"advances":   advances.Snapshot(),
			"timesheets": timesheets.Snapshot(),
			"pending":    pending.Snapshot(),
		}
	}
	handler.Metrics = func() map[string]any {
		return client.Metrics().Snapshot()
	}
	handler.Report = func(w io.Writer) error {
		return report.Write(w, report.Summary{
			User:       manager.User(),
			Timesheets: timesheets.Mine(),
			Leaves:     leaves.Mine(),
			Advances:   advances.Mine(),
		})
	}

	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	server := &http.Server{Addr: cfg.InspectorAddr, Handler: router}
	go func() {
		slog.Info("inspector listening", "addr", cfg.InspectorAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("inspector server failed: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Warn("inspector shutdown failed", "err", err)
	}
}

// buildStorage picks the session backend: Postgres when a DSN is set,
// an encrypted file when a path is set, in-memory otherwise.
func buildStorage(ctx context.Context, cfg config.Config) (session.Storage, func(), error) {
	noop := func() {}

	if cfg.SessionDSN != "" {
		pool, err := pgxpool.New(ctx, cfg.SessionDSN)
		if err != nil {
			return nil, noop, err
		}
		storage, err := session.NewPostgres(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, noop, err
		}
		return storage, pool.Close, nil
	}

	if cfg.SessionFile != "" {
		crypto, err := cryptoutil.NewFromPassphrase(cfg.SessionPassphrase, "hrsync-session")
		if err != nil {
			return nil, noop, err
		}
		return session.NewFile(cfg.SessionFile, crypto), noop, nil
	}

	return session.NewMemory(), noop, nil
}
