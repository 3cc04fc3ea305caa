// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

// Command verso is the entry point for the Verso interactive catalog.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the sqlite snapshot database.
//  4. Build the in-memory store and restore the latest snapshot.
//  5. Wire services, the external catalog client, and the import pool.
//  6. Run the interactive loop until exit or OS signal.
//  7. Drain the import pool and flush the final snapshot.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ngocanhtran/verso/internal/cli"
	"github.com/ngocanhtran/verso/internal/core/account"
	"github.com/ngocanhtran/verso/internal/core/album"
	"github.com/ngocanhtran/verso/internal/core/importer"
	"github.com/ngocanhtran/verso/internal/core/review"
	"github.com/ngocanhtran/verso/internal/core/song"
	"github.com/ngocanhtran/verso/internal/genius"
	"github.com/ngocanhtran/verso/internal/platform/config"
	"github.com/ngocanhtran/verso/internal/snapshot"
	"github.com/ngocanhtran/verso/internal/storage/memory"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	// Logs go to stderr; stdout belongs to the interactive session.
	rawLog := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", "verso"))
	slog.SetDefault(log)

	log.Info("[Verso] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "verso"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("data_path", cfg.DataPath),
	)

	// ── 3. Snapshot database ──────────────────────────────────────────────
	db, err := snapshot.Open(cfg.DataPath)
	must(log, err, "open snapshot database")
	defer func() {
		log.Info("closing snapshot database")
		if cerr := db.Close(); cerr != nil {
			log.Error("snapshot database close error", slog.Any("error", cerr))
		}
	}()

	// ── 4. Store + restore ────────────────────────────────────────────────
	store := memory.New()
	persister := snapshot.NewPersister(db, store, log)
	must(log, persister.Load(), "restore snapshot")
	store.SetOnCommit(persister.MarkDirty)

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	accountService := account.NewService(store, store, log)
	songService := song.NewService(store, log)
	albumService := album.NewService(store, store, store, log)
	reviewService := review.NewService(store, store, store, log)

	geniusClient := genius.NewClient(cfg.GeniusBaseURL, cfg.GeniusLyricsBaseURL, cfg.GeniusAccessToken, log)
	importService := importer.NewService(geniusClient, store, store, cfg.ImportWorkers, cfg.LyricsFetchTimeout, log)

	app := cli.New(accountService, songService, albumService, reviewService, importService,
		os.Stdin, os.Stdout, log)

	// ── 6. Interactive loop ───────────────────────────────────────────────
	// An OS signal cancels the session context; the loop notices between
	// prompts.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	runErr := app.Run(ctx)

	// ── 7. Shutdown ───────────────────────────────────────────────────────
	log.Info("shutting_down")
	importService.Close()
	if err := persister.Close(); err != nil {
		log.Error("snapshot flush error", slog.Any("error", err))
	}

	if runErr != nil {
		log.Error("session error", slog.Any("error", runErr))
		os.Exit(1)
	}
	log.Info("stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
