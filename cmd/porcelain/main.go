package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"porcelain/internal/config"
	"porcelain/internal/drafting"
	"porcelain/internal/http/handlers"
	"porcelain/internal/repos"
	"porcelain/internal/validate"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if cfg.AdminAuth() {
		if !validate.Password(cfg.AdminPassword) {
			log.Printf("[warn] ADMIN_PASSWORD does not meet the login rules; sign-in will be refused")
		}
		if err := repos.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatal(err)
		}
	} else {
		log.Printf("[warn] ADMIN_PASSWORD unset; /admin is open to every visitor")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var gen drafting.Generator
	gem, err := drafting.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	switch {
	case errors.Is(err, drafting.ErrUnavailable):
		log.Printf("[warn] GEMINI_API_KEY unset; listing drafts are disabled")
	case err != nil:
		log.Printf("[warn] drafting client: %v", err)
	default:
		gen = gem
	}

	deps := handlers.NewDeps(ctx, db, cfg, gen)
	app := handlers.NewApp(deps, cfg)

	go func() {
		<-ctx.Done()
		log.Printf("[shutdown] draining")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("[shutdown] %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
	// ctx is cancelled here, so in-flight drafts give up promptly.
	deps.Drafts.Wait()
}
