package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rohits-web03/docdrop/internal/api"
	"github.com/rohits-web03/docdrop/internal/api/handlers"
	"github.com/rohits-web03/docdrop/internal/api/middleware"
	"github.com/rohits-web03/docdrop/internal/api/services"
	"github.com/rohits-web03/docdrop/internal/auth"
	"github.com/rohits-web03/docdrop/internal/config"
	"github.com/rohits-web03/docdrop/internal/repositories"
)

// @title DocDrop API
// @version 1.0
// @description Role-gated document sharing backend.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	var (
		users repositories.UserRepository
		files repositories.FileRepository
	)
	if cfg.DB_URL != "" {
		db, err := repositories.ConnectDatabase(cfg.DB_URL)
		if err != nil {
			log.Fatal(err)
		}
		users = repositories.NewGormUserRepository(db)
		files = repositories.NewGormFileRepository(db)
	} else {
		log.Println("DB_URL not set, using in-memory store")
		users = repositories.NewMemoryUserRepository()
		files = repositories.NewMemoryFileRepository()
	}

	var (
		blobs repositories.BlobStore
		err   error
	)
	if cfg.StorageBackend == "r2" {
		blobs, err = repositories.NewR2BlobStore(cfg.R2)
	} else {
		blobs, err = repositories.NewDiskBlobStore(cfg.UploadDir)
	}
	if err != nil {
		log.Fatal("Failed to initialize blob storage:", err)
	}

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	transfers := services.NewTransferService(files, blobs)
	notifier := services.NewNotifier(cfg)
	gate := middleware.NewGate(tokens, users)
	h := handlers.New(users, transfers, tokens, notifier)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: api.SetupRouter(cfg, h, gate),
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Starting DocDrop server on port: %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
