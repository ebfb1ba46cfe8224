package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rohits-web03/blogify/internal/api"
	"github.com/rohits-web03/blogify/internal/api/handlers"
	"github.com/rohits-web03/blogify/internal/auth"
	"github.com/rohits-web03/blogify/internal/config"
	"github.com/rohits-web03/blogify/internal/logging"
	"github.com/rohits-web03/blogify/internal/repositories"
	"github.com/rohits-web03/blogify/internal/uploads"
)

// @title Blogify API
// @version 1.0
// @description Blogging backend: cookie sessions, profiles and posts with cover images.
// @BasePath /
func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Could not initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	// Connect to database
	db, err := repositories.ConnectDatabase(cfg.DB_URL)
	if err != nil {
		return err
	}
	defer repositories.Close(db)
	logger.Info("Successfully connected to database")

	var mirror uploads.Mirror
	var r2 *repositories.ObjectStore
	if cfg.R2.Enabled() {
		r2 = repositories.NewR2Store(cfg.R2)
		mirror = r2
		logger.Info("Mirroring uploads to R2", zap.String("bucket", cfg.R2.BucketName))
	}
	store := uploads.NewStore(cfg.UploadDir, mirror, logger)
	if r2 != nil {
		mirrorDefaultCover(r2, store, cfg.DefaultCover, logger)
	}

	tokens := auth.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	h := handlers.New(handlers.Options{
		Users:        repositories.NewUserRepository(db),
		Posts:        repositories.NewPostRepository(db),
		Hasher:       auth.NewPasswordHasher(cfg.BcryptCost),
		Tokens:       tokens,
		Uploads:      store,
		Logger:       logger,
		DefaultCover: cfg.DefaultCover,
		MaxUploadMB:  cfg.MaxUploadMB,
		SecureCookie: cfg.IsProd(),
	})

	server := &http.Server{
		Addr: fmt.Sprintf(":%s", cfg.Port),
		Handler: api.SetupRouter(api.RouterOptions{
			Handler:     h,
			Tokens:      tokens,
			UploadDir:   cfg.UploadDir,
			CorsOptions: cfg.CorsConfig,
			Logger:      logger,
		}),
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting blog server", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on port %s: %w", cfg.Port, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("server shutdown complete")
		return nil
	})
	return g.Wait()
}

// mirrorDefaultCover copies the list placeholder cover to the bucket when it is missing there.
func mirrorDefaultCover(r2 *repositories.ObjectStore, store *uploads.Store, cover string, logger *zap.Logger) {
	path, ok := store.LocalPath(cover)
	if !ok {
		logger.Warn("default cover not found in upload dir", zap.String("path", cover))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	uploaded, err := r2.Ensure(ctx, cover, path)
	if err != nil {
		logger.Warn("could not mirror default cover", zap.String("path", cover), zap.Error(err))
		return
	}
	if uploaded {
		logger.Info("Mirrored default cover to R2", zap.String("path", cover))
	}
}
