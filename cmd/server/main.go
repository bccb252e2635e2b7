package main

import (
	"context"
	"errors"
	"fmt"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vncsmyrnk/blog/internal/adapters/handler/http"
	"github.com/vncsmyrnk/blog/internal/adapters/password/bcrypt"
	"github.com/vncsmyrnk/blog/internal/adapters/token/jwt"
	"github.com/vncsmyrnk/blog/internal/config"
	"github.com/vncsmyrnk/blog/internal/core/services"
	"github.com/vncsmyrnk/blog/internal/logging"
	"github.com/vncsmyrnk/blog/internal/platform/otel"
)

const serviceName = "blog-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error(context.Background(), "server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logging.Logger) error {
	if cfg.WeakSecret() {
		log.Warn(ctx, "JWT_SECRET is shorter than recommended", "min_length", config.MinSecretLength)
	}

	shutdownTracing, err := otel.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn(context.Background(), "failed to flush traces", "error", err)
		}
	}()

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(context.Background()); err != nil {
			log.Warn(context.Background(), "failed to close store", "error", err)
		}
	}()

	hasher, err := bcrypt.NewHasher(cfg.BcryptCost)
	if err != nil {
		return err
	}
	tokens, err := jwt.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	authService := services.NewAuthService(st.users, hasher, tokens)
	postService := services.NewPostService(st.posts)

	handler := http.NewHandler(
		http.NewAuthHandler(authService, log),
		http.NewPostHandler(postService, log, cfg.PageSizeDefault, cfg.PageSizeMax),
		authService,
		log,
		cfg.CORSAllowedOrigins,
	)
	server := &stdhttp.Server{Addr: cfg.HTTPAddr, Handler: handler}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "server listening", "addr", cfg.HTTPAddr, "store", cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info(context.Background(), "gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
