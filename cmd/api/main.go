package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/skillsetter/backend/internal/config"
	"github.com/zhouzirui/skillsetter/backend/internal/handler"
	"github.com/zhouzirui/skillsetter/backend/internal/logging"
	"github.com/zhouzirui/skillsetter/backend/internal/model/catalog"
	"github.com/zhouzirui/skillsetter/backend/internal/service/advice/provider"
	"github.com/zhouzirui/skillsetter/backend/internal/service/chat"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}

	log := logging.New(cfg.Log.Level, cfg.Log.Format)
	if envErr != nil {
		log.WithError(envErr).Warn("failed to load .env file, continuing with system environment variables only")
	}

	seed := catalog.Default()

	// The credential is checked once here; without it every advice request gets the unavailable notice.
	adviceClient := provider.NewClient(ctx, cfg.AI, log)

	chatService := chat.NewService(adviceClient,
		chat.WithGreeting(adviceClient.Persona().OpeningLine),
		chat.WithDefaultProfile(seed.DefaultProfile),
		chat.WithLogger(log),
	)

	router := handler.NewRouter(seed, adviceClient, chatService, log)

	startServer(ctx, cfg.Server, router, log)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, log logrus.FieldLogger) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.WithField("addr", addr).Info("SkillSetter backend listening")
	if err := runServer(ctx, srv); err != nil {
		log.WithError(err).Fatal("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
