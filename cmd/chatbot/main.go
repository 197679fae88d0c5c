// Command chatbot serves the DACA Chatbot API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/deppfellow/daca-chatbot/internal/config"
	"github.com/deppfellow/daca-chatbot/internal/handler"
	"github.com/deppfellow/daca-chatbot/internal/logger"
	"github.com/deppfellow/daca-chatbot/internal/router"
	"github.com/deppfellow/daca-chatbot/internal/server"
	"github.com/deppfellow/daca-chatbot/internal/service"
	"github.com/rs/zerolog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx))
}

func run(ctx context.Context) int {
	cfg, err := config.Load()
	if err != nil {
		// The configured logger depends on the config, so report with a bare one.
		bootstrap := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootstrap.Error().Err(err).Msg("failed to load config")
		return 1
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		bootstrap := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootstrap.Error().Err(err).Msg("failed to initialize logger service")
		return 1
	}

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	srv := server.New(cfg, &log, loggerService)
	services := service.NewServices(srv)
	handlers := handler.NewHandlers(srv, services)
	srv.SetupHTTPServer(router.NewRouter(srv, handlers))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("server stopped")
			return 1
		}
		return 0

	case <-ctx.Done():
		log.Info().Msg("shutting down gracefully")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return 1
	}

	log.Info().Msg("server exited properly")
	return 0
}
