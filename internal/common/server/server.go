package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmedvedev/secure-content/internal/common/constants"
	"github.com/dmedvedev/secure-content/internal/common/logger"
)

// ShutdownHook releases a resource during graceful shutdown, after in-flight
// requests have drained.
type ShutdownHook func(ctx context.Context) error

func New(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: constants.ServerReadHeaderTimeout,
		ReadTimeout:       constants.ServerReadTimeout,
		WriteTimeout:      constants.ServerWriteTimeout,
		IdleTimeout:       constants.ServerIdleTimeout,
	}
}

// Run serves until SIGINT or SIGTERM, then shuts down gracefully within
// constants.ShutdownTimeout. Hooks run once the listener has drained.
func Run(srv *http.Server, log *logger.Logger, hooks ...ShutdownHook) {
	go func() {
		log.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	srv.SetKeepAlivesEnabled(false)

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("forced shutdown: %v", err)
	} else {
		log.Info("stopped gracefully")
	}

	for i, hook := range hooks {
		if err := hook(ctx); err != nil {
			log.Errorf("shutdown hook %d failed: %v", i, err)
		}
	}
}
