package shared

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
)

// SetupSignalHandler returns a context cancelled by the first SIGINT or
// SIGTERM. A second signal exits immediately with status 130.
func SetupSignalHandler(logger *log.Logger) context.Context {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	go func() {
		<-ctx.Done()
		stop()
		logger.Info("Shutting down, interrupt again to force")

		force := make(chan os.Signal, 1)
		signal.Notify(force, os.Interrupt, syscall.SIGTERM)
		<-force
		logger.Warn("Forced exit")
		os.Exit(130)
	}()

	return ctx
}
