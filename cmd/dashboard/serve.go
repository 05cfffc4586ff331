package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/aitoolsdash/dashboard/internal/di"
	"github.com/aitoolsdash/dashboard/internal/logger"
)

func runServe(cmd *cobra.Command, _ []string) error {
	injector := di.NewContainer(flags)

	server, err := di.Serve(injector)
	if err != nil {
		_ = injector.Shutdown()
		return fmt.Errorf("start server: %w", err)
	}

	log := do.MustInvoke[*logger.Logger](injector)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var serveErr error
	select {
	case <-quit:
		log.Info("Shutting down server gracefully...")
	case serveErr = <-server.Err():
	}

	// The container shuts down the server first, then the index and storage.
	if report := injector.Shutdown(); !report.Succeed {
		log.Error("Shutdown error", "error", report)
	}

	if serveErr != nil {
		return serveErr
	}
	log.Info("Goodbye")
	return nil
}
