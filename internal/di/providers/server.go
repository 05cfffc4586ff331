package providers

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/aitoolsdash/dashboard/internal/api"
	"github.com/aitoolsdash/dashboard/internal/backup"
	"github.com/aitoolsdash/dashboard/internal/config"
	"github.com/aitoolsdash/dashboard/internal/logger"
	"github.com/aitoolsdash/dashboard/internal/ratelimit"
	"github.com/aitoolsdash/dashboard/internal/service"
	"github.com/aitoolsdash/dashboard/internal/store"
)

// Version is stamped into the OpenAPI document. Set at build time.
var Version = "dev"

const (
	// shutdownTimeout bounds graceful shutdown of in-flight requests.
	shutdownTimeout = 30 * time.Second

	// Restores and backup writes are cheap to trigger and expensive to run.
	restoreRPS   = 0.5
	restoreBurst = 5
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	limiter *ratelimit.KeyedRateLimiter
	errs    chan error
}

// Err receives the serve error if the listener stops unexpectedly.
func (h *HTTPServerHandle) Err() <-chan error {
	return h.errs
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	defer h.limiter.Stop()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server and starts listening.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	st := do.MustInvoke[*store.Store](i)

	services := &api.Services{
		Catalog: do.MustInvoke[*service.CatalogService](i),
		Search:  do.MustInvoke[*service.SearchService](i),
		Backup:  do.MustInvoke[*backup.Service](i),
	}

	limiter := ratelimit.New(restoreRPS, restoreBurst)

	handler := api.NewServer(st, services, api.Options{
		Version:        Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RestoreLimiter: limiter,
	}, log.WithComponent("http"))

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Bind before returning so a busy port fails startup.
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		limiter.Stop()
		return nil, err
	}

	errs := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
			errs <- err
		}
		close(errs)
	}()

	if host, _, _ := net.SplitHostPort(srv.Addr); !isLoopback(host) {
		log.Warn("API is reachable from other machines", "addr", srv.Addr)
	}
	log.Info("Server running", "addr", "http://"+ln.Addr().String())

	return &HTTPServerHandle{Server: srv, limiter: limiter, errs: errs}, nil
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
