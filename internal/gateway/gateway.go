// Package gateway exposes the context engine over HTTP: health, status,
// prometheus metrics, and the read-only context assembly endpoint.
package gateway

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	ctxengine "github.com/flemzord/recall/internal/context"
	"github.com/flemzord/recall/internal/config"
)

// Gateway is the HTTP surface. It is a leaf component — nothing imports it.
type Gateway struct {
	config    config.ServerConfig
	assembler *ctxengine.Assembler
	logger    *slog.Logger
	metrics   *Metrics
	server    *http.Server
	startedAt time.Time
}

// New creates a Gateway serving the given assembler.
func New(cfg config.ServerConfig, assembler *ctxengine.Assembler, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		config:    cfg,
		assembler: assembler,
		logger:    logger,
		metrics:   NewMetrics(),
	}
}

// Metrics returns the gateway's metrics registry for external observation.
func (g *Gateway) Metrics() *Metrics {
	return g.metrics
}

// Start binds the listener and serves in a background goroutine.
func (g *Gateway) Start() error {
	g.startedAt = time.Now()

	g.server = &http.Server{
		Addr:         g.config.Bind,
		Handler:      g.buildRouter(),
		ReadTimeout:  g.config.ReadTimeout,
		WriteTimeout: g.config.WriteTimeout,
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(context.Background(), "tcp", g.config.Bind)
	if err != nil {
		return errors.New("gateway: listen failed: " + err.Error())
	}

	go func() {
		g.logger.Info("gateway listening", "addr", g.config.Bind)
		if err := g.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			g.logger.Error("gateway serve error", "error", err)
		}
	}()

	return nil
}

// Stop performs a graceful shutdown with the configured timeout.
func (g *Gateway) Stop(ctx context.Context) error {
	if g.server == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, g.config.ShutdownTimeout)
	defer cancel()

	g.logger.Info("gateway shutting down")
	return g.server.Shutdown(shutdownCtx)
}
