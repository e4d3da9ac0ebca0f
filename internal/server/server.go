// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"

	"github.com/Wobas/ngw-geofencer/internal/config"
	"github.com/Wobas/ngw-geofencer/internal/handler"
	"github.com/Wobas/ngw-geofencer/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

// NewServer wraps the handlers enabled in cfg into servers. It returns an
// error when there is nothing to serve.
func NewServer(handlers *handler.Handlers, cfg *config.Config, logger *logger.Logger) (Server, error) {
	if handlers == nil || handlers.HTTP == nil || cfg.StatusAddress == "" {
		return nil, ErrStatusServerDisabled
	}

	logger.Info().Str("address", cfg.StatusAddress).Msg("creating new server...")
	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg.StatusAddress, logger),
		logger:     logger,
	}, nil
}

// RunServer blocks serving the status API until Shutdown is called.
// Listen failures are logged, not returned: the daemon keeps syncing
// without its API.
func (s *server) RunServer() {
	s.logger.Info().Msg("launching HTTP server")
	if err := s.httpServer.RunServer(); err != nil {
		s.logger.Err(err).Msg("error running HTTP server")
	}
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx is done.
func (s *server) Shutdown(ctx context.Context) {
	s.httpServer.Shutdown(ctx)
	s.logger.Info().Msg("server shut down gracefully")
}
