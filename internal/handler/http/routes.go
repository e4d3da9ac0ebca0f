// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the chi router of the API.
//
// Routes:
//
//	GET  /api/health        - liveness, always 200
//	GET  /api/version       - build information
//	GET  /api/status        - state of the last cycle, watermarks and counters
//	POST /api/sync          - queue an extra cycle, 202
//	POST /api/resync/{role} - mirror the top or bottom layer on the next cycle, 202
//
// Every route runs behind panic recovery, request id and access log
// middleware. A known path with the wrong method gets 404, see
// [CheckHTTPMethod].
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withRequestID, h.withLogging)

	// liveness
	router.Get("/api/health", h.health)
	router.Get("/api/version", h.version)

	router.Get("/api/status", h.status)

	// operator actions
	router.Post("/api/sync", h.triggerSync)
	router.Post("/api/resync/{role}", h.requestResync)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
