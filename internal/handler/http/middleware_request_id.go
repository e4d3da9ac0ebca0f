// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Wobas/ngw-geofencer/internal/utils"
)

const requestIDHeader = "X-Request-ID"

// withRequestID attaches a request scoped logger carrying request_id to the
// request context. A well-formed id from the request header is kept, any
// other value is replaced by a fresh one. The id is echoed back in the
// response.
func (h *Handler) withRequestID(next http.Handler) http.Handler {
	ids := utils.NewIDGenerator()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := ids.Reuse(r.Header.Get(requestIDHeader))

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("request_id", requestID)
		})
		r = r.WithContext(l.WithContext(r.Context()))

		w.Header().Set(requestIDHeader, requestID)
		next.ServeHTTP(w, r)
	})
}
