// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// responseWriter wraps an [http.ResponseWriter] and records what the
// handler sent, so that withLogging can report it once the handler
// returns.
//
// Fields:
//
//	status      - the status code passed to the first WriteHeader call;
//	              0 while nothing was written
//	wroteHeader - whether the header has been forwarded to the wrapped writer
//	size        - number of body bytes accepted by the wrapped writer
//
// WriteHeader is forwarded to the wrapped writer at most once: a second
// call, e.g. from a handler that writes an error after it already started
// the body, is dropped instead of producing a "superfluous WriteHeader"
// warning from net/http.
type responseWriter struct {
	http.ResponseWriter

	status      int
	wroteHeader bool
	size        int
}

// WriteHeader records statusCode and forwards it to the wrapped writer.
// Calls after the first one are ignored.
//
// Parameters:
//
//	statusCode - HTTP status code of the response, e.g. http.StatusAccepted
func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write forwards b to the wrapped writer and adds the number of accepted
// bytes to the recorded size. Like net/http it implies a 200 status when
// no header was written yet.
//
// Returns:
//
//	int   - number of bytes written by the wrapped writer
//	error - the wrapped writer's error, if any
func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}
