// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Wobas/ngw-geofencer/models"
)

// marshalFailureBody is sent when a payload cannot be encoded. It is a
// valid [models.ErrorResponse] so API clients can always decode the body.
const marshalFailureBody = `{"error":"response encoding failed"}` + "\n"

// WriteJSON encodes payload as the JSON body of an API response.
//
// The status endpoints are polled by monitoring, so every response is
// marked non-cacheable. The body ends with a newline to keep curl output
// readable.
//
// If encoding fails nothing of payload is sent: the client receives
// 500 Internal Server Error with a [models.ErrorResponse] body instead.
//
// Parameters:
//
//	w       - the response writer
//	status  - HTTP status code, e.g. http.StatusAccepted
//	payload - one of the models response DTOs (StatusResponse, ErrorResponse, ...)
//
// Returns:
//
//	error - non-nil if payload could not be encoded or the body could not be written
//
// Example usage:
//
//	WriteJSON(w, http.StatusOK, models.HealthResponse{Status: "ok"})
//	WriteJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "unknown layer role"})
func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		writeHeaders(w, http.StatusInternalServerError)
		_, _ = w.Write([]byte(marshalFailureBody))
		return fmt.Errorf("encode %T response: %w", payload, err)
	}

	writeHeaders(w, status)
	if _, err = w.Write(append(body, '\n')); err != nil {
		return fmt.Errorf("write response body: %w", err)
	}
	return nil
}

// WriteError sends err as a [models.ErrorResponse] with the given status.
func WriteError(w http.ResponseWriter, status int, err error) error {
	return WriteJSON(w, status, models.ErrorResponse{Error: err.Error()})
}

func writeHeaders(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
}
