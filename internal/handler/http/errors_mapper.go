// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/Wobas/ngw-geofencer/internal/adapter"
	"github.com/Wobas/ngw-geofencer/internal/service"
	"github.com/Wobas/ngw-geofencer/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrUnknownLayerRole: http.StatusBadRequest,
	service.ErrCycleInProgress:  http.StatusConflict,

	adapter.ErrRemote: http.StatusBadGateway,

	store.ErrPersistence: http.StatusInternalServerError,
}

// statusFromError maps an error returned by the orchestrator to the status
// code of the API response. Errors matching none of errorStatusMap are
// internal errors.
//
// Parameters:
//
//	err - any error, usually wrapping one of the service, adapter or store
//	      sentinels
//
// Returns:
//
//	int - the HTTP status code, http.StatusInternalServerError by default
func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
