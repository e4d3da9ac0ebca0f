// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Wobas/ngw-geofencer/internal/logger"
	"github.com/Wobas/ngw-geofencer/internal/utils"
	"github.com/Wobas/ngw-geofencer/models"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, models.HealthResponse{Status: "ok"}, http.StatusOK)
}

func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, h.buildInfo.Response(), http.StatusOK)
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	response := models.StatusResponse{
		SyncStatus:   h.orchestrator.Status(),
		SkippedTicks: h.scheduler.Skipped(),
	}
	h.writeJSON(w, r, response, http.StatusOK)
}

// triggerSync queues a cycle outside of the regular schedule. The cycle
// runs asynchronously; its outcome shows up in the status.
func (h *Handler) triggerSync(w http.ResponseWriter, r *http.Request) {
	queued := h.scheduler.Trigger()
	logger.FromRequest(r).Info().Bool("queued", queued).Msg("manual sync requested")

	h.writeJSON(w, r, models.TriggerResponse{Queued: queued}, http.StatusAccepted)
}

// requestResync marks a layer for a full mirror on the next cycle.
func (h *Handler) requestResync(w http.ResponseWriter, r *http.Request) {
	role := models.LayerRole(chi.URLParam(r, "role"))

	if err := h.orchestrator.RequestResync(role); err != nil {
		h.writeError(w, r, err)
		return
	}
	logger.FromRequest(r).Info().Str("role", string(role)).Msg("layer resync requested")

	h.writeJSON(w, r, models.ResyncResponse{Role: role, Pending: true}, http.StatusAccepted)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	logger.FromRequest(r).Err(err).Int("status", status).Msg("request failed")

	if writeErr := utils.WriteError(w, status, err); writeErr != nil {
		logger.FromRequest(r).Err(writeErr).Msg("error writing response")
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, payload any, status int) {
	if err := utils.WriteJSON(w, status, payload); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}
