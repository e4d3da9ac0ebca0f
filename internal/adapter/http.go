// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/Wobas/ngw-geofencer/internal/config"
	"github.com/Wobas/ngw-geofencer/internal/logger"
	"github.com/Wobas/ngw-geofencer/internal/utils"
	"github.com/Wobas/ngw-geofencer/models"
)

// requestIDHeader carries the id of the sync cycle a request belongs to.
const requestIDHeader = "X-Request-ID"

type httpLayerAdapter struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPLayerAdapter constructs an HTTP/REST implementation of [LayerAdapter].
// It normalises and validates the base URL from remote.Host and configures
// the underlying HTTP client with basic auth credentials and the per-call
// request timeout.
//
// Returns an error if remote.Host is empty or cannot be parsed as a valid URL.
func NewHTTPLayerAdapter(remote config.Remote, logger *logger.Logger) (LayerAdapter, error) {
	baseURL, err := normalizeBaseURL(remote.Host)
	if err != nil {
		return nil, fmt.Errorf("invalid remote host: %w", err)
	}

	client := utils.NewHTTPClient(remote.RequestTimeout)
	client.
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if remote.Login != "" {
		client.SetBasicAuth(remote.Login, remote.Password)
	}

	return &httpLayerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// GetResource implements [LayerAdapter] via GET /api/resource/{id}.
func (h *httpLayerAdapter) GetResource(ctx context.Context, layerID int64) (models.ResourceResponse, error) {
	var res models.ResourceResponse
	if err := h.getJSON(ctx, "get resource", resourcePath(layerID), nil, &res); err != nil {
		return models.ResourceResponse{}, err
	}

	return res, nil
}

// CheckChanges implements [LayerAdapter] via
// GET /api/resource/{id}/feature/changes/check.
func (h *httpLayerAdapter) CheckChanges(ctx context.Context, layerID, epoch, initial, target int64) (models.ChangesCheck, error) {
	params := map[string]string{
		"epoch":   strconv.FormatInt(epoch, 10),
		"initial": strconv.FormatInt(initial, 10),
		"target":  strconv.FormatInt(target, 10),
	}

	var check models.ChangesCheck
	if err := h.getJSON(ctx, "check changes", resourcePath(layerID)+"/feature/changes/check", params, &check); err != nil {
		return models.ChangesCheck{}, err
	}

	return check, nil
}

// FetchChanges implements [LayerAdapter]. Absolute urls are requested as-is,
// relative ones against the configured host.
func (h *httpLayerAdapter) FetchChanges(ctx context.Context, fetchURL string) ([]models.RawChange, error) {
	if strings.TrimSpace(fetchURL) == "" {
		return nil, nil
	}

	var changes []models.RawChange
	if err := h.getJSON(ctx, "fetch changes", fetchURL, nil, &changes); err != nil {
		return nil, err
	}

	return changes, nil
}

// GetVersion implements [LayerAdapter] via
// GET /api/resource/{id}/feature/version/{n}.
func (h *httpLayerAdapter) GetVersion(ctx context.Context, layerID, version int64) (models.VersionInfo, error) {
	path := resourcePath(layerID) + "/feature/version/" + strconv.FormatInt(version, 10)

	var info models.VersionInfo
	if err := h.getJSON(ctx, "get version", path, nil, &info); err != nil {
		return models.VersionInfo{}, err
	}

	return info, nil
}

// ExportLayer implements [LayerAdapter] via GET /api/resource/{id}/export.
// The feature id column of the snapshot is named ngw_id.
func (h *httpLayerAdapter) ExportLayer(ctx context.Context, layerID int64, srs int, dst io.Writer) error {
	const op = "export layer"

	params := map[string]string{
		"format": "GPKG",
		"fid":    "ngw_id",
		"zipped": "false",
	}
	if srs > 0 {
		params["srs"] = strconv.Itoa(srs)
	}

	resp, err := h.request(ctx).
		SetQueryParams(params).
		SetDoNotParseResponse(true).
		Get(resourcePath(layerID) + "/export")
	if err != nil {
		return mapTransportError(op, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))
		return &RemoteError{Op: op, Status: resp.StatusCode(), Body: strings.TrimSpace(string(msg))}
	}

	n, err := io.Copy(dst, body)
	if err != nil {
		return mapTransportError(op, err)
	}

	h.logger.Debug().Int64("layer_id", layerID).Int64("bytes", n).Msg("layer snapshot downloaded")
	return nil
}

func (h *httpLayerAdapter) getJSON(ctx context.Context, op, path string, params map[string]string, out any) error {
	req := h.request(ctx)
	if params != nil {
		req.SetQueryParams(params)
	}

	resp, err := req.Get(path)
	if err != nil {
		h.logger.Err(err).Str("op", op).Str("path", path).Msg("remote call failed")
		return mapTransportError(op, err)
	}
	if err = mapHTTPError(op, resp); err != nil {
		h.logger.Err(err).Str("op", op).Str("path", path).Msg("remote call rejected")
		return err
	}

	body := bytes.TrimSpace(resp.Body())
	if len(body) == 0 {
		return nil
	}
	if err = json.Unmarshal(body, out); err != nil {
		return &RemoteError{Op: op, Status: resp.StatusCode(), Err: fmt.Errorf("decode response: %w", err)}
	}

	return nil
}

// request starts a request bound to ctx. The cycle id, when present, is
// sent along so that server logs can be matched with ours.
func (h *httpLayerAdapter) request(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if cycleID, ok := utils.GetCycleIDFromContext(ctx); ok {
		req.SetHeader(requestIDHeader, cycleID)
	}
	return req
}

func resourcePath(layerID int64) string {
	return "/api/resource/" + strconv.FormatInt(layerID, 10)
}
