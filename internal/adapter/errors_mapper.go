// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// maxErrorBody caps the response body kept in a RemoteError.
const maxErrorBody = 512

// mapHTTPError turns a non-2xx response into a [*RemoteError].
//
// The response body is kept for diagnostics, trimmed and cut to
// maxErrorBody bytes; an empty body is replaced by the status text.
//
// Parameters:
//
//	op   - name of the remote operation, e.g. "get resource"
//	resp - the completed resty response
//
// Returns:
//
//	error - nil for 2xx responses, otherwise a *RemoteError carrying Status
//	        and Body; it matches ErrRemote, and ErrUnauthorized or ErrNotFound
//	        for 401/403 and 404
func mapHTTPError(op string, resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	return &RemoteError{Op: op, Status: resp.StatusCode(), Body: body}
}

// mapTransportError wraps a failure that produced no response at all.
func mapTransportError(op string, err error) error {
	return &RemoteError{Op: op, Timeout: isTimeout(err), Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func statusSentinel(status int) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return nil
	}
}
