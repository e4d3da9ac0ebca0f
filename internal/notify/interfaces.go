// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package notify delivers geofence and failure messages to the operator.
//
// Sending never fails from the caller's point of view: delivery errors are
// logged by the implementation and the cycle that produced the message is
// not affected.
package notify

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/notifier_mock.go -package=mock

// Notifier sends a text message to the configured recipient.
type Notifier interface {
	Send(ctx context.Context, message string)
}
