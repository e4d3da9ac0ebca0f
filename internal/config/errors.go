// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// ErrConfigInvalid is returned by [GetConfig] for any source or validation
// failure. Every error below wraps it.
var ErrConfigInvalid = errors.New("invalid configuration")

// Validation errors returned by [Config.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidRemoteConfigs indicates missing host or a non-positive
	// request timeout.
	ErrInvalidRemoteConfigs = errors.New("invalid remote configuration")
	// ErrInvalidLayerConfigs indicates a missing layer id, equal layer ids
	// or a negative buffer.
	ErrInvalidLayerConfigs = errors.New("invalid layer configuration")
	// ErrInvalidStorageConfigs indicates an empty replica DSN or an
	// unsupported watermark backend.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidNotifierConfigs indicates an unknown notifier or missing
	// telegram credentials.
	ErrInvalidNotifierConfigs = errors.New("invalid notifier configuration")
	// ErrInvalidWorkerConfigs indicates a non-positive sync interval.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
