// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
)

// validate checks that the final merged configuration satisfies all
// startup invariants. Every returned error wraps [ErrConfigInvalid] and one
// of the group errors from errors.go.
func (c *Config) validate() error {
	if c.Remote.Host == "" {
		return invalid(ErrInvalidRemoteConfigs, "host is required")
	}
	if c.Remote.RequestTimeout <= 0 {
		return invalid(ErrInvalidRemoteConfigs, "request timeout must be positive")
	}

	for _, l := range []LayerConfig{c.Top, c.Bottom} {
		if l.ID <= 0 {
			return invalid(ErrInvalidLayerConfigs, "%s layer id is required", l.Role)
		}
		if l.Buffer < 0 {
			return invalid(ErrInvalidLayerConfigs, "%s layer buffer must not be negative", l.Role)
		}
	}
	if c.Top.ID == c.Bottom.ID {
		return invalid(ErrInvalidLayerConfigs, "top and bottom layers must differ")
	}

	if c.Storage.ReplicaDSN == "" {
		return invalid(ErrInvalidStorageConfigs, "replica dsn is required")
	}
	switch c.Storage.WatermarkKind {
	case WatermarkFile, WatermarkBolt:
		if c.Storage.WatermarkPath == "" {
			return invalid(ErrInvalidStorageConfigs, "watermark path is required for %q", c.Storage.WatermarkKind)
		}
	case WatermarkMemory:
	default:
		return invalid(ErrInvalidStorageConfigs, "unknown watermark kind %q", c.Storage.WatermarkKind)
	}

	switch c.Notifier.Kind {
	case NotifierConsole:
	case NotifierTelegram:
		if c.Notifier.TelegramToken == "" || c.Notifier.TelegramChatID == 0 {
			return invalid(ErrInvalidNotifierConfigs, "telegram token and chat id are required")
		}
	default:
		return invalid(ErrInvalidNotifierConfigs, "unknown notifier %q", c.Notifier.Kind)
	}

	if c.SyncInterval <= 0 {
		return invalid(ErrInvalidWorkerConfigs, "sync interval must be positive")
	}

	return nil
}

func invalid(group error, format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", ErrConfigInvalid, group, fmt.Sprintf(format, args...))
}
