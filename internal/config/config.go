// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the raw configuration container populated by each
// source before merging.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// NGW holds the remote server address and credentials.
	NGW NGW `envPrefix:"NGW_"`

	// TopLayer is the layer whose changed features are checked against
	// BottomLayer (typically points).
	TopLayer Layer `envPrefix:"TOP_LAYER_"`

	// BottomLayer is the opposite layer (typically polygons).
	BottomLayer Layer `envPrefix:"BOTTOM_LAYER_"`

	// Storage holds replica and watermark persistence settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Notifier selects and configures the notification sink.
	Notifier Notifier `envPrefix:"NOTIFIER_"`

	// Workers holds the polling schedule.
	Workers Workers `envPrefix:"WORKERS_"`

	// Server holds the optional status endpoint settings.
	Server Server `envPrefix:"SERVER_"`

	// Log holds logging settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// NGW holds connection settings for the remote layer server.
type NGW struct {
	// Host is the base URL of the server, e.g. "https://demo.nextgis.com".
	// Env: NGW_HOST
	Host string `env:"HOST"`

	// Login and Password authenticate every request (HTTP basic auth).
	// Env: NGW_LOGIN, NGW_PASSWORD
	Login    string `env:"LOGIN"`
	Password string `env:"PASSWORD"`

	// RequestTimeout bounds every single remote call. A call that exceeds it
	// fails as a remote error.
	// Env: NGW_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Layer describes one side of the geofence.
type Layer struct {
	// ID is the remote resource id of the layer.
	ID int64 `env:"ID"`

	// Buffer is the distance, in layer units, each geometry of the layer is
	// expanded by before the intersection test.
	Buffer float64 `env:"BUFFER"`

	// Fields is the attribute allow-list (field keynames) reported in
	// geofence events.
	Fields []string `env:"FIELDS" envSeparator:","`

	// SRS is the spatial reference used for the full snapshot export. Zero
	// means the layer's own SRS.
	SRS int `env:"SRS"`
}

// Storage groups local persistence settings.
type Storage struct {
	// ReplicaDSN is the replica database: a sqlite file path, a postgres URL
	// or "memory".
	// Env: STORAGE_REPLICA_DSN
	ReplicaDSN string `env:"REPLICA_DSN"`

	// WatermarkKind selects the watermark backend: "file", "bolt" or "memory".
	// Env: STORAGE_WATERMARK_KIND
	WatermarkKind string `env:"WATERMARK_KIND"`

	// WatermarkPath is the watermark file (JSON or bbolt database).
	// Env: STORAGE_WATERMARK_PATH
	WatermarkPath string `env:"WATERMARK_PATH"`

	// SnapshotDir is where full layer snapshots are downloaded to before
	// being mirrored. Defaults to the OS temp dir.
	// Env: STORAGE_SNAPSHOT_DIR
	SnapshotDir string `env:"SNAPSHOT_DIR"`
}

// Notifier configures where geofence and failure messages are sent.
type Notifier struct {
	// Kind is "console" or "telegram".
	// Env: NOTIFIER_KIND
	Kind string `env:"KIND"`

	// TelegramToken is the bot token.
	// Env: NOTIFIER_TELEGRAM_TOKEN
	TelegramToken string `env:"TELEGRAM_TOKEN"`

	// TelegramChatID is the recipient of the bot messages.
	// Env: NOTIFIER_TELEGRAM_CHAT_ID
	TelegramChatID int64 `env:"TELEGRAM_CHAT_ID"`

	// TelegramAPIURL overrides the bot API base URL.
	// Env: NOTIFIER_TELEGRAM_API_URL
	TelegramAPIURL string `env:"TELEGRAM_API_URL"`
}

// Workers holds the polling schedule.
type Workers struct {
	// SyncInterval is the period between two polling cycles.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// Server holds the optional status endpoint settings.
type Server struct {
	// StatusAddress is the host:port the status endpoint listens on. Empty
	// disables it.
	// Env: SERVER_STATUS_ADDRESS
	StatusAddress string `env:"STATUS_ADDRESS"`
}

// Log holds logging settings.
type Log struct {
	// Level is a zerolog level name ("debug", "info", ...).
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`

	// File redirects logs to a file instead of stdout.
	// Env: LOG_FILE
	File string `env:"FILE"`
}

// GetConfig loads, merges, and validates the configuration from all
// available sources. args are the command-line arguments without the
// program name.
//
// Returns a fully populated *Config or an error wrapping [ErrConfigInvalid]
// if any source fails to load or the merged config fails validation.
func GetConfig(args []string) (*Config, error) {
	structured, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON().
		build()
	if err != nil {
		return nil, err
	}

	return newConfig(structured)
}
