// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"slices"
	"strings"
	"time"

	"github.com/Wobas/ngw-geofencer/models"
)

// Storage backends.
const (
	WatermarkFile   = "file"
	WatermarkBolt   = "bolt"
	WatermarkMemory = "memory"

	ReplicaMemory = "memory"
)

// Notifier kinds.
const (
	NotifierConsole  = "console"
	NotifierTelegram = "telegram"
)

// Remote holds the settings of the remote layer server.
type Remote struct {
	Host           string
	Login          string
	Password       string
	RequestTimeout time.Duration
}

// LayerConfig is the validated settings of one geofence side.
type LayerConfig struct {
	Role   models.LayerRole
	ID     int64
	Buffer float64
	Fields []string
	SRS    int
}

// StorageConfig holds local persistence settings.
type StorageConfig struct {
	ReplicaDSN    string
	WatermarkKind string
	WatermarkPath string
	SnapshotDir   string
}

// IsPostgres reports whether the replica DSN points at a postgres server.
func (s StorageConfig) IsPostgres() bool {
	dsn := strings.ToLower(s.ReplicaDSN)
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// IsInMemory reports whether the replica lives only in process memory.
func (s StorageConfig) IsInMemory() bool {
	return s.ReplicaDSN == ReplicaMemory
}

// NotifierConfig selects the notification sink.
type NotifierConfig struct {
	Kind           string
	TelegramToken  string
	TelegramChatID int64
	TelegramAPIURL string
}

// Config is the immutable, validated configuration passed into every
// component. It is built once by [GetConfig].
type Config struct {
	Remote        Remote
	Top           LayerConfig
	Bottom        LayerConfig
	Storage       StorageConfig
	Notifier      NotifierConfig
	SyncInterval  time.Duration
	StatusAddress string
	LogLevel      string
	LogFile       string
}

// Layer returns the settings of the layer playing role.
func (c *Config) Layer(role models.LayerRole) LayerConfig {
	if role == models.LayerBottom {
		return c.Bottom
	}
	return c.Top
}

func newConfig(cfg *StructuredConfig) (*Config, error) {
	out := &Config{
		Remote: Remote{
			Host:           strings.TrimRight(strings.TrimSpace(cfg.NGW.Host), "/"),
			Login:          cfg.NGW.Login,
			Password:       cfg.NGW.Password,
			RequestTimeout: cfg.NGW.RequestTimeout,
		},
		Top:    newLayerConfig(models.LayerTop, cfg.TopLayer),
		Bottom: newLayerConfig(models.LayerBottom, cfg.BottomLayer),
		Storage: StorageConfig{
			ReplicaDSN:    strings.TrimSpace(cfg.Storage.ReplicaDSN),
			WatermarkKind: strings.ToLower(strings.TrimSpace(cfg.Storage.WatermarkKind)),
			WatermarkPath: cfg.Storage.WatermarkPath,
			SnapshotDir:   cfg.Storage.SnapshotDir,
		},
		Notifier: NotifierConfig{
			Kind:           strings.ToLower(strings.TrimSpace(cfg.Notifier.Kind)),
			TelegramToken:  cfg.Notifier.TelegramToken,
			TelegramChatID: cfg.Notifier.TelegramChatID,
			TelegramAPIURL: strings.TrimRight(cfg.Notifier.TelegramAPIURL, "/"),
		},
		SyncInterval:  cfg.Workers.SyncInterval,
		StatusAddress: cfg.Server.StatusAddress,
		LogLevel:      cfg.Log.Level,
		LogFile:       cfg.Log.File,
	}

	if err := out.validate(); err != nil {
		return nil, err
	}
	return out, nil
}

func newLayerConfig(role models.LayerRole, l Layer) LayerConfig {
	fields := make([]string, 0, len(l.Fields))
	for _, f := range l.Fields {
		if f = strings.TrimSpace(f); f != "" && !slices.Contains(fields, f) {
			fields = append(fields, f)
		}
	}

	return LayerConfig{
		Role:   role,
		ID:     l.ID,
		Buffer: l.Buffer,
		Fields: fields,
		SRS:    l.SRS,
	}
}
