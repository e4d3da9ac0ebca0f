// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Wobas/ngw-geofencer/internal/config"
	"github.com/Wobas/ngw-geofencer/internal/geometry"
	"github.com/Wobas/ngw-geofencer/internal/logger"
)

// Storages bundles the local persistence of the daemon.
type Storages struct {
	Replica    ReplicaStore
	Watermarks WatermarkStore
}

// NewStorages opens the replica and the watermark store selected by cfg.
// SQL replicas are migrated before they are returned.
func NewStorages(ctx context.Context, cfg config.StorageConfig, decoder geometry.Decoder, log *logger.Logger) (*Storages, error) {
	replica, err := newReplica(ctx, cfg, decoder, log)
	if err != nil {
		return nil, err
	}

	watermarks, err := newWatermarkStore(cfg, log)
	if err != nil {
		return nil, errors.Join(err, replica.Close())
	}

	return &Storages{Replica: replica, Watermarks: watermarks}, nil
}

// Close releases both stores.
func (s *Storages) Close() error {
	return errors.Join(s.Replica.Close(), s.Watermarks.Close())
}

func newReplica(ctx context.Context, cfg config.StorageConfig, decoder geometry.Decoder, log *logger.Logger) (ReplicaStore, error) {
	if cfg.IsInMemory() {
		log.Warn().Msg("replica kept in memory, every restart mirrors both layers again")
		return NewMemoryReplicaStore(decoder), nil
	}

	db, err := NewConnect(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("connect replica: %w", err)
	}
	if err = db.Migrate(); err != nil {
		return nil, errors.Join(fmt.Errorf("migrate replica: %w", err), db.Close())
	}

	log.Info().Str("dialect", string(db.Dialect())).Msg("replica database ready")
	return NewSQLReplicaStore(db, decoder), nil
}

func newWatermarkStore(cfg config.StorageConfig, log *logger.Logger) (WatermarkStore, error) {
	switch cfg.WatermarkKind {
	case config.WatermarkBolt:
		return NewBoltWatermarkStore(cfg.WatermarkPath, log)
	case config.WatermarkMemory:
		return NewMemoryWatermarkStore(), nil
	case config.WatermarkFile, "":
		return NewFileWatermarkStore(cfg.WatermarkPath, log)
	default:
		return nil, fmt.Errorf("%w: unknown watermark kind %q", ErrPersistence, cfg.WatermarkKind)
	}
}
