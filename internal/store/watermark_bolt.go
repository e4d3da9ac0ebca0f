// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.etcd.io/bbolt"

	"github.com/Wobas/ngw-geofencer/internal/logger"
	"github.com/Wobas/ngw-geofencer/models"
)

var bucketWatermarks = []byte("watermarks")

// boltWatermarkStore keeps one JSON encoded watermark per layer in a bbolt
// bucket keyed by the decimal layer id.
type boltWatermarkStore struct {
	db     *bbolt.DB
	logger *logger.Logger
}

// NewBoltWatermarkStore opens (creating when needed) the bbolt database at
// path.
func NewBoltWatermarkStore(path string, log *logger.Logger) (WatermarkStore, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open boltdb: %w", ErrPersistence, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketWatermarks)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to initialize buckets: %w", ErrPersistence, err)
	}

	return &boltWatermarkStore{db: db, logger: log}, nil
}

// Get returns the watermark of layerID. A record that cannot be decoded is
// logged and reported as missing.
func (s *boltWatermarkStore) Get(_ context.Context, layerID int64) (models.LayerWatermark, bool, error) {
	var (
		wm    models.LayerWatermark
		found bool
	)

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketWatermarks)
		if bucket == nil {
			return fmt.Errorf("watermarks bucket not found")
		}

		raw := bucket.Get(layerKey(layerID))
		if raw == nil {
			return nil
		}

		if err := json.Unmarshal(raw, &wm); err != nil {
			s.logger.Warn().Err(err).Int64("layer_id", layerID).Msg("corrupt watermark record, ignoring it")
			wm = models.LayerWatermark{}
			return nil
		}
		found = true
		return nil
	})
	if err != nil {
		return models.LayerWatermark{}, false, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return wm, found, nil
}

// Save writes all watermarks in one bbolt transaction.
func (s *boltWatermarkStore) Save(_ context.Context, watermarks ...models.LayerWatermark) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketWatermarks)
		if bucket == nil {
			return fmt.Errorf("watermarks bucket not found")
		}

		for _, wm := range watermarks {
			raw, err := json.Marshal(wm)
			if err != nil {
				return fmt.Errorf("encode watermark of layer %d: %w", wm.LayerID, err)
			}
			if err = bucket.Put(layerKey(wm.LayerID), raw); err != nil {
				return fmt.Errorf("save watermark of layer %d: %w", wm.LayerID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return nil
}

// Delete removes the watermarks of layerIDs in one bbolt transaction.
func (s *boltWatermarkStore) Delete(_ context.Context, layerIDs ...int64) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketWatermarks)
		if bucket == nil {
			return fmt.Errorf("watermarks bucket not found")
		}

		for _, id := range layerIDs {
			if err := bucket.Delete(layerKey(id)); err != nil {
				return fmt.Errorf("delete watermark of layer %d: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return nil
}

// Close closes the database file.
func (s *boltWatermarkStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func layerKey(layerID int64) []byte {
	return []byte(strconv.FormatInt(layerID, 10))
}
