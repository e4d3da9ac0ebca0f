// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"maps"
	"sync"

	"github.com/Wobas/ngw-geofencer/models"
)

type memoryWatermarkStore struct {
	mu         sync.RWMutex
	watermarks map[int64]models.LayerWatermark
}

// NewMemoryWatermarkStore constructs a [WatermarkStore] that forgets
// everything on restart, forcing a full resync.
func NewMemoryWatermarkStore() WatermarkStore {
	return &memoryWatermarkStore{watermarks: make(map[int64]models.LayerWatermark)}
}

func (s *memoryWatermarkStore) Get(_ context.Context, layerID int64) (models.LayerWatermark, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wm, ok := s.watermarks[layerID]
	return copyWatermark(wm), ok, nil
}

func (s *memoryWatermarkStore) Save(_ context.Context, watermarks ...models.LayerWatermark) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, wm := range watermarks {
		s.watermarks[wm.LayerID] = copyWatermark(wm)
	}
	return nil
}

func (s *memoryWatermarkStore) Delete(_ context.Context, layerIDs ...int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range layerIDs {
		delete(s.watermarks, id)
	}
	return nil
}

func (s *memoryWatermarkStore) Close() error {
	return nil
}

func copyWatermark(wm models.LayerWatermark) models.LayerWatermark {
	wm.DisplayedFields = maps.Clone(wm.DisplayedFields)
	return wm
}
