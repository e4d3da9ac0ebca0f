// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/Wobas/ngw-geofencer/internal/logger"
	"github.com/Wobas/ngw-geofencer/models"
)

// fileWatermarkStore keeps the watermarks of all layers in one JSON file,
// one record per layer:
//
//	[{"id": 12, "version": 40, "epoch": 3, "displayed_fields": {"5": "name"}}]
//
// The file is rewritten as a whole through a temporary file and a rename, so
// a crash never leaves a half-written watermark behind.
type fileWatermarkStore struct {
	path   string
	logger *logger.Logger

	mu         sync.RWMutex
	watermarks map[int64]models.LayerWatermark
}

// NewFileWatermarkStore opens the watermark file at path. A missing file is
// an empty store. An unreadable or corrupt file is logged and also treated
// as empty, which makes the next cycle resync every layer.
func NewFileWatermarkStore(path string, log *logger.Logger) (WatermarkStore, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty watermark file path", ErrPersistence)
	}

	s := &fileWatermarkStore{
		path:       path,
		logger:     log,
		watermarks: make(map[int64]models.LayerWatermark),
	}
	s.load()

	return s, nil
}

func (s *fileWatermarkStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("watermark file is unreadable, starting from scratch")
		}
		return
	}

	var records []models.LayerWatermark
	if err = json.Unmarshal(data, &records); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("watermark file is corrupt, starting from scratch")
		return
	}

	for _, wm := range records {
		s.watermarks[wm.LayerID] = wm
	}
}

func (s *fileWatermarkStore) Get(_ context.Context, layerID int64) (models.LayerWatermark, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wm, ok := s.watermarks[layerID]
	return copyWatermark(wm), ok, nil
}

// Save merges watermarks into the stored set and rewrites the file. The
// in-memory set only changes when the file was written.
func (s *fileWatermarkStore) Save(_ context.Context, watermarks ...models.LayerWatermark) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[int64]models.LayerWatermark, len(s.watermarks)+len(watermarks))
	for id, wm := range s.watermarks {
		next[id] = wm
	}
	for _, wm := range watermarks {
		next[wm.LayerID] = copyWatermark(wm)
	}

	if err := s.write(next); err != nil {
		return fmt.Errorf("%w: write watermark file: %w", ErrPersistence, err)
	}

	s.watermarks = next
	return nil
}

// Delete drops the watermarks of layerIDs and rewrites the file.
func (s *fileWatermarkStore) Delete(_ context.Context, layerIDs ...int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := maps.Clone(s.watermarks)
	for _, id := range layerIDs {
		delete(next, id)
	}

	if err := s.write(next); err != nil {
		return fmt.Errorf("%w: write watermark file: %w", ErrPersistence, err)
	}

	s.watermarks = next
	return nil
}

func (s *fileWatermarkStore) write(watermarks map[int64]models.LayerWatermark) error {
	records := make([]models.LayerWatermark, 0, len(watermarks))
	for _, wm := range watermarks {
		records = append(records, wm)
	}
	slices.SortFunc(records, func(a, b models.LayerWatermark) int {
		return cmp.Compare(a.LayerID, b.LayerID)
	})

	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(payload); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.path)
}

func (s *fileWatermarkStore) Close() error {
	return nil
}
