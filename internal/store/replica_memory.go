// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/Wobas/ngw-geofencer/internal/geometry"
	"github.com/Wobas/ngw-geofencer/models"
)

type memoryFeature struct {
	feature  models.ReplicaFeature
	envelope geometry.Envelope
}

// memoryLayers maps layer id → fid → feature. Stored features are never
// mutated in place, so copying the two map levels is a full snapshot.
type memoryLayers map[int64]map[int64]memoryFeature

func (l memoryLayers) clone() memoryLayers {
	out := make(memoryLayers, len(l))
	for id, features := range l {
		out[id] = maps.Clone(features)
	}
	return out
}

// memoryReplica implements [ReplicaReader] and [ReplicaWriter] over a
// memoryLayers value.
type memoryReplica struct {
	layers  memoryLayers
	decoder geometry.Decoder
}

// memoryReplicaStore is the in-process implementation of [ReplicaStore].
// Transactions work on a private copy that replaces the committed state on
// Commit.
type memoryReplicaStore struct {
	mu      sync.RWMutex
	layers  memoryLayers
	decoder geometry.Decoder
}

// NewMemoryReplicaStore constructs an empty in-memory [ReplicaStore].
func NewMemoryReplicaStore(decoder geometry.Decoder) ReplicaStore {
	return &memoryReplicaStore{layers: make(memoryLayers), decoder: decoder}
}

// Get implements [ReplicaReader].
func (s *memoryReplicaStore) Get(ctx context.Context, layerID, fid int64) (models.ReplicaFeature, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.view().Get(ctx, layerID, fid)
}

// FindInEnvelope implements [ReplicaReader].
func (s *memoryReplicaStore) FindInEnvelope(ctx context.Context, layerID int64, env geometry.Envelope) ([]models.ReplicaFeature, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.view().FindInEnvelope(ctx, layerID, env)
}

// Begin implements [ReplicaStore].
func (s *memoryReplicaStore) Begin(_ context.Context) (ReplicaTx, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return &memoryReplicaTx{
		memoryReplica: memoryReplica{layers: s.layers.clone(), decoder: s.decoder},
		store:         s,
	}, nil
}

// Close implements [ReplicaStore].
func (s *memoryReplicaStore) Close() error {
	return nil
}

func (s *memoryReplicaStore) view() *memoryReplica {
	return &memoryReplica{layers: s.layers, decoder: s.decoder}
}

type memoryReplicaTx struct {
	memoryReplica
	store *memoryReplicaStore
	done  bool
}

// Commit implements [ReplicaTx].
func (t *memoryReplicaTx) Commit() error {
	if t.done {
		return ErrTxDone
	}
	t.done = true

	t.store.mu.Lock()
	t.store.layers = t.layers
	t.store.mu.Unlock()
	return nil
}

// Rollback implements [ReplicaTx].
func (t *memoryReplicaTx) Rollback() error {
	t.done = true
	return nil
}

// Get implements [ReplicaReader].
func (r *memoryReplica) Get(_ context.Context, layerID, fid int64) (models.ReplicaFeature, error) {
	stored, ok := r.layers[layerID][fid]
	if !ok {
		return models.ReplicaFeature{}, fmt.Errorf("%w: layer %d fid %d", ErrUnknownFeature, layerID, fid)
	}
	return copyFeature(stored.feature), nil
}

// FindInEnvelope implements [ReplicaReader].
func (r *memoryReplica) FindInEnvelope(_ context.Context, layerID int64, env geometry.Envelope) ([]models.ReplicaFeature, error) {
	features := r.layers[layerID]
	fids := slices.Sorted(maps.Keys(features))

	out := make([]models.ReplicaFeature, 0, 8)
	for _, fid := range fids {
		if stored := features[fid]; stored.envelope.Intersects(env) {
			out = append(out, copyFeature(stored.feature))
		}
	}
	return out, nil
}

// Create implements [ReplicaWriter].
func (r *memoryReplica) Create(_ context.Context, layerID, fid int64, geom []byte, attributes map[string]any) error {
	if len(geom) == 0 {
		return fmt.Errorf("%w: layer %d fid %d", ErrMissingGeometry, layerID, fid)
	}
	if _, ok := r.layers[layerID][fid]; ok {
		return fmt.Errorf("%w: layer %d fid %d", ErrDuplicateFeature, layerID, fid)
	}

	env, err := geometry.EnvelopeOf(r.decoder, geom)
	if err != nil {
		return fmt.Errorf("layer %d fid %d: %w", layerID, fid, err)
	}
	stored, err := canonicalAttributes(attributes)
	if err != nil {
		return fmt.Errorf("%w: encode attributes of fid %d: %w", ErrPersistence, fid, err)
	}

	r.put(layerID, memoryFeature{
		feature: models.ReplicaFeature{
			FID:        fid,
			Geometry:   slices.Clone(geom),
			Attributes: stored,
		},
		envelope: env,
	})
	return nil
}

// Update implements [ReplicaWriter].
func (r *memoryReplica) Update(_ context.Context, layerID, fid int64, geom []byte, patch map[string]any) error {
	stored, ok := r.layers[layerID][fid]
	if !ok {
		return fmt.Errorf("%w: layer %d fid %d", ErrUnknownFeature, layerID, fid)
	}
	patch, err := canonicalAttributes(patch)
	if err != nil {
		return fmt.Errorf("%w: encode attributes of fid %d: %w", ErrPersistence, fid, err)
	}

	next := memoryFeature{
		feature: models.ReplicaFeature{
			FID:        fid,
			Geometry:   stored.feature.Geometry,
			Attributes: cloneAttributes(stored.feature.Attributes),
		},
		envelope: stored.envelope,
	}
	for k, v := range patch {
		next.feature.Attributes[k] = v
	}

	if len(geom) > 0 {
		env, err := geometry.EnvelopeOf(r.decoder, geom)
		if err != nil {
			return fmt.Errorf("layer %d fid %d: %w", layerID, fid, err)
		}
		next.feature.Geometry = slices.Clone(geom)
		next.envelope = env
	}

	r.put(layerID, next)
	return nil
}

// Delete implements [ReplicaWriter].
func (r *memoryReplica) Delete(_ context.Context, layerID, fid int64) error {
	if _, ok := r.layers[layerID][fid]; !ok {
		return fmt.Errorf("%w: layer %d fid %d", ErrUnknownFeature, layerID, fid)
	}
	delete(r.layers[layerID], fid)
	return nil
}

// Truncate implements [ReplicaWriter].
func (r *memoryReplica) Truncate(_ context.Context, layerID int64) error {
	delete(r.layers, layerID)
	return nil
}

func (r *memoryReplica) put(layerID int64, f memoryFeature) {
	features, ok := r.layers[layerID]
	if !ok {
		features = make(map[int64]memoryFeature)
		r.layers[layerID] = features
	}
	features[f.feature.FID] = f
}

func copyFeature(f models.ReplicaFeature) models.ReplicaFeature {
	return models.ReplicaFeature{
		FID:        f.FID,
		Geometry:   slices.Clone(f.Geometry),
		Attributes: cloneAttributes(f.Attributes),
	}
}

// canonicalAttributes gives attributes the shape a SQL replica returns
// after storing them as JSON, so both replicas hand out equal values.
func canonicalAttributes(attributes map[string]any) (map[string]any, error) {
	if len(attributes) == 0 {
		return map[string]any{}, nil
	}
	encoded, err := json.Marshal(attributes)
	if err != nil {
		return nil, err
	}
	return models.DecodeAttributes(encoded)
}

func cloneAttributes(attributes map[string]any) map[string]any {
	out := make(map[string]any, len(attributes))
	maps.Copy(out, attributes)
	return out
}
