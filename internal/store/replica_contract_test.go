// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wobas/ngw-geofencer/internal/geometry"
	"github.com/Wobas/ngw-geofencer/internal/logger"
)

func newSQLiteReplica(t *testing.T) ReplicaStore {
	t.Helper()

	db, err := NewConnectSQLite(context.Background(), filepath.Join(t.TempDir(), "replica.db"), logger.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate())

	s := NewSQLReplicaStore(db, geometry.NewDecoder())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// replicaBackends runs the same behavioural checks against every
// ReplicaStore implementation.
var replicaBackends = map[string]func(t *testing.T) ReplicaStore{
	"sqlite": newSQLiteReplica,
	"memory": func(t *testing.T) ReplicaStore { return NewMemoryReplicaStore(geometry.NewDecoder()) },
}

func forEachReplica(t *testing.T, fn func(t *testing.T, s ReplicaStore)) {
	for name, newStore := range replicaBackends {
		t.Run(name, func(t *testing.T) {
			fn(t, newStore(t))
		})
	}
}

func commit(t *testing.T, s ReplicaStore, fn func(tx ReplicaTx)) {
	t.Helper()
	tx, err := s.Begin(context.Background())
	require.NoError(t, err)
	fn(tx)
	require.NoError(t, tx.Commit())
}

func TestReplica_CreateGet(t *testing.T) {
	forEachReplica(t, func(t *testing.T, s ReplicaStore) {
		ctx := context.Background()
		commit(t, s, func(tx ReplicaTx) {
			require.NoError(t, tx.Create(ctx, 1, 10, []byte("POINT (10 10)"), map[string]any{"name": "truck"}))
		})

		got, err := s.Get(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(10), got.FID)
		assert.Equal(t, "POINT (10 10)", string(got.Geometry))
		assert.Equal(t, map[string]any{"name": "truck"}, got.Attributes)

		_, err = s.Get(ctx, 2, 10)
		assert.ErrorIs(t, err, ErrUnknownFeature)
	})
}

func TestReplica_CreateRejects(t *testing.T) {
	forEachReplica(t, func(t *testing.T, s ReplicaStore) {
		ctx := context.Background()
		tx, err := s.Begin(ctx)
		require.NoError(t, err)
		defer tx.Rollback()

		assert.ErrorIs(t, tx.Create(ctx, 1, 1, nil, nil), ErrMissingGeometry)

		require.NoError(t, tx.Create(ctx, 1, 1, []byte("POINT (0 0)"), nil))
		assert.ErrorIs(t, tx.Create(ctx, 1, 1, []byte("POINT (1 1)"), nil), ErrDuplicateFeature)

		assert.ErrorIs(t, tx.Create(ctx, 1, 2, []byte("NOT A GEOMETRY"), nil), geometry.ErrInvalidGeometry)
	})
}

func TestReplica_UpdatePatchesAttributes(t *testing.T) {
	forEachReplica(t, func(t *testing.T, s ReplicaStore) {
		ctx := context.Background()
		commit(t, s, func(tx ReplicaTx) {
			require.NoError(t, tx.Create(ctx, 1, 5, []byte("POINT (1 1)"), map[string]any{"name": "a", "kind": "car"}))
			require.NoError(t, tx.Update(ctx, 1, 5, nil, map[string]any{"name": "b"}))
		})

		got, err := s.Get(ctx, 1, 5)
		require.NoError(t, err)
		assert.Equal(t, "POINT (1 1)", string(got.Geometry))
		assert.Equal(t, map[string]any{"name": "b", "kind": "car"}, got.Attributes)

		commit(t, s, func(tx ReplicaTx) {
			require.NoError(t, tx.Update(ctx, 1, 5, []byte("POINT (50 50)"), nil))
		})

		moved, err := s.FindInEnvelope(ctx, 1, geometry.Envelope{MinX: 49, MinY: 49, MaxX: 51, MaxY: 51})
		require.NoError(t, err)
		require.Len(t, moved, 1)
		assert.Equal(t, int64(5), moved[0].FID)

		old, err := s.FindInEnvelope(ctx, 1, geometry.Envelope{MinX: 0, MinY: 0, MaxX: 2, MaxY: 2})
		require.NoError(t, err)
		assert.Empty(t, old)
	})
}

func TestReplica_NumericAttributes(t *testing.T) {
	const bigID = int64(9007199254740993) // 2^53 + 1, not representable as float64

	forEachReplica(t, func(t *testing.T, s ReplicaStore) {
		ctx := context.Background()
		commit(t, s, func(tx ReplicaTx) {
			require.NoError(t, tx.Create(ctx, 1, 3, []byte("POINT (1 1)"), map[string]any{
				"external_id": bigID,
				"speed":       42,
				"ratio":       0.5,
				"weight":      float64(7),
			}))
			require.NoError(t, tx.Update(ctx, 1, 3, nil, map[string]any{"speed": 43}))
		})

		got, err := s.Get(ctx, 1, 3)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"external_id": bigID,
			"speed":       int64(43),
			"ratio":       0.5,
			"weight":      int64(7),
		}, got.Attributes)
	})
}

func TestReplica_UpdateDeleteUnknown(t *testing.T) {
	forEachReplica(t, func(t *testing.T, s ReplicaStore) {
		ctx := context.Background()
		tx, err := s.Begin(ctx)
		require.NoError(t, err)
		defer tx.Rollback()

		assert.ErrorIs(t, tx.Update(ctx, 1, 99, []byte("POINT (0 0)"), nil), ErrUnknownFeature)
		assert.ErrorIs(t, tx.Delete(ctx, 1, 99), ErrUnknownFeature)
	})
}

func TestReplica_FindInEnvelope(t *testing.T) {
	forEachReplica(t, func(t *testing.T, s ReplicaStore) {
		ctx := context.Background()
		commit(t, s, func(tx ReplicaTx) {
			require.NoError(t, tx.Create(ctx, 2, 3, []byte("POLYGON ((0 0, 20 0, 20 20, 0 20, 0 0))"), nil))
			require.NoError(t, tx.Create(ctx, 2, 1, []byte("POLYGON ((15 15, 30 15, 30 30, 15 30, 15 15))"), nil))
			require.NoError(t, tx.Create(ctx, 2, 2, []byte("POLYGON ((100 100, 110 100, 110 110, 100 110, 100 100))"), nil))
			require.NoError(t, tx.Create(ctx, 1, 7, []byte("POINT (10 10)"), nil))
		})

		got, err := s.FindInEnvelope(ctx, 2, geometry.Envelope{MinX: 10, MinY: 10, MaxX: 16, MaxY: 16})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, int64(1), got[0].FID)
		assert.Equal(t, int64(3), got[1].FID)

		// touching edges count as overlap
		edge, err := s.FindInEnvelope(ctx, 2, geometry.Envelope{MinX: 110, MinY: 110, MaxX: 120, MaxY: 120})
		require.NoError(t, err)
		require.Len(t, edge, 1)
		assert.Equal(t, int64(2), edge[0].FID)
	})
}

func TestReplica_RollbackDiscards(t *testing.T) {
	forEachReplica(t, func(t *testing.T, s ReplicaStore) {
		ctx := context.Background()
		commit(t, s, func(tx ReplicaTx) {
			require.NoError(t, tx.Create(ctx, 1, 1, []byte("POINT (0 0)"), nil))
		})

		tx, err := s.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.Delete(ctx, 1, 1))
		require.NoError(t, tx.Create(ctx, 1, 2, []byte("POINT (1 1)"), nil))
		_, err = tx.Get(ctx, 1, 1)
		assert.ErrorIs(t, err, ErrUnknownFeature)
		require.NoError(t, tx.Rollback())

		_, err = s.Get(ctx, 1, 1)
		assert.NoError(t, err)
		_, err = s.Get(ctx, 1, 2)
		assert.ErrorIs(t, err, ErrUnknownFeature)

		assert.ErrorIs(t, tx.Commit(), ErrTxDone)
	})
}

func TestReplica_Truncate(t *testing.T) {
	forEachReplica(t, func(t *testing.T, s ReplicaStore) {
		ctx := context.Background()
		commit(t, s, func(tx ReplicaTx) {
			require.NoError(t, tx.Create(ctx, 1, 1, []byte("POINT (0 0)"), nil))
			require.NoError(t, tx.Create(ctx, 2, 1, []byte("POINT (0 0)"), nil))
		})
		commit(t, s, func(tx ReplicaTx) {
			require.NoError(t, tx.Truncate(ctx, 1))
		})

		_, err := s.Get(ctx, 1, 1)
		assert.ErrorIs(t, err, ErrUnknownFeature)
		_, err = s.Get(ctx, 2, 1)
		assert.NoError(t, err)
	})
}
