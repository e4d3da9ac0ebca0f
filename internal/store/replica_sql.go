// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Wobas/ngw-geofencer/internal/geometry"
	"github.com/Wobas/ngw-geofencer/internal/logger"
	"github.com/Wobas/ngw-geofencer/models"
)

// queryer is the subset of *sql.DB and *sql.Tx the replica needs.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

// sqlReplica implements [ReplicaReader] and [ReplicaWriter] on top of the
// replica_features table. It runs either on the connection pool or inside a
// transaction, depending on q.
type sqlReplica struct {
	db      *DB
	q       queryer
	decoder geometry.Decoder
}

// sqlReplicaStore is the SQL implementation of [ReplicaStore].
type sqlReplicaStore struct {
	sqlReplica
}

// NewSQLReplicaStore constructs a [ReplicaStore] backed by db. decoder is
// used to compute the bounding box of every stored geometry.
func NewSQLReplicaStore(db *DB, decoder geometry.Decoder) ReplicaStore {
	db.logger.Debug().Str("dialect", string(db.dialect)).Msg("creating sql replica store")
	return &sqlReplicaStore{sqlReplica{db: db, q: db.DB, decoder: decoder}}
}

// Begin implements [ReplicaStore].
func (s *sqlReplicaStore) Begin(ctx context.Context) (ReplicaTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, s.fail(ctx, "sqlReplicaStore.Begin", ErrBeginningTransaction, err)
	}

	return &sqlReplicaTx{
		sqlReplica: sqlReplica{db: s.db, q: tx, decoder: s.decoder},
		tx:         tx,
	}, nil
}

// Close implements [ReplicaStore].
func (s *sqlReplicaStore) Close() error {
	return s.db.Close()
}

type sqlReplicaTx struct {
	sqlReplica
	tx   *sql.Tx
	done bool
}

// Commit implements [ReplicaTx].
func (t *sqlReplicaTx) Commit() error {
	if t.done {
		return ErrTxDone
	}
	t.done = true

	if err := t.tx.Commit(); err != nil {
		return t.fail(context.Background(), "sqlReplicaTx.Commit", ErrCommitingTransaction, err)
	}
	return nil
}

// Rollback implements [ReplicaTx].
func (t *sqlReplicaTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true

	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("%w: rollback: %w", ErrPersistence, err)
	}
	return nil
}

// Get implements [ReplicaReader].
func (r *sqlReplica) Get(ctx context.Context, layerID, fid int64) (models.ReplicaFeature, error) {
	query, args, err := buildGetFeatureQuery(r.db.builder(), layerID, fid)
	if err != nil {
		return models.ReplicaFeature{}, fmt.Errorf("%w: %w: %w", ErrPersistence, ErrBuildingSQLQuery, err)
	}

	feature, err := scanFeature(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.ReplicaFeature{}, fmt.Errorf("%w: layer %d fid %d", ErrUnknownFeature, layerID, fid)
	}
	if err != nil {
		return models.ReplicaFeature{}, r.fail(ctx, "sqlReplica.Get", ErrScanningRow, err)
	}

	return feature, nil
}

// FindInEnvelope implements [ReplicaReader].
func (r *sqlReplica) FindInEnvelope(ctx context.Context, layerID int64, env geometry.Envelope) ([]models.ReplicaFeature, error) {
	query, args, err := buildFindInEnvelopeQuery(r.db.builder(), layerID, env)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrPersistence, ErrBuildingSQLQuery, err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.fail(ctx, "sqlReplica.FindInEnvelope", ErrExecutingQuery, err)
	}
	defer rows.Close()

	features := make([]models.ReplicaFeature, 0, 8)
	for rows.Next() {
		feature, scanErr := scanFeature(rows)
		if scanErr != nil {
			return nil, r.fail(ctx, "sqlReplica.FindInEnvelope", ErrScanningRow, scanErr)
		}
		features = append(features, feature)
	}
	if err = rows.Err(); err != nil {
		return nil, r.fail(ctx, "sqlReplica.FindInEnvelope", ErrScanningRow, err)
	}

	return features, nil
}

// Create implements [ReplicaWriter].
func (r *sqlReplica) Create(ctx context.Context, layerID, fid int64, geom []byte, attributes map[string]any) error {
	if len(geom) == 0 {
		return fmt.Errorf("%w: layer %d fid %d", ErrMissingGeometry, layerID, fid)
	}

	row, err := r.newRow(layerID, fid, geom, attributes)
	if err != nil {
		return err
	}

	query, args, err := buildInsertFeatureQuery(r.db.builder(), row)
	if err != nil {
		return fmt.Errorf("%w: %w: %w", ErrPersistence, ErrBuildingSQLQuery, err)
	}

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: layer %d fid %d", ErrDuplicateFeature, layerID, fid)
		}
		return r.fail(ctx, "sqlReplica.Create", ErrExecutingStatement, err)
	}

	return nil
}

// Update implements [ReplicaWriter].
func (r *sqlReplica) Update(ctx context.Context, layerID, fid int64, geom []byte, patch map[string]any) error {
	current, err := r.Get(ctx, layerID, fid)
	if err != nil {
		return err
	}

	attributes := current.Attributes
	if attributes == nil {
		attributes = make(map[string]any, len(patch))
	}
	for k, v := range patch {
		attributes[k] = v
	}

	withGeometry := len(geom) > 0
	if !withGeometry {
		geom = current.Geometry
	}

	row, err := r.newRow(layerID, fid, geom, attributes)
	if err != nil {
		return err
	}

	query, args, err := buildUpdateFeatureQuery(r.db.builder(), row, withGeometry)
	if err != nil {
		return fmt.Errorf("%w: %w: %w", ErrPersistence, ErrBuildingSQLQuery, err)
	}

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		return r.fail(ctx, "sqlReplica.Update", ErrExecutingStatement, err)
	}

	return nil
}

// Delete implements [ReplicaWriter].
func (r *sqlReplica) Delete(ctx context.Context, layerID, fid int64) error {
	query, args, err := buildDeleteFeatureQuery(r.db.builder(), layerID, fid)
	if err != nil {
		return fmt.Errorf("%w: %w: %w", ErrPersistence, ErrBuildingSQLQuery, err)
	}

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return r.fail(ctx, "sqlReplica.Delete", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return r.fail(ctx, "sqlReplica.Delete", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: layer %d fid %d", ErrUnknownFeature, layerID, fid)
	}

	return nil
}

// Truncate implements [ReplicaWriter].
func (r *sqlReplica) Truncate(ctx context.Context, layerID int64) error {
	query, args, err := buildTruncateLayerQuery(r.db.builder(), layerID)
	if err != nil {
		return fmt.Errorf("%w: %w: %w", ErrPersistence, ErrBuildingSQLQuery, err)
	}

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		return r.fail(ctx, "sqlReplica.Truncate", ErrExecutingStatement, err)
	}

	return nil
}

// newRow computes the bounding box of geom and encodes the attributes.
// Undecodable geometry is rejected before it reaches the table.
func (r *sqlReplica) newRow(layerID, fid int64, geom []byte, attributes map[string]any) (replicaRow, error) {
	env, err := geometry.EnvelopeOf(r.decoder, geom)
	if err != nil {
		return replicaRow{}, fmt.Errorf("layer %d fid %d: %w", layerID, fid, err)
	}

	if attributes == nil {
		attributes = map[string]any{}
	}
	encoded, err := json.Marshal(attributes)
	if err != nil {
		return replicaRow{}, fmt.Errorf("%w: encode attributes of fid %d: %w", ErrPersistence, fid, err)
	}

	return replicaRow{
		layerID:    layerID,
		fid:        fid,
		geometry:   string(geom),
		envelope:   env,
		attributes: string(encoded),
	}, nil
}

func (r *sqlReplica) fail(ctx context.Context, fn string, kind, err error) error {
	logger.FromContext(ctx).Err(err).
		Str("func", fn).
		Bool("retryable", r.db.retryable(err)).
		Msg(kind.Error())
	return fmt.Errorf("%w: %w: %w", ErrPersistence, kind, err)
}

func scanFeature(row rowScanner) (models.ReplicaFeature, error) {
	var (
		feature    models.ReplicaFeature
		geom       string
		attributes string
	)

	if err := row.Scan(&feature.FID, &geom, &attributes); err != nil {
		return models.ReplicaFeature{}, err
	}

	decoded, err := models.DecodeAttributes([]byte(attributes))
	if err != nil {
		return models.ReplicaFeature{}, fmt.Errorf("decode attributes of fid %d: %w", feature.FID, err)
	}
	feature.Geometry = []byte(geom)
	feature.Attributes = decoded

	return feature, nil
}
