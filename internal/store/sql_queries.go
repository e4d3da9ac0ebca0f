// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/Wobas/ngw-geofencer/internal/geometry"
)

const replicaTable = "replica_features"

var replicaColumns = []string{"fid", "geometry", "attributes"}

// replicaRow is the column set written for a feature.
type replicaRow struct {
	layerID    int64
	fid        int64
	geometry   string
	envelope   geometry.Envelope
	attributes string
}

func featureKey(layerID, fid int64) sq.And {
	return sq.And{sq.Eq{"layer_id": layerID}, sq.Eq{"fid": fid}}
}

func buildGetFeatureQuery(b sq.StatementBuilderType, layerID, fid int64) (string, []any, error) {
	return b.Select(replicaColumns...).
		From(replicaTable).
		Where(featureKey(layerID, fid)).
		ToSql()
}

// buildFindInEnvelopeQuery selects the features whose stored bounding box
// overlaps env (closed intervals on both axes).
func buildFindInEnvelopeQuery(b sq.StatementBuilderType, layerID int64, env geometry.Envelope) (string, []any, error) {
	return b.Select(replicaColumns...).
		From(replicaTable).
		Where(sq.And{
			sq.Eq{"layer_id": layerID},
			sq.LtOrEq{"min_x": env.MaxX},
			sq.GtOrEq{"max_x": env.MinX},
			sq.LtOrEq{"min_y": env.MaxY},
			sq.GtOrEq{"max_y": env.MinY},
		}).
		OrderBy("fid").
		ToSql()
}

func buildInsertFeatureQuery(b sq.StatementBuilderType, row replicaRow) (string, []any, error) {
	return b.Insert(replicaTable).
		Columns("layer_id", "fid", "geometry", "min_x", "min_y", "max_x", "max_y", "attributes").
		Values(row.layerID, row.fid, row.geometry,
			row.envelope.MinX, row.envelope.MinY, row.envelope.MaxX, row.envelope.MaxY,
			row.attributes).
		ToSql()
}

// buildUpdateFeatureQuery rewrites the attributes and, when withGeometry is
// set, the geometry and its bounding box.
func buildUpdateFeatureQuery(b sq.StatementBuilderType, row replicaRow, withGeometry bool) (string, []any, error) {
	update := b.Update(replicaTable)
	if withGeometry {
		update = update.
			Set("geometry", row.geometry).
			Set("min_x", row.envelope.MinX).
			Set("min_y", row.envelope.MinY).
			Set("max_x", row.envelope.MaxX).
			Set("max_y", row.envelope.MaxY)
	}

	return update.
		Set("attributes", row.attributes).
		Where(featureKey(row.layerID, row.fid)).
		ToSql()
}

func buildDeleteFeatureQuery(b sq.StatementBuilderType, layerID, fid int64) (string, []any, error) {
	return b.Delete(replicaTable).
		Where(featureKey(layerID, fid)).
		ToSql()
}

func buildTruncateLayerQuery(b sq.StatementBuilderType, layerID int64) (string, []any, error) {
	return b.Delete(replicaTable).
		Where(sq.Eq{"layer_id": layerID}).
		ToSql()
}
