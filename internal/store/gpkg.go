// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Wobas/ngw-geofencer/internal/geometry"
	"github.com/Wobas/ngw-geofencer/internal/logger"
	"github.com/Wobas/ngw-geofencer/models"
)

// ErrInvalidGeoPackage is returned for snapshots that are not a feature
// GeoPackage or carry geometry blobs that cannot be decoded.
var ErrInvalidGeoPackage = errors.New("invalid geopackage")

// remoteFIDColumn holds the remote feature id in exported snapshots.
const remoteFIDColumn = "ngw_id"

// GeoPackage geometry blob header flags.
const (
	gpkgFlagEmpty    = 0x10
	gpkgFlagExtended = 0x20
)

// gpkgEnvelopeSizes maps the envelope indicator of the header flags to the
// envelope length in bytes.
var gpkgEnvelopeSizes = map[byte]int{0: 0, 1: 32, 2: 48, 3: 48, 4: 64}

// ReadGeoPackage calls fn for every feature of the first feature table of
// the GeoPackage file at path. Geometries are converted to WKT; features
// with an empty or missing geometry are skipped.
func ReadGeoPackage(ctx context.Context, path string, fn func(models.ReplicaFeature) error) error {
	log := logger.FromContext(ctx)

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return fmt.Errorf("%w: open snapshot: %w", ErrPersistence, err)
	}
	defer db.Close()

	var table, geomColumn string
	err = db.QueryRowContext(ctx, `SELECT c.table_name, g.column_name
		FROM gpkg_contents c
		JOIN gpkg_geometry_columns g ON g.table_name = c.table_name
		WHERE c.data_type = 'features'
		ORDER BY c.table_name
		LIMIT 1`).Scan(&table, &geomColumn)
	if err != nil {
		return fmt.Errorf("%w: no feature table: %w", ErrInvalidGeoPackage, err)
	}

	columns, pkColumn, err := tableColumns(ctx, db, table)
	if err != nil {
		return err
	}

	fidColumn := pkColumn
	for _, c := range columns {
		if c == remoteFIDColumn {
			fidColumn = remoteFIDColumn
		}
	}
	if fidColumn == "" {
		return fmt.Errorf("%w: table %q has no feature id column", ErrInvalidGeoPackage, table)
	}

	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdent(c)
	}
	rows, err := db.QueryContext(ctx, "SELECT "+strings.Join(quoted, ", ")+" FROM "+quoteIdent(table))
	if err != nil {
		return fmt.Errorf("%w: %w: %w", ErrPersistence, ErrExecutingQuery, err)
	}
	defer rows.Close()

	var read, skipped int
	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err = rows.Scan(dest...); err != nil {
			return fmt.Errorf("%w: %w: %w", ErrPersistence, ErrScanningRow, err)
		}

		feature := models.ReplicaFeature{Attributes: make(map[string]any, len(columns))}
		var blob []byte
		for i, c := range columns {
			switch c {
			case fidColumn:
				fid, convErr := toInt64(values[i])
				if convErr != nil {
					return fmt.Errorf("%w: feature id: %w", ErrInvalidGeoPackage, convErr)
				}
				feature.FID = fid
			case geomColumn:
				blob, _ = values[i].([]byte)
			case pkColumn:
			default:
				feature.Attributes[c] = normalizeValue(values[i])
			}
		}

		wkt, convErr := gpkgToWKT(blob)
		if convErr != nil {
			return fmt.Errorf("fid %d: %w", feature.FID, convErr)
		}
		if wkt == nil {
			skipped++
			continue
		}
		feature.Geometry = wkt

		if err = fn(feature); err != nil {
			return err
		}
		read++
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("%w: %w: %w", ErrPersistence, ErrScanningRow, err)
	}

	log.Debug().Str("table", table).Int("features", read).Int("skipped", skipped).Msg("snapshot read")
	return nil
}

// ReplaceLayer truncates layerID in w and fills it from the GeoPackage at
// path. It returns the number of features written.
func ReplaceLayer(ctx context.Context, w ReplicaWriter, layerID int64, path string) (int, error) {
	if err := w.Truncate(ctx, layerID); err != nil {
		return 0, err
	}

	var n int
	err := ReadGeoPackage(ctx, path, func(f models.ReplicaFeature) error {
		if err := w.Create(ctx, layerID, f.FID, f.Geometry, f.Attributes); err != nil {
			return err
		}
		n++
		return nil
	})
	if err != nil {
		return 0, err
	}

	return n, nil
}

func tableColumns(ctx context.Context, db *sql.DB, table string) (columns []string, pkColumn string, err error) {
	rows, err := db.QueryContext(ctx, "PRAGMA table_info("+quoteIdent(table)+")")
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w: %w", ErrPersistence, ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid, notNull, pk int
			name, ctype      string
			dflt             sql.NullString
		)
		if err = rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return nil, "", fmt.Errorf("%w: %w: %w", ErrPersistence, ErrScanningRow, err)
		}
		columns = append(columns, name)
		if pk == 1 {
			pkColumn = name
		}
	}

	return columns, pkColumn, rows.Err()
}

// gpkgToWKT strips the GeoPackage header from blob and converts the WKB
// remainder to WKT. It returns nil for empty geometries.
func gpkgToWKT(blob []byte) ([]byte, error) {
	if len(blob) == 0 {
		return nil, nil
	}
	if len(blob) < 8 || blob[0] != 'G' || blob[1] != 'P' {
		return nil, fmt.Errorf("%w: bad geometry header", ErrInvalidGeoPackage)
	}

	flags := blob[3]
	if flags&gpkgFlagExtended != 0 {
		return nil, fmt.Errorf("%w: extended geometry types are not supported", ErrInvalidGeoPackage)
	}
	if flags&gpkgFlagEmpty != 0 {
		return nil, nil
	}

	envelope, ok := gpkgEnvelopeSizes[(flags>>1)&0x07]
	if !ok || len(blob) < 8+envelope {
		return nil, fmt.Errorf("%w: bad envelope", ErrInvalidGeoPackage)
	}

	wkt, err := geometry.WKBToWKT(blob[8+envelope:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGeoPackage, err)
	}
	return wkt, nil
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case float64:
		return int64(n), nil
	case []byte:
		return strconv.ParseInt(string(n), 10, 64)
	case string:
		return strconv.ParseInt(n, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}

func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
