// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/Wobas/ngw-geofencer/internal/adapter"
	"github.com/Wobas/ngw-geofencer/internal/logger"
	"github.com/Wobas/ngw-geofencer/models"
)

type changeFetcher struct {
	adapter adapter.LayerAdapter
}

// NewChangeFetcher constructs a [ChangeFetcher] over layerAdapter.
func NewChangeFetcher(layerAdapter adapter.LayerAdapter) ChangeFetcher {
	return &changeFetcher{adapter: layerAdapter}
}

// Diff implements [ChangeFetcher]. It returns the feature changes of the
// layer bound by binding that happened after version from up to and
// including version to, stable-sorted by the time of their version.
//
// The change feed is read in three steps: a check request opening the
// feed for epoch, every page of the feed (continuation entries followed
// until the last page) and one metadata request per version in [from, to]
// to resolve timestamps.
//
// Feed entries are filtered before they become records:
//
//   - without a version id the change has no resolvable time and is
//     dropped;
//   - without a feature id the change cannot be applied to the replica and
//     is dropped; the server is not expected to send such entries, so they
//     are counted separately and reported at warn level;
//   - actions other than create, update and delete (e.g. attachment
//     changes) are ignored.
//
// Parameters:
//
//	ctx     - request scoped context, carries the cycle logger
//	binding - the layer to read and the role stamped on every record
//	from    - last version already applied; exclusive
//	to      - target version; inclusive
//	epoch   - versioning epoch the versions belong to
//
// Returns:
//
//	[]models.ChangeRecord - the changes in timestamp order; nil when from >= to
//	error                 - adapter failures, a looping feed, or
//	                        [ErrPartialVersionFetch] when a version cannot be read
func (f *changeFetcher) Diff(ctx context.Context, binding models.LayerBinding, from, to, epoch int64) ([]models.ChangeRecord, error) {
	log := logger.FromContext(ctx)
	if from >= to {
		return nil, nil
	}

	check, err := f.adapter.CheckChanges(ctx, binding.LayerID, epoch, from, to)
	if err != nil {
		return nil, fmt.Errorf("check changes of %s: %w", binding, err)
	}

	raw, err := f.fetchAll(ctx, check.Fetch)
	if err != nil {
		return nil, fmt.Errorf("fetch changes of %s: %w", binding, err)
	}

	timestamps, err := f.versionTimestamps(ctx, binding.LayerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", binding, err)
	}

	records := make([]models.ChangeRecord, 0, len(raw))
	var noVersion, noFeature, ignored int
	for _, r := range raw {
		if r.VID == nil {
			noVersion++
			continue
		}
		if r.FID == nil {
			noFeature++
			log.Debug().Str("action", r.Action).Int64("vid", *r.VID).Msg("change without feature id")
			continue
		}

		action, ok := models.ParseAction(r.Action)
		if !ok {
			ignored++
			log.Debug().Str("action", r.Action).Int64("fid", *r.FID).Msg("ignoring change action")
			continue
		}

		record := models.ChangeRecord{
			Role:      binding.Role,
			LayerID:   binding.LayerID,
			FID:       *r.FID,
			Action:    action,
			Fields:    r.Fields,
			VersionID: *r.VID,
			Timestamp: timestamps[*r.VID],
		}
		if r.Geom != nil && *r.Geom != "" {
			record.Geometry = []byte(*r.Geom)
		}
		records = append(records, record)
	}

	SortByTimestamp(records)

	if noFeature > 0 {
		log.Warn().
			Str("layer", binding.String()).
			Int("dropped_no_fid", noFeature).
			Msg("change feed entries without feature id dropped")
	}

	log.Debug().
		Str("layer", binding.String()).
		Int64("from", from).
		Int64("to", to).
		Int("changes", len(records)).
		Int("dropped_no_vid", noVersion).
		Int("dropped_no_fid", noFeature).
		Int("ignored", ignored).
		Msg("diff fetched")

	return records, nil
}

// fetchAll follows the continuation entries of a change feed until the last
// page.
func (f *changeFetcher) fetchAll(ctx context.Context, fetchURL string) ([]models.RawChange, error) {
	var (
		all     []models.RawChange
		visited = make(map[string]struct{})
	)

	for fetchURL != "" {
		if _, seen := visited[fetchURL]; seen {
			return nil, fmt.Errorf("change feed loops back to %q", fetchURL)
		}
		visited[fetchURL] = struct{}{}

		page, err := f.adapter.FetchChanges(ctx, fetchURL)
		if err != nil {
			return nil, err
		}

		fetchURL = ""
		for _, r := range page {
			if r.IsContinuation() {
				fetchURL = r.URL
				continue
			}
			all = append(all, r)
		}
	}

	return all, nil
}

// versionTimestamps fetches the metadata of every version in [from, to].
// It issues one request per version: the cost grows linearly with the size
// of the version gap, and there is no batched endpoint to fall back to.
func (f *changeFetcher) versionTimestamps(ctx context.Context, layerID, from, to int64) (map[int64]time.Time, error) {
	timestamps := make(map[int64]time.Time, to-from+1)

	for v := from; v <= to; v++ {
		info, err := f.adapter.GetVersion(ctx, layerID, v)
		if err != nil {
			return nil, fmt.Errorf("%w: version %d of layer %d: %w", ErrPartialVersionFetch, v, layerID, err)
		}

		id := info.ID
		if id == 0 {
			id = v
		}
		timestamps[id] = info.Timestamp.Time
	}

	return timestamps, nil
}

// SortByTimestamp stable-sorts records by timestamp ascending. Records with
// a zero timestamp come first; ties keep their relative order.
func SortByTimestamp(records []models.ChangeRecord) {
	slices.SortStableFunc(records, func(a, b models.ChangeRecord) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
}
