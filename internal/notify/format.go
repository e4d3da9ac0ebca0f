// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Wobas/ngw-geofencer/models"
)

// Message tags. Failures are tagged apart from geofence events so that
// operators can filter them.
const (
	TagGeofence = "[geofence]"
	TagError    = "[error]"
)

// FormatEvent renders a geofence event:
//
//	[geofence] top fid 12 create intersects bottom fid 3
//	top: name=truck-7
//	bottom: zone=north
func FormatEvent(event models.GeofenceEvent) string {
	var b strings.Builder

	changedFID, otherFID := event.TopFID, event.BottomFID
	if event.ChangedRole == models.LayerBottom {
		changedFID, otherFID = event.BottomFID, event.TopFID
	}

	fmt.Fprintf(&b, "%s %s fid %d %s intersects %s fid %d",
		TagGeofence, event.ChangedRole, changedFID, event.Action,
		event.ChangedRole.Opposite(), otherFID)

	writeAttributes(&b, models.LayerTop, event.TopAttributes)
	writeAttributes(&b, models.LayerBottom, event.BottomAttributes)

	return b.String()
}

// FormatFailure renders a failed cycle.
func FormatFailure(cycleID string, err error) string {
	if cycleID == "" {
		return fmt.Sprintf("%s %v", TagError, err)
	}
	return fmt.Sprintf("%s cycle %s: %v", TagError, cycleID, err)
}

func writeAttributes(b *strings.Builder, role models.LayerRole, attributes map[string]any) {
	if len(attributes) == 0 {
		return
	}

	keys := make([]string, 0, len(attributes))
	for k := range attributes {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, attributes[k]))
	}

	fmt.Fprintf(b, "\n%s: %s", role, strings.Join(pairs, ", "))
}
