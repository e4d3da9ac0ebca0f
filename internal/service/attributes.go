// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/Wobas/ngw-geofencer/models"
)

// attributesOf maps the (field id, value) pairs of a change payload to
// keynames. Pairs of unknown fields are left out.
func attributesOf(fields []models.FieldValue, names map[int64]string) map[string]any {
	attributes := make(map[string]any, len(fields))
	for _, f := range fields {
		if name, ok := names[f.FieldID]; ok {
			attributes[name] = f.Value
		}
	}
	return attributes
}

func displayedFromPayload(fields []models.FieldValue, displayed map[int64]string) map[string]any {
	return attributesOf(fields, displayed)
}

func displayedFromReplica(attributes map[string]any, displayed map[int64]string) map[string]any {
	out := make(map[string]any, len(displayed))
	for _, name := range displayed {
		if v, ok := attributes[name]; ok {
			out[name] = v
		}
	}
	return out
}
