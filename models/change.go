// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Action is the kind of mutation a change record carries.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// actionContinue marks the pagination entry of a change feed.
const actionContinue = "continue"

// ParseAction maps a remote change action (either "feature.create" or the
// bare "create") to an [Action]. ok is false for actions the geofencer does
// not replay.
func ParseAction(raw string) (action Action, ok bool) {
	switch strings.TrimPrefix(strings.ToLower(raw), "feature.") {
	case string(ActionCreate):
		return ActionCreate, true
	case string(ActionUpdate):
		return ActionUpdate, true
	case string(ActionDelete):
		return ActionDelete, true
	}
	return "", false
}

// FieldValue is a single (field id, value) pair of a change payload.
// On the wire it is encoded as a two-element JSON array. Numeric values
// follow the rules of [DecodeAttributes].
type FieldValue struct {
	FieldID int64
	Value   any
}

func (f *FieldValue) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("decode field pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("decode field pair: expected 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &f.FieldID); err != nil {
		return fmt.Errorf("decode field id: %w", err)
	}
	value, err := DecodeAttributeValue(pair[1])
	if err != nil {
		return fmt.Errorf("decode field value: %w", err)
	}
	f.Value = value
	return nil
}

func (f FieldValue) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{f.FieldID, f.Value})
}

// RawChange is one entry of the remote change feed. Every attribute is
// optional on the wire.
type RawChange struct {
	Action string       `json:"action"`
	FID    *int64       `json:"fid,omitempty"`
	VID    *int64       `json:"vid,omitempty"`
	Geom   *string      `json:"geom,omitempty"`
	Fields []FieldValue `json:"fields,omitempty"`
	URL    string       `json:"url,omitempty"`
}

// IsContinuation reports whether the entry points at the next page of the
// feed instead of describing a change.
func (r RawChange) IsContinuation() bool {
	return r.Action == actionContinue && r.URL != ""
}

// ChangesCheck is the response of the changes/check endpoint.
type ChangesCheck struct {
	Epoch   int64  `json:"epoch"`
	Initial int64  `json:"initial"`
	Target  int64  `json:"target"`
	Fetch   string `json:"fetch"`
}

// VersionInfo is the per-version metadata of a layer.
type VersionInfo struct {
	ID        int64     `json:"id"`
	Timestamp Timestamp `json:"tstamp"`
}

// ChangeRecord is a single feature mutation of one layer, resolved to the
// point in time its version was committed.
type ChangeRecord struct {
	Role      LayerRole
	LayerID   int64
	FID       int64
	Action    Action
	Geometry  []byte // nil when the payload carries no geometry
	Fields    []FieldValue
	VersionID int64
	Timestamp time.Time
}

func (c ChangeRecord) String() string {
	return fmt.Sprintf("%s %s fid=%d vid=%d", c.Role, c.Action, c.FID, c.VersionID)
}

// Timestamp decodes the several time layouts the remote API emits
// (RFC 3339 with or without zone, with optional fractional seconds).
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decode timestamp: %w", err)
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("decode timestamp: unsupported layout %q", raw)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}
