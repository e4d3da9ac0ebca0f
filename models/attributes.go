// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// DecodeAttributes decodes a JSON object of feature attributes.
//
// Numbers keep their integer identity: a value written without fraction or
// exponent that fits into int64 becomes int64, any other number becomes
// float64. Identifiers larger than 2^53 therefore survive a round trip
// through storage unchanged.
//
// Parameters:
//
//	data - a JSON object, e.g. {"name":"truck","speed":42}
//
// Returns:
//
//	map[string]any - the attributes; nil for a JSON null
//	error          - non-nil if data is not a single JSON object
func DecodeAttributes(data []byte) (map[string]any, error) {
	var attributes map[string]any
	if err := decodeNumbers(data, &attributes); err != nil {
		return nil, err
	}
	for k, v := range attributes {
		attributes[k] = normalizeNumbers(v)
	}
	return attributes, nil
}

// DecodeAttributeValue decodes a single attribute value with the number
// rules of [DecodeAttributes].
func DecodeAttributeValue(data []byte) (any, error) {
	var value any
	if err := decodeNumbers(data, &value); err != nil {
		return nil, err
	}
	return normalizeNumbers(value), nil
}

func decodeNumbers(data []byte, out any) error {
	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()
	if err := d.Decode(out); err != nil {
		return err
	}
	if _, err := d.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}

func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeNumbers(e)
		}
	case []any:
		for i, e := range t {
			t[i] = normalizeNumbers(e)
		}
	}
	return v
}
