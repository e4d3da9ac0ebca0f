// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import "github.com/google/uuid"

// maxForeignIDLength bounds request ids accepted from clients.
const maxForeignIDLength = 64

// IDGenerator issues the ids of sync cycles and API requests. Ids are
// UUIDv7 so that they sort by creation time in logs and reports.
type IDGenerator struct{}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// Generate returns a new UUIDv7, or a random UUIDv4 if the clock based
// variant cannot be produced.
func (g *IDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// Reuse returns id when it is safe to carry into logs and response headers,
// otherwise a freshly generated one. Accepted ids are non-empty, at most 64
// characters long and consist of ASCII letters, digits, '-', '_' and '.'.
//
// Example usage:
//
//	requestID := ids.Reuse(r.Header.Get("X-Request-ID"))
func (g *IDGenerator) Reuse(id string) string {
	if !isSafeID(id) {
		return g.Generate()
	}
	return id
}

func isSafeID(id string) bool {
	if id == "" || len(id) > maxForeignIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}
