// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, id generation,
// HTTP response writing and HTTP client initialization.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// CycleIDCtxKey is the key used to store the id of the running sync cycle
// in the context.
var CycleIDCtxKey = contextKey("cycleID")

// WithCycleID returns a copy of ctx carrying cycleID.
func WithCycleID(ctx context.Context, cycleID string) context.Context {
	return context.WithValue(ctx, CycleIDCtxKey, cycleID)
}

// GetCycleIDFromContext retrieves the sync cycle id from the context.
//
// ok is false when the value is missing, empty or not a string.
//
// Example usage:
//
//	cycleID, ok := utils.GetCycleIDFromContext(ctx)
//	if !ok {
//	    // called outside of a cycle
//	}
func GetCycleIDFromContext(ctx context.Context) (string, bool) {
	cycleID, ok := ctx.Value(CycleIDCtxKey).(string)
	return cycleID, ok && cycleID != ""
}
