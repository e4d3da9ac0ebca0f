// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by replica and watermark stores to signal
// well-known failure conditions. Callers should use [errors.Is] to match
// against these values.
var (
	// ErrUnknownFeature is returned when an update or delete targets a
	// feature id that is not present in the replica.
	ErrUnknownFeature = errors.New("unknown feature")

	// ErrMissingGeometry is returned when a feature is created without a
	// geometry.
	ErrMissingGeometry = errors.New("missing geometry")

	// ErrDuplicateFeature is returned when a create targets a feature id
	// that already exists in the replica.
	ErrDuplicateFeature = errors.New("duplicate feature")

	// ErrPersistence wraps every I/O failure of the replica database, the
	// watermark file or the snapshot reader.
	ErrPersistence = errors.New("persistence error")

	// ErrTxDone is returned by a replica transaction after Commit or
	// Rollback.
	ErrTxDone = errors.New("replica transaction already finished")
)

// Low-level database operation errors. They are always wrapped together
// with [ErrPersistence].
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning a replica row fails.
	ErrScanningRow = errors.New("failed to scan replica row")
)
