// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/Wobas/ngw-geofencer/internal/config"
	"github.com/Wobas/ngw-geofencer/internal/logger"
	"github.com/Wobas/ngw-geofencer/migrations"
)

// Dialect names the SQL backend of a [DB]. The values double as goose
// dialect names.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

// ErrorClassificator decides whether a failed database operation may
// succeed when retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// DB is a database connection together with the dialect specific helpers
// the repositories need.
type DB struct {
	*sql.DB
	dialect            Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens the replica database described by cfg: postgres for a
// postgres:// DSN, sqlite otherwise.
func NewConnect(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (*DB, error) {
	if cfg.IsPostgres() {
		return NewConnectPostgres(ctx, cfg.ReplicaDSN, log)
	}
	return NewConnectSQLite(ctx, cfg.ReplicaDSN, log)
}

// Dialect returns the SQL backend of the connection.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate brings the schema to the latest version.
func (db *DB) Migrate() error {
	if err := migrations.Migrate(db.DB, string(db.dialect)); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

func (db *DB) builder() sq.StatementBuilderType {
	return statementBuilder(db.dialect)
}

func (db *DB) retryable(err error) bool {
	if db.errorClassificator == nil {
		return false
	}
	return db.errorClassificator.Classify(err) == Retryable
}

func statementBuilder(dialect Dialect) sq.StatementBuilderType {
	if dialect == DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}
