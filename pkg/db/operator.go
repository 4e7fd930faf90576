package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quakepy/qcat/pkg/config"
)

// Operator defines the interface for basic database management
// operations. It provides connection lifecycle management and exposes
// the pgxpool.Pool so the archiver can run its specialized SQL
// operations (bulk CopyFrom loads, custom queries) internally.
type Operator interface {
	// Connect establishes a connection pool to the archive database.
	Connect(context.Context, *config.ArchiveConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool for bulk inserts and
	// custom queries.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables in the public
	// schema. Used to decide whether schema creation should prompt
	// before overwriting.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables in the public schema. Used when
	// the archive is recreated from scratch.
	DropAllTables(ctx context.Context) error
}
