// Package qcat defines the public contracts of the QCat event
// archive. Implementations live in internal/iodb.
package qcat

import (
	"context"

	"github.com/quakepy/qcat/pkg/catalog"
)

// Archiver manages the PostgreSQL archive of flattened event rows.
// Schema management uses GORM AutoMigrate and is idempotent; bulk
// loading uses the pgx COPY protocol.
type Archiver interface {
	// Create creates the archive schema. With overwrite it drops all
	// existing tables first.
	Create(ctx context.Context, overwrite bool) error

	// Migrate updates the archive schema to the latest version.
	Migrate(ctx context.Context) error

	// Load flattens the catalog's events into archive rows and bulk
	// loads them. It returns the number of rows written; events
	// without a located preferred origin are skipped.
	Load(ctx context.Context, cat *catalog.Catalog) (int, error)
}
