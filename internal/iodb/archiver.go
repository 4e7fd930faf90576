package iodb

import (
	"context"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/quakepy/qcat/pkg/catalog"
	"github.com/quakepy/qcat/pkg/config"
	"github.com/quakepy/qcat/pkg/db"
	"github.com/quakepy/qcat/pkg/qcat"
	"github.com/quakepy/qcat/pkg/schema"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// schemaVersion is stamped into schema_versions on Create and
// Migrate.
const schemaVersion = "1.0.0"

// archiver implements the qcat.Archiver interface using GORM for
// schema management and the pgx COPY protocol for bulk loads.
type archiver struct {
	operator db.Operator
	cfg      *config.Config
}

// NewArchiver creates a new Archiver over an already connected
// operator.
func NewArchiver(op db.Operator, cfg *config.Config) qcat.Archiver {
	return &archiver{operator: op, cfg: cfg}
}

func (a *archiver) gormDB() (*gorm.DB, error) {
	pool := a.operator.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}

	conn := stdlib.OpenDBFromPool(pool)
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: conn}),
		&gorm.Config{},
	)
	if err != nil {
		return nil, GORMConnectionError(a.cfg.Archive.Database, err)
	}
	return gormDB, nil
}

// Create creates the archive schema using GORM AutoMigrate. With
// overwrite it drops all existing tables first.
func (a *archiver) Create(ctx context.Context, overwrite bool) error {
	if overwrite {
		if err := a.operator.DropAllTables(ctx); err != nil {
			return err
		}
	}

	gormDB, err := a.gormDB()
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB); err != nil {
		return SchemaCreateError(err)
	}

	return a.stampVersion(ctx, "initial archive schema")
}

// Migrate updates the archive schema to the latest version using
// GORM AutoMigrate.
func (a *archiver) Migrate(ctx context.Context) error {
	gormDB, err := a.gormDB()
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB); err != nil {
		return SchemaMigrateError(err)
	}

	return a.stampVersion(ctx, "archive schema migration")
}

func (a *archiver) stampVersion(
	ctx context.Context,
	description string,
) error {
	pool := a.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	query := `
		INSERT INTO schema_versions (version, description, applied_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (version) DO UPDATE
		SET description = $2, applied_at = $3
	`
	_, err := pool.Exec(ctx, query,
		schemaVersion, description, time.Now().UTC())
	if err != nil {
		return SchemaCreateError(err)
	}
	return nil
}

// Load flattens the catalog's events into archive rows and bulk
// loads them with CopyFrom in batches. Events without a located
// preferred origin are skipped.
func (a *archiver) Load(
	ctx context.Context,
	cat *catalog.Catalog,
) (int, error) {
	pool := a.operator.Pool()
	if pool == nil {
		return 0, NotConnectedError()
	}

	now := time.Now()
	events := cat.Events()
	rows := make([][]any, 0, len(events))
	var skipped int
	for _, ev := range events {
		ae, ok := schema.FromEvent(ev, now)
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, ae.Row())
	}

	batchSize := a.cfg.Archive.BatchSize
	if batchSize == 0 {
		batchSize = 50_000
	}

	columns := schema.ArchiveColumns()
	table := schema.ArchiveEvent{}.TableName()
	totalSaved := 0

	bar := pb.Full.Start(len(rows))
	bar.Set("prefix", "Archiving events: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	for i := 0; i < len(rows); i += batchSize {
		end := i + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[i:end]

		copyCount, err := pool.CopyFrom(
			ctx,
			pgx.Identifier{table},
			columns,
			pgx.CopyFromRows(batch),
		)
		if err != nil {
			return totalSaved, CopyError(table, err)
		}

		totalSaved += int(copyCount)
		bar.Add(len(batch))
	}

	slog.Info("Archived catalog",
		"events", totalSaved,
		"skipped", skipped,
	)
	return totalSaved, nil
}
