// Package schema provides the archive database models for QCat.
// The archive keeps one flattened row per event, built from the
// preferred origin and magnitude, so catalogs can be queried with
// plain SQL without unwinding the full event hierarchy.
package schema

import (
	"database/sql"
	"time"
)

// DDLGenerator defines how Go models generate PostgreSQL DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the PostgreSQL table name for this model.
	TableName() string
}

// ArchiveEvent is the flattened archive row for one event.
type ArchiveEvent struct {
	// EventID is the event's public identifier.
	EventID string `db:"event_id" ddl:"VARCHAR(255) PRIMARY KEY"`

	// Authority is the agency that assigned the identifier.
	Authority string `db:"authority" ddl:"VARCHAR(64) NOT NULL"`

	// Type is the event type ("earthquake", "quarry blast", ...).
	Type string `db:"type" ddl:"VARCHAR(64)"`

	// TypeCertainty is "known" or "suspected" when reported.
	TypeCertainty string `db:"type_certainty" ddl:"VARCHAR(16)"`

	// Region is the geographical region name of the event.
	Region string `db:"region" ddl:"VARCHAR(255)"`

	// OriginTime is the preferred origin time in UTC.
	OriginTime time.Time `db:"origin_time" ddl:"TIMESTAMP WITHOUT TIME ZONE NOT NULL"`

	// Latitude of the preferred origin in degrees.
	Latitude float64 `db:"latitude" ddl:"DOUBLE PRECISION NOT NULL"`

	// Longitude of the preferred origin in degrees.
	Longitude float64 `db:"longitude" ddl:"DOUBLE PRECISION NOT NULL"`

	// DepthM is the focal depth in metres.
	DepthM sql.NullFloat64 `db:"depth_m" ddl:"DOUBLE PRECISION"`

	// HorizontalUncertaintyM is the horizontal location error in
	// metres.
	HorizontalUncertaintyM sql.NullFloat64 `db:"horizontal_uncertainty_m" ddl:"DOUBLE PRECISION"`

	// Magnitude is the preferred magnitude value.
	Magnitude sql.NullFloat64 `db:"magnitude" ddl:"DOUBLE PRECISION"`

	// MagnitudeType is the scale of the preferred magnitude
	// ("ML", "MW", "mb", ...).
	MagnitudeType sql.NullString `db:"magnitude_type" ddl:"VARCHAR(16)"`

	// UpdatedAt records when the row was last written.
	UpdatedAt time.Time `db:"updated_at" ddl:"TIMESTAMP WITHOUT TIME ZONE"`
}

// SchemaVersion tracks database schema migrations.
type SchemaVersion struct {
	Version     string    `db:"version" ddl:"TEXT PRIMARY KEY"`
	Description string    `db:"description" ddl:"TEXT"`
	AppliedAt   time.Time `db:"applied_at" ddl:"TIMESTAMP DEFAULT NOW()"`
}
