package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError
	FetchURLError
	CompressionError
	CreateLogFileError

	// XML serialization errors
	XMLParseError
	XMLRootTagError
	XMLDeclarationError
	XMLCoercionError
	XMLUnknownTypeError

	// Catalog errors
	CatalogCutError
	CatalogTimeSpanError

	// Format importer errors
	FormatLineError
	FormatHeaderError
	FormatTokenCountError
	FormatPhaseOrphanError

	// Compact catalog errors
	CompactColumnError
	CompactHeaderError
	CompactStoreError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableCheckError
	DBCopyError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
)
