package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model interface{}, tableName string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}

	ddl := fmt.Sprintf("CREATE TABLE %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

// ArchiveEvent DDL methods
func (ae ArchiveEvent) TableDDL() string {
	return generateDDL(ae, "archive_events")
}

func (ae ArchiveEvent) IndexDDL() []string {
	return []string{
		"CREATE INDEX idx_archive_events_origin_time ON archive_events(origin_time);",
		"CREATE INDEX idx_archive_events_magnitude ON archive_events(magnitude);",
		"CREATE INDEX idx_archive_events_authority ON archive_events(authority);",
	}
}

func (ae ArchiveEvent) TableName() string {
	return "archive_events"
}

// SchemaVersion DDL methods
func (sv SchemaVersion) TableDDL() string {
	return generateDDL(sv, "schema_versions")
}

func (sv SchemaVersion) IndexDDL() []string {
	return []string{}
}

func (sv SchemaVersion) TableName() string {
	return "schema_versions"
}
