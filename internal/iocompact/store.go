// Package iocompact persists compact catalogs in SQLite files. This
// is an impure I/O package over pkg/compact.
//
// The store keeps three tables: compact_columns records the data
// column order, compact_events holds one row per event with one REAL
// column per compact column, and compact_comments keeps the comment
// lines. NaN cells are stored as NULL, since SQLite has no NaN.
package iocompact

import (
	"database/sql"
	"fmt"
	"math"
	"strings"

	"github.com/quakepy/qcat/pkg/compact"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGo)
)

// Save writes the compact catalog to an SQLite file, replacing any
// catalog already stored there.
func Save(path string, cc *compact.Catalog) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return OpenStoreError(path, err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return SaveStoreError(path, err)
	}
	defer tx.Rollback()

	drops := []string{
		"DROP TABLE IF EXISTS compact_events",
		"DROP TABLE IF EXISTS compact_columns",
		"DROP TABLE IF EXISTS compact_comments",
	}
	for _, q := range drops {
		if _, err := tx.Exec(q); err != nil {
			return SaveStoreError(path, err)
		}
	}

	creates := []string{
		`CREATE TABLE compact_columns (
			position INTEGER PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE compact_comments (
			position INTEGER PRIMARY KEY,
			text TEXT NOT NULL
		)`,
		eventsDDL(cc.Columns()),
	}
	for _, q := range creates {
		if _, err := tx.Exec(q); err != nil {
			return SaveStoreError(path, err)
		}
	}

	for i, name := range cc.Columns() {
		_, err := tx.Exec(
			"INSERT INTO compact_columns (position, name) VALUES (?, ?)",
			i, name)
		if err != nil {
			return SaveStoreError(path, err)
		}
	}

	for i, text := range cc.Comments() {
		_, err := tx.Exec(
			"INSERT INTO compact_comments (position, text) VALUES (?, ?)",
			i, text)
		if err != nil {
			return SaveStoreError(path, err)
		}
	}

	insert := eventsInsert(cc.Columns())
	stmt, err := tx.Prepare(insert)
	if err != nil {
		return SaveStoreError(path, err)
	}
	defer stmt.Close()

	ids := cc.EventIDs()
	for i := 0; i < cc.Size(); i++ {
		row := cc.Row(i)
		args := make([]any, 0, len(row)+1)
		args = append(args, row[0])
		if len(ids) > 0 {
			args = append(args, ids[i])
		} else {
			args = append(args, nil)
		}
		for _, v := range row[1:] {
			if math.IsNaN(v) {
				args = append(args, nil)
			} else {
				args = append(args, v)
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			return SaveStoreError(path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return SaveStoreError(path, err)
	}
	return nil
}

// Load reads a compact catalog from an SQLite file written by Save.
func Load(path string) (*compact.Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, OpenStoreError(path, err)
	}
	defer db.Close()

	cols, err := loadColumns(db, path)
	if err != nil {
		return nil, err
	}

	rows, ids, err := loadEvents(db, path, cols)
	if err != nil {
		return nil, err
	}

	cc, err := compact.FromRows(cols, rows, ids)
	if err != nil {
		return nil, err
	}

	comments, err := db.Query(
		"SELECT text FROM compact_comments ORDER BY position")
	if err != nil {
		return nil, LoadStoreError(path, err)
	}
	defer comments.Close()
	for comments.Next() {
		var text string
		if err := comments.Scan(&text); err != nil {
			return nil, LoadStoreError(path, err)
		}
		cc.AddComment(text)
	}
	if err := comments.Err(); err != nil {
		return nil, LoadStoreError(path, err)
	}

	return cc, nil
}

func loadColumns(db *sql.DB, path string) ([]string, error) {
	rows, err := db.Query(
		"SELECT name FROM compact_columns ORDER BY position")
	if err != nil {
		return nil, LoadStoreError(path, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, LoadStoreError(path, err)
		}
		cols = append(cols, name)
	}
	if err := rows.Err(); err != nil {
		return nil, LoadStoreError(path, err)
	}
	return cols, nil
}

func loadEvents(
	db *sql.DB,
	path string,
	cols []string,
) ([][]float64, []string, error) {
	query := fmt.Sprintf(
		"SELECT idx, event_id, %s FROM compact_events ORDER BY idx",
		strings.Join(quoteAll(cols), ", "))

	res, err := db.Query(query)
	if err != nil {
		return nil, nil, LoadStoreError(path, err)
	}
	defer res.Close()

	var data [][]float64
	var ids []string
	var haveIDs bool

	for res.Next() {
		row := make([]float64, len(cols)+1)
		cells := make([]sql.NullFloat64, len(cols))
		var eventID sql.NullString

		dest := make([]any, 0, len(cols)+2)
		dest = append(dest, &row[0], &eventID)
		for i := range cells {
			dest = append(dest, &cells[i])
		}
		if err := res.Scan(dest...); err != nil {
			return nil, nil, LoadStoreError(path, err)
		}

		for i, c := range cells {
			if c.Valid {
				row[i+1] = c.Float64
			} else {
				row[i+1] = math.NaN()
			}
		}
		data = append(data, row)

		if eventID.Valid && eventID.String != "" {
			haveIDs = true
		}
		ids = append(ids, eventID.String)
	}
	if err := res.Err(); err != nil {
		return nil, nil, LoadStoreError(path, err)
	}

	if !haveIDs {
		ids = nil
	}
	return data, ids, nil
}

func eventsDDL(cols []string) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE compact_events (\n")
	b.WriteString("    idx REAL NOT NULL,\n")
	b.WriteString("    event_id TEXT")
	for _, c := range cols {
		fmt.Fprintf(&b, ",\n    %s REAL", quote(c))
	}
	b.WriteString("\n)")
	return b.String()
}

func eventsInsert(cols []string) string {
	names := append([]string{"idx", "event_id"}, quoteAll(cols)...)
	marks := strings.TrimSuffix(
		strings.Repeat("?, ", len(names)), ", ")
	return fmt.Sprintf("INSERT INTO compact_events (%s) VALUES (%s)",
		strings.Join(names, ", "), marks)
}

func quote(name string) string {
	return `"` + name + `"`
}

func quoteAll(names []string) []string {
	out := make([]string, len(names))
	for i, v := range names {
		out[i] = quote(v)
	}
	return out
}
