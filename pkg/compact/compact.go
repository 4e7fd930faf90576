// Package compact provides a dense columnar snapshot of an event
// catalog: one numeric row per event, columns chosen by the caller.
// The snapshot is derived once from an event tree and does not track
// later mutation of the source.
package compact

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/quakepy/qcat/pkg/model"
	"github.com/quakepy/qcat/pkg/qmath"
)

// StandardColumns are the default data columns. The idx column is
// implicit and always first.
func StandardColumns() []string {
	return []string{"lon", "lat", "depth", "time", "mag"}
}

const (
	floatFmt = "%12.8e"
	// time and time_err columns carry a decimal year and need the
	// extra digits
	timeFmt = "%20.16e"
)

// Catalog is a column-mapped table with one row per event. The first
// column is always the running row index; the time column holds a
// decimal year.
type Catalog struct {
	cols     []string // data columns, idx excluded
	rows     [][]float64
	idMap    []string // event publicID per row
	comments []string
}

// New returns an empty compact catalog. Columns are fixed by the
// first Update, Read, or ImportZMAP call.
func New() *Catalog {
	return &Catalog{}
}

// FromRows builds a catalog from raw row data, as stored by the
// SQLite persistence layer. Every row must carry the idx column plus
// one value per data column; ids, when given, must align with rows.
func FromRows(cols []string, rows [][]float64, ids []string) (*Catalog, error) {
	for i, row := range rows {
		if len(row) != len(cols)+1 {
			return nil, RowWidthError(i+1, len(row), len(cols)+1)
		}
	}
	if len(ids) > 0 && len(ids) != len(rows) {
		return nil, RowWidthError(0, len(ids), len(rows))
	}
	return &Catalog{
		cols:  append([]string{}, cols...),
		rows:  rows,
		idMap: ids,
	}, nil
}

// Columns returns the data column names, idx excluded.
func (c *Catalog) Columns() []string { return c.cols }

// Size returns the number of rows.
func (c *Catalog) Size() int { return len(c.rows) }

// Comments returns the comment lines.
func (c *Catalog) Comments() []string { return c.comments }

// AddComment appends a comment line.
func (c *Catalog) AddComment(text string) {
	c.comments = append(c.comments, text)
}

// EventIDs returns the event publicID per row. Rows created by Read
// or ImportZMAP have no identifiers and return an empty slice.
func (c *Catalog) EventIDs() []string { return c.idMap }

// Row returns row i including the leading idx column.
func (c *Catalog) Row(i int) []float64 { return c.rows[i] }

// Value returns the value of the named column in row i.
func (c *Catalog) Value(i int, column string) (float64, error) {
	pos, ok := c.columnIndex(column)
	if !ok {
		return 0, IllegalColumnError(column)
	}
	return c.rows[i][pos], nil
}

// columnIndex maps a column name to its position in a row. The idx
// column is position 0; data columns follow in order.
func (c *Catalog) columnIndex(column string) (int, bool) {
	if column == "idx" {
		return 0, true
	}
	for i, v := range c.cols {
		if v == column {
			return i + 1, true
		}
	}
	return 0, false
}

// AddColumn appends a new data column filled with NaN.
func (c *Catalog) AddColumn(column string) error {
	if _, ok := c.columnIndex(column); ok {
		return IllegalColumnError(column)
	}
	c.cols = append(c.cols, column)
	for i := range c.rows {
		c.rows[i] = append(c.rows[i], math.NaN())
	}
	return nil
}

// Update appends one row per event from the tree's preferred origins
// and magnitudes. Values the event cannot provide become NaN. On the
// first call the columns become fixed; later calls must pass the
// same set. Catalog comments carry over once, when the compact
// catalog has none yet.
func (c *Catalog) Update(
	root *model.EventParameters,
	columns ...string,
) error {
	if len(columns) == 0 {
		columns = StandardColumns()
	}

	if c.cols == nil {
		for _, col := range columns {
			if !knownColumn(col) {
				return IllegalColumnError(col)
			}
		}
		c.cols = append([]string{}, columns...)
	} else if !equalColumns(c.cols, columns) {
		return ColumnMismatchError(columns, c.cols)
	}

	if len(c.comments) == 0 {
		for _, cm := range root.Comments {
			c.comments = append(c.comments, cm.Text)
		}
	}

	for _, ev := range root.Events {
		row := make([]float64, len(c.cols)+1)
		row[0] = float64(len(c.rows))

		ori := ev.PreferredOrigin()
		var mag *model.Magnitude
		if hasColumn(c.cols, "mag") || hasColumn(c.cols, "mag_err") {
			mag = ev.PreferredMagnitude()
		}

		for i, col := range c.cols {
			row[i+1] = columnValue(col, ev, ori, mag)
		}

		c.rows = append(c.rows, row)
		c.idMap = append(c.idMap, ev.PublicID)
	}
	return nil
}

func hasColumn(cols []string, name string) bool {
	for _, v := range cols {
		if v == name {
			return true
		}
	}
	return false
}

func equalColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func knownColumn(col string) bool {
	switch col {
	case "lon", "lon_err", "lat", "lat_err", "depth", "depth_err",
		"time", "time_err", "mag", "mag_err", "hz_err",
		"strike1", "strike2", "dip1", "dip2", "rake1", "rake2":
		return true
	}
	return false
}

// columnValue extracts one cell from an event. Missing data is NaN,
// never an error: compact rows are dense by construction.
func columnValue(
	col string,
	ev *model.Event,
	ori *model.Origin,
	mag *model.Magnitude,
) float64 {
	nan := math.NaN()

	switch col {
	case "lon":
		if ori == nil || ori.Longitude == nil {
			return nan
		}
		return ori.Longitude.Value
	case "lon_err":
		if ori == nil || ori.Longitude == nil ||
			ori.Longitude.Uncertainty == nil {
			return nan
		}
		return *ori.Longitude.Uncertainty
	case "lat":
		if ori == nil || ori.Latitude == nil {
			return nan
		}
		return ori.Latitude.Value
	case "lat_err":
		if ori == nil || ori.Latitude == nil ||
			ori.Latitude.Uncertainty == nil {
			return nan
		}
		return *ori.Latitude.Uncertainty
	case "depth":
		if ori == nil || ori.Depth == nil {
			return nan
		}
		return ori.Depth.Value
	case "depth_err":
		if ori == nil || ori.Depth == nil ||
			ori.Depth.Uncertainty == nil {
			return nan
		}
		return *ori.Depth.Uncertainty
	case "time":
		if ori == nil || ori.Time == nil || ori.Time.Value == nil {
			return nan
		}
		return ori.Time.Value.DecimalYear()
	case "time_err":
		if ori == nil || ori.Time == nil ||
			ori.Time.Uncertainty == nil {
			return nan
		}
		return *ori.Time.Uncertainty
	case "mag":
		if mag == nil || mag.Mag == nil {
			return nan
		}
		return mag.Mag.Value
	case "mag_err":
		if mag == nil || mag.Mag == nil ||
			mag.Mag.Uncertainty == nil {
			return nan
		}
		return *mag.Mag.Uncertainty
	case "hz_err":
		return horizontalError(ori)
	case "strike1", "strike2", "dip1", "dip2", "rake1", "rake2":
		return planeValue(col, ev.PreferredFocalMechanism())
	}
	return nan
}

// horizontalError prefers the explicit origin uncertainty and falls
// back to combining the latitude/longitude errors.
func horizontalError(ori *model.Origin) float64 {
	if ori == nil {
		return math.NaN()
	}
	if len(ori.Uncertainties) > 0 &&
		ori.Uncertainties[0].HorizontalUncertainty != nil {
		return *ori.Uncertainties[0].HorizontalUncertainty
	}
	if ori.Latitude == nil || ori.Latitude.Uncertainty == nil ||
		ori.Longitude == nil || ori.Longitude.Uncertainty == nil {
		return math.NaN()
	}
	return qmath.HorizontalErrorKM(
		*ori.Latitude.Uncertainty,
		*ori.Longitude.Uncertainty,
		ori.Latitude.Value,
	)
}

func planeValue(col string, fm *model.FocalMechanism) float64 {
	nan := math.NaN()
	if fm == nil || fm.NodalPlanes == nil {
		return nan
	}

	var plane *model.NodalPlane
	if strings.HasSuffix(col, "1") {
		plane = fm.NodalPlanes.NodalPlane1
	} else {
		plane = fm.NodalPlanes.NodalPlane2
	}
	if plane == nil {
		return nan
	}

	var q *model.RealQuantity
	switch {
	case strings.HasPrefix(col, "strike"):
		q = plane.Strike
	case strings.HasPrefix(col, "dip"):
		q = plane.Dip
	case strings.HasPrefix(col, "rake"):
		q = plane.Rake
	}
	if q == nil {
		return nan
	}
	return q.Value
}

// Read loads the ASCII row/column form. The first line must be the
// "P" header naming the columns; "C" lines collect comments; all
// remaining lines are numeric rows matching the header width.
func (c *Catalog) Read(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	headerFound := false
	lineNo := 0

	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		switch {
		case strings.HasPrefix(strings.ToUpper(line), "P"):
			if headerFound {
				return HeaderError(lineNo,
					"duplicate parameter header")
			}
			headerFound = true

			fields := strings.Fields(line)
			if len(fields) < 2 || fields[1] != "idx" {
				return HeaderError(lineNo,
					"parameter header must start with idx")
			}
			c.cols = append([]string{}, fields[2:]...)

		case strings.HasPrefix(strings.ToUpper(line), "C"):
			c.comments = append(c.comments,
				strings.TrimPrefix(line[1:], " "))

		default:
			if !headerFound {
				return HeaderError(lineNo,
					"data before parameter header")
			}
			fields := strings.Fields(line)
			if len(fields) != len(c.cols)+1 {
				return RowWidthError(lineNo,
					len(fields), len(c.cols)+1)
			}
			row := make([]float64, len(fields))
			for i, f := range fields {
				v, err := strconv.ParseFloat(f, 64)
				if err != nil {
					return RowValueError(lineNo, f, err)
				}
				row[i] = v
			}
			c.rows = append(c.rows, row)
		}
	}
	if err := sc.Err(); err != nil {
		return ReadError(err)
	}
	if !headerFound {
		return HeaderError(lineNo, "no parameter header found")
	}
	return nil
}

// Write emits the ASCII row/column form:
//
//	P idx lon lat depth time mag
//	C optional comment
//	0.0 5.0 45.0 10.0 2009.000242 3.4
func (c *Catalog) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "P idx %s\n",
		strings.Join(c.cols, " ")); err != nil {
		return WriteError(err)
	}

	for _, cm := range c.comments {
		if cm == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "C %s\n", cm); err != nil {
			return WriteError(err)
		}
	}

	for _, row := range c.rows {
		parts := make([]string, len(row))
		parts[0] = fmt.Sprintf(floatFmt, row[0])
		for i, col := range c.cols {
			fmtStr := floatFmt
			if col == "time" || col == "time_err" {
				fmtStr = timeFmt
			}
			parts[i+1] = fmt.Sprintf(fmtStr, row[i+1])
		}
		if _, err := fmt.Fprintln(w, strings.Join(parts, " ")); err != nil {
			return WriteError(err)
		}
	}
	return nil
}
