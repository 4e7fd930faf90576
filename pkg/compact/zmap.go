package compact

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/quakepy/qcat/pkg/qtime"
)

// zmapColumns is the compact column layout after a ZMAP import. The
// order follows the source columns, not StandardColumns.
func zmapColumns(withUncertainties bool) []string {
	cols := []string{"lon", "lat", "time", "mag", "depth"}
	if withUncertainties {
		cols = append(cols, "hz_err", "depth_err", "mag_err")
	}
	return cols
}

// ImportZMAP fills the catalog from the 10-column ZMAP form, or the
// 13-column CSEP extension when withUncertainties is set. The time
// column takes the decimal year verbatim from column 3; month, day,
// hour, minute, and second are dropped.
func (c *Catalog) ImportZMAP(r io.Reader, withUncertainties bool) error {
	cols := zmapColumns(withUncertainties)
	if c.cols == nil {
		c.cols = cols
	} else if !equalColumns(c.cols, cols) {
		return ColumnMismatchError(cols, c.cols)
	}

	want := 10
	if withUncertainties {
		want = 13
	}

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < want {
			return RowWidthError(lineNo, len(fields), want)
		}

		// lon, lat, decimal year, mag, depth (km), then the CSEP
		// uncertainty triple
		src := []int{0, 1, 2, 5, 6}
		if withUncertainties {
			src = append(src, 10, 11, 12)
		}

		row := make([]float64, len(c.cols)+1)
		row[0] = float64(len(c.rows))
		for i, pos := range src {
			v, err := strconv.ParseFloat(fields[pos], 64)
			if err != nil {
				return RowValueError(lineNo, fields[pos], err)
			}
			row[i+1] = v
		}
		c.rows = append(c.rows, row)
	}
	if err := sc.Err(); err != nil {
		return ReadError(err)
	}
	return nil
}

// ExportZMAP writes the 10- or 13-column ZMAP form. Date and time
// components are reconstructed from the decimal year.
func (c *Catalog) ExportZMAP(w io.Writer, withUncertainties bool) error {
	needed := []string{"lon", "lat", "time", "mag", "depth"}
	if withUncertainties {
		needed = append(needed, "hz_err", "depth_err", "mag_err")
	}
	pos := make(map[string]int, len(needed))
	for _, col := range needed {
		p, ok := c.columnIndex(col)
		if !ok {
			return IllegalColumnError(col)
		}
		pos[col] = p
	}

	for _, row := range c.rows {
		t := qtime.FromDecimalYear(row[pos["time"]]).Std()
		sec := float64(t.Second()) +
			float64(t.Nanosecond())/1e9

		parts := []string{
			fmt.Sprintf("%10.6f", row[pos["lon"]]),
			fmt.Sprintf("%10.6f", row[pos["lat"]]),
			fmt.Sprintf("%18.12f", row[pos["time"]]),
			fmt.Sprintf("%.1f", float64(t.Month())),
			fmt.Sprintf("%.1f", float64(t.Day())),
			formatValue(row[pos["mag"]]),
			formatValue(row[pos["depth"]]),
			fmt.Sprintf("%.1f", float64(t.Hour())),
			fmt.Sprintf("%.1f", float64(t.Minute())),
			formatValue(sec),
		}
		if withUncertainties {
			parts = append(parts,
				formatValue(row[pos["hz_err"]]),
				formatValue(row[pos["depth_err"]]),
				formatValue(row[pos["mag_err"]]),
			)
		}
		if _, err := fmt.Fprintln(w, strings.Join(parts, "\t")); err != nil {
			return WriteError(err)
		}
	}
	return nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
