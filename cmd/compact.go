/*
Copyright © 2026 The QCat Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/quakepy/qcat/internal/iocompact"
	"github.com/quakepy/qcat/internal/iofs"
	"github.com/quakepy/qcat/internal/ioformat"
	"github.com/quakepy/qcat/pkg/compact"
	"github.com/spf13/cobra"
)

// getCompactCmd returns the compact command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getCompactCmd() *cobra.Command {
	var flags convertFlags
	var columns []string
	var sqlitePath string
	var zmapOut bool

	compactCmd := &cobra.Command{
		Use:   "compact [flags] file...",
		Short: "Reduce a catalog to columnar form",
		Long: `Compact reduces a catalog to one row of numeric columns per event,
taken from each event's preferred origin, magnitude and focal
mechanism. Missing values become NaN.

Default columns: lon, lat, depth, time, mag. Additional columns via
--columns: lon_err, lat_err, depth_err, time_err, mag_err, hz_err,
strike1, dip1, rake1, strike2, dip2, rake2. Depth is metres and time
is a decimal year.

Output is a whitespace-separated ASCII table by default, a SQLite
database with --sqlite, or a ZMAP file with --zmap (plain ten-column
or, with -u, thirteen-column CSEP).

Examples:
  qcat compact catalog.xml -o catalog.dat
  qcat compact --columns lon,lat,time,mag,hz_err catalog.xml
  qcat compact --sqlite catalog.db catalog.xml
  qcat compact --zmap -u catalog.xml -o csep.dat`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompact(cmd, args, &flags, columns, sqlitePath, zmapOut)
		},
	}

	flags.registerInput(compactCmd)
	flags.registerOutput(compactCmd)
	compactCmd.Flags().StringSliceVarP(&columns, "columns", "c", nil,
		"columns to extract (default lon,lat,depth,time,mag)")
	compactCmd.Flags().StringVar(&sqlitePath, "sqlite", "",
		"write a SQLite database at this path instead of ASCII")
	compactCmd.Flags().BoolVar(&zmapOut, "zmap", false,
		"write ZMAP columns instead of the ASCII table")

	return compactCmd
}

func runCompact(
	_ *cobra.Command,
	args []string,
	flags *convertFlags,
	columns []string,
	sqlitePath string,
	zmapOut bool,
) error {
	from, err := ioformat.ParseFormat(flags.from)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cat, err := importCatalog(args, from, flags)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cc, err := cat.ToCompact(columns...)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	switch {
	case sqlitePath != "":
		err = iocompact.Save(sqlitePath, cc)
	case flags.output == "":
		if zmapOut {
			err = cc.ExportZMAP(os.Stdout, flags.withUnc)
		} else {
			err = cc.Write(os.Stdout)
		}
	default:
		err = writeCompactFile(cc, flags, zmapOut)
	}
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Compacted <em>%s</em> events into %d columns",
		humanize.Comma(int64(cc.Size())), len(cc.Columns()))
	return nil
}

func writeCompactFile(
	cc *compact.Catalog,
	flags *convertFlags,
	zmapOut bool,
) error {
	comp, err := iofs.ParseCompression(flags.compression)
	if err != nil {
		return err
	}
	w, err := iofs.Create(flags.output, comp)
	if err != nil {
		return err
	}
	if zmapOut {
		err = cc.ExportZMAP(w, flags.withUnc)
	} else {
		err = cc.Write(w)
	}
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return err
}
