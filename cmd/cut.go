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
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/quakepy/qcat/internal/ioformat"
	"github.com/quakepy/qcat/pkg/catalog"
	"github.com/quakepy/qcat/pkg/qtime"
	"github.com/spf13/cobra"
)

// cutBounds holds raw flag values before they become a CutFilter.
// The flag set remembers which were actually given, so unset bounds
// stay nil and are not applied.
type cutBounds struct {
	minLat, maxLat     float64
	minLon, maxLon     float64
	minDepth, maxDepth float64
	minMag, maxMag     float64
	minTime, maxTime   string
	removeNaN          bool
}

// getCutCmd returns the cut command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getCutCmd() *cobra.Command {
	var flags convertFlags
	var bounds cutBounds

	cutCmd := &cobra.Command{
		Use:   "cut [flags] file...",
		Short: "Remove events outside given bounds",
		Long: `Cut drops every event that falls outside the given latitude,
longitude, depth, time or magnitude bounds and writes the remaining
catalog.

Bounds are inclusive. An event is dropped when any of its origins
fails a spatial or temporal bound, or any of its magnitudes fails a
magnitude bound. Unbounded fields pass unless --remove-nan is set, in
which case events missing a bounded field are dropped too.

Depth bounds are metres. Times are RFC 3339 timestamps; a bare date
like 2005-06-15 is accepted as midnight UTC.

Examples:
  qcat cut --min-mag 4.5 catalog.xml -o strong.xml
  qcat cut --min-lat 44 --max-lat 47 --min-lon 10 --max-lon 14 catalog.xml
  qcat cut --min-time 1990-01-01 --max-time 2000-01-01T00:00:00Z catalog.xml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCut(cmd, args, &flags, &bounds)
		},
	}

	flags.registerInput(cutCmd)
	flags.registerOutput(cutCmd)
	cutCmd.Flags().StringVarP(&flags.to, "to", "t", "xml",
		"output format (xml, zmap, cmt, atticivy)")

	cutCmd.Flags().Float64Var(&bounds.minLat, "min-lat", 0, "minimum latitude, degrees")
	cutCmd.Flags().Float64Var(&bounds.maxLat, "max-lat", 0, "maximum latitude, degrees")
	cutCmd.Flags().Float64Var(&bounds.minLon, "min-lon", 0, "minimum longitude, degrees")
	cutCmd.Flags().Float64Var(&bounds.maxLon, "max-lon", 0, "maximum longitude, degrees")
	cutCmd.Flags().Float64Var(&bounds.minDepth, "min-depth", 0, "minimum depth, metres")
	cutCmd.Flags().Float64Var(&bounds.maxDepth, "max-depth", 0, "maximum depth, metres")
	cutCmd.Flags().Float64Var(&bounds.minMag, "min-mag", 0, "minimum magnitude")
	cutCmd.Flags().Float64Var(&bounds.maxMag, "max-mag", 0, "maximum magnitude")
	cutCmd.Flags().StringVar(&bounds.minTime, "min-time", "", "earliest origin time (RFC 3339)")
	cutCmd.Flags().StringVar(&bounds.maxTime, "max-time", "", "latest origin time (RFC 3339)")
	cutCmd.Flags().BoolVar(&bounds.removeNaN, "remove-nan", false,
		"drop events that lack a value for a bounded field")

	return cutCmd
}

func runCut(
	cmd *cobra.Command,
	args []string,
	flags *convertFlags,
	bounds *cutBounds,
) error {
	from, err := ioformat.ParseFormat(flags.from)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	to, err := ioformat.ParseFormat(flags.to)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	filter, err := bounds.filter(cmd)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cat, err := importCatalog(args, from, flags)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	dropped := cat.Cut(filter)

	if err = exportCatalog(cat, to, flags); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Dropped <em>%s</em> events, kept <em>%s</em>",
		humanize.Comma(int64(dropped)), humanize.Comma(int64(cat.Size())))
	return nil
}

func (b *cutBounds) filter(cmd *cobra.Command) (catalog.CutFilter, error) {
	f := catalog.CutFilter{RemoveNaN: b.removeNaN}

	bound := func(name string, v *float64) *float64 {
		if cmd.Flags().Changed(name) {
			return v
		}
		return nil
	}
	f.MinLat = bound("min-lat", &b.minLat)
	f.MaxLat = bound("max-lat", &b.maxLat)
	f.MinLon = bound("min-lon", &b.minLon)
	f.MaxLon = bound("max-lon", &b.maxLon)
	f.MinDepth = bound("min-depth", &b.minDepth)
	f.MaxDepth = bound("max-depth", &b.maxDepth)
	f.MinMag = bound("min-mag", &b.minMag)
	f.MaxMag = bound("max-mag", &b.maxMag)

	var err error
	if f.MinTime, err = parseTimeBound(b.minTime); err != nil {
		return f, err
	}
	if f.MaxTime, err = parseTimeBound(b.maxTime); err != nil {
		return f, err
	}
	return f, nil
}

func parseTimeBound(s string) (*qtime.Time, error) {
	if s == "" {
		return nil, nil
	}
	var t time.Time
	var err error
	if t, err = time.Parse(time.RFC3339, s); err != nil {
		if t, err = time.Parse("2006-01-02", s); err != nil {
			return nil, err
		}
	}
	qt := qtime.New(t)
	return &qt, nil
}
