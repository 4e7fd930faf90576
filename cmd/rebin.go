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
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/quakepy/qcat/internal/ioformat"
	"github.com/spf13/cobra"
)

// getRebinCmd returns the rebin command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getRebinCmd() *cobra.Command {
	var flags convertFlags
	var binSize float64
	var allOrigins bool

	rebinCmd := &cobra.Command{
		Use:   "rebin [flags] file...",
		Short: "Snap magnitudes onto a regular bin grid",
		Long: `Rebin rounds every magnitude value to the center of its bin on a
regular grid of the given width, so catalogs from agencies with
different reporting precision become comparable.

By default only magnitudes referenced by an event's preferred origin
are touched; --all rebins the magnitudes of every origin.

Examples:
  qcat rebin catalog.xml -o binned.xml
  qcat rebin --bin-size 0.2 --all catalog.xml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRebin(cmd, args, &flags, binSize, allOrigins)
		},
	}

	flags.registerInput(rebinCmd)
	flags.registerOutput(rebinCmd)
	rebinCmd.Flags().StringVarP(&flags.to, "to", "t", "xml",
		"output format (xml, zmap, cmt, atticivy)")
	rebinCmd.Flags().Float64VarP(&binSize, "bin-size", "b", 0,
		"magnitude bin width (default from configuration)")
	rebinCmd.Flags().BoolVar(&allOrigins, "all", false,
		"rebin magnitudes of all origins, not only preferred ones")

	return rebinCmd
}

func runRebin(
	_ *cobra.Command,
	args []string,
	flags *convertFlags,
	binSize float64,
	allOrigins bool,
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

	if binSize == 0 {
		binSize = cfg.Catalog.MagnitudeBinSize
	}

	cat, err := importCatalog(args, from, flags)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cat.Rebin(binSize, allOrigins)

	if err = exportCatalog(cat, to, flags); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Rebinned <em>%s</em> events with bin size %g",
		humanize.Comma(int64(cat.Size())), binSize)
	return nil
}
