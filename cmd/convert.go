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
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/quakepy/qcat/internal/iofs"
	"github.com/quakepy/qcat/internal/ioformat"
	"github.com/quakepy/qcat/pkg/catalog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// convertFlags collects importer and exporter settings shared by the
// convert, cut, rebin, compact and archive commands.
type convertFlags struct {
	from        string
	to          string
	output      string
	compression string
	authority   string
	network     string
	noPicks     bool
	jmaOnly     bool
	withUnc     bool
	checkHeader bool
}

func (f *convertFlags) registerInput(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.from, "from", "f", "xml",
		"input format (xml, zmap, cmt, stp, anss, pde, jma, gse2.0, ogs-hpl)")
	cmd.Flags().StringVarP(&f.compression, "compression", "z", "auto",
		"input/output compression (auto, none, gz, bz2)")
	cmd.Flags().StringVarP(&f.authority, "authority", "a", "",
		"authority for generated identifiers (default per format)")
	cmd.Flags().StringVarP(&f.network, "network", "n", "",
		"network code for formats without one")
	cmd.Flags().BoolVar(&f.noPicks, "no-picks", false,
		"skip phase pick lines on import")
	cmd.Flags().BoolVar(&f.jmaOnly, "jma-only", false,
		"keep only JMA hypocenter lines from JMA deck files")
	cmd.Flags().BoolVarP(&f.withUnc, "uncertainties", "u", false,
		"read/write CSEP uncertainty columns in ZMAP files")
	cmd.Flags().BoolVar(&f.checkHeader, "check-header", false,
		"verify GSE2.0 message header lines")
}

func (f *convertFlags) registerOutput(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "",
		"output file (default standard output)")
}

func (f *convertFlags) importOptions() *ioformat.Options {
	return &ioformat.Options{
		AuthorityID:       f.authority,
		NetworkCode:       f.network,
		NoPicks:           f.noPicks,
		JMAOnly:           f.jmaOnly,
		WithUncertainties: f.withUnc,
		CheckHeader:       f.checkHeader,
	}
}

// getConvertCmd returns the convert command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getConvertCmd() *cobra.Command {
	var flags convertFlags

	convertCmd := &cobra.Command{
		Use:   "convert [flags] file...",
		Short: "Convert catalogs between bulletin formats",
		Long: `Convert reads one or more catalog files and writes a single catalog
in another format.

Input formats: xml, zmap, cmt, stp, anss, pde, jma, gse2.0, ogs-hpl.
Output formats: xml, zmap, cmt, atticivy.

Several input files are parsed concurrently and merged in argument
order. Files ending in .gz or .bz2 are decompressed transparently,
and http(s) URLs are fetched. Without file arguments the catalog is
read from standard input.

Examples:
  qcat convert --from anss --to xml catalog.anss
  qcat convert --from zmap -u --to xml csep.dat -o catalog.xml.gz
  qcat convert --to zmap catalog.xml -o catalog.dat`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, &flags)
		},
	}

	flags.registerInput(convertCmd)
	flags.registerOutput(convertCmd)
	convertCmd.Flags().StringVarP(&flags.to, "to", "t", "xml",
		"output format (xml, zmap, cmt, atticivy)")

	return convertCmd
}

func runConvert(
	_ *cobra.Command,
	args []string,
	flags *convertFlags,
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

	cat, err := importCatalog(args, from, flags)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = exportCatalog(cat, to, flags); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Converted <em>%s</em> events from %s to %s",
		humanize.Comma(int64(cat.Size())), from, to)
	return nil
}

// importCatalog reads every input into its own catalog concurrently,
// then merges the results in argument order so the output is
// deterministic regardless of which file finishes first.
func importCatalog(
	args []string,
	from ioformat.Format,
	flags *convertFlags,
) (*catalog.Catalog, error) {
	comp, err := iofs.ParseCompression(flags.compression)
	if err != nil {
		return nil, err
	}
	opts := flags.importOptions()

	cat := catalog.New(cfg.Catalog)
	if len(args) == 0 {
		err = ioformat.Import(cat, from, os.Stdin, opts)
		return cat, err
	}

	parts := make([]*catalog.Catalog, len(args))
	var g errgroup.Group
	g.SetLimit(cfg.JobsNumber)
	for i, path := range args {
		g.Go(func() error {
			r, err := iofs.Open(path, comp)
			if err != nil {
				return err
			}
			defer r.Close()

			part := catalog.New(cfg.Catalog)
			if err = ioformat.Import(part, from, r, opts); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			parts[i] = part
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	for _, part := range parts {
		for _, ev := range part.Events() {
			cat.AddEvent(ev)
		}
	}
	return cat, nil
}

func exportCatalog(
	cat *catalog.Catalog,
	to ioformat.Format,
	flags *convertFlags,
) error {
	opts := flags.importOptions()

	if flags.output == "" {
		return ioformat.Export(cat, to, os.Stdout, opts)
	}

	comp, err := iofs.ParseCompression(flags.compression)
	if err != nil {
		return err
	}
	w, err := iofs.Create(flags.output, comp)
	if err != nil {
		return err
	}
	if err = ioformat.Export(cat, to, w, opts); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
