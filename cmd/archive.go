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
	"context"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/quakepy/qcat/internal/iodb"
	"github.com/quakepy/qcat/internal/ioformat"
	"github.com/spf13/cobra"
)

// getArchiveCmd returns the archive command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getArchiveCmd() *cobra.Command {
	var flags convertFlags

	archiveCmd := &cobra.Command{
		Use:   "archive [flags] file...",
		Short: "Load catalogs into the PostgreSQL archive",
		Long: `Archive flattens each event to one row (preferred origin and
magnitude) and bulk-loads the rows into the archive_events table
using the PostgreSQL COPY protocol.

Events without a located preferred origin are skipped and counted.
Re-archiving a catalog with the same event identifiers fails on the
primary key; drop and recreate the schema with 'qcat create --force'
to replace an archive.

Examples:
  qcat archive catalog.xml
  qcat archive --from anss western_us.anss
  qcat archive --from jma jan.deck feb.deck mar.deck`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArchive(cmd, args, &flags)
		},
	}

	flags.registerInput(archiveCmd)

	return archiveCmd
}

func runArchive(
	_ *cobra.Command,
	args []string,
	flags *convertFlags,
) error {
	ctx := context.Background()

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

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Archive); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Archive.User, cfg.Archive.Host,
		cfg.Archive.Port, cfg.Archive.Database)

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if !hasTables {
		gn.Warn(`Warning: Database appears to be empty.
	Run 'qcat create' first to initialize the schema.`)
		return nil
	}

	arch := iodb.NewArchiver(op, cfg)
	n, err := arch.Load(ctx, cat)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Archived <em>%s</em> of %s events",
		humanize.Comma(int64(n)), humanize.Comma(int64(cat.Size())))
	return nil
}
