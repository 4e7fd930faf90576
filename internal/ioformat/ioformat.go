// Package ioformat reads and writes legacy seismic bulletin formats.
//
// Each importer consumes a line-oriented stream and appends fully
// populated events to a catalog; exporters render a catalog back into
// the fixed-width or whitespace-separated shape the format defines.
//
// Error handling follows a three-level scheme. Structural problems
// (a bulletin header that is not what the format requires, a phase
// block with no event to attach to) abort the import with an error.
// A malformed record is logged with its line number and skipped, and
// parsing resumes at the next record boundary. A single optional field
// that fails to parse is silently left unset.
package ioformat

import (
	"io"

	"github.com/quakepy/qcat/pkg/catalog"
)

// Format identifies one supported bulletin format.
type Format string

const (
	FormatXML      Format = "xml"
	FormatZMAP     Format = "zmap"
	FormatCMT      Format = "cmt"
	FormatSTP      Format = "stp"
	FormatANSS     Format = "anss"
	FormatPDE      Format = "pde"
	FormatJMA      Format = "jma"
	FormatGSE      Format = "gse2.0"
	FormatOGS      Format = "ogs-hpl"
	FormatAtticIvy Format = "atticivy"
)

// ParseFormat maps a user-supplied format name onto a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatXML, FormatZMAP, FormatCMT, FormatSTP, FormatANSS,
		FormatPDE, FormatJMA, FormatGSE, FormatOGS, FormatAtticIvy:
		return Format(s), nil
	}
	return "", unknownFormatError(s)
}

// Options tunes importer behavior. The zero value selects each
// format's conventional defaults.
type Options struct {
	// AuthorityID overrides the format's default authority in
	// generated resource identifiers (SCSN for STP, JMA for JMA deck,
	// and so on).
	AuthorityID string

	// NetworkCode is the network part of waveform stream identifiers
	// for formats that do not carry one (GSE2.0, OGS). Default "XX".
	NetworkCode string

	// NoPicks skips phase pick lines entirely.
	NoPicks bool

	// JMAOnly restricts the JMA deck importer to JMA hypocenter lines,
	// dropping USGS and ISC solutions.
	JMAOnly bool

	// WithUncertainties enables the CSEP uncertainty columns on ZMAP
	// import and export.
	WithUncertainties bool

	// CheckHeader makes the GSE2.0 importer verify the BEGIN and
	// DATA_TYPE message header lines instead of skipping them blindly.
	CheckHeader bool

	// GSEFields overrides the GSE2.0 column layout for non-standard
	// bulletins (older INGV files shift the magnitude block).
	GSEFields *GSEFields

	// StationNetworks maps station codes to network codes for formats
	// without per-pick network information.
	StationNetworks map[string]string
}

func (o *Options) norm() *Options {
	if o == nil {
		o = &Options{}
	}
	if o.NetworkCode == "" {
		o.NetworkCode = "XX"
	}
	return o
}

func (o *Options) authority(def string) string {
	if o.AuthorityID != "" {
		return o.AuthorityID
	}
	return def
}

// Import reads a bulletin in the given format into cat.
func Import(cat *catalog.Catalog, f Format, r io.Reader, opts *Options) error {
	switch f {
	case FormatXML:
		return cat.ReadXML(r)
	case FormatZMAP:
		return ImportZMAP(cat, r, opts)
	case FormatCMT:
		return ImportCMT(cat, r, opts)
	case FormatSTP:
		return ImportSTP(cat, r, opts)
	case FormatANSS:
		return ImportANSS(cat, r, opts)
	case FormatPDE:
		return ImportPDE(cat, r, opts)
	case FormatJMA:
		return ImportJMA(cat, r, opts)
	case FormatGSE:
		return ImportGSE(cat, r, opts)
	case FormatOGS:
		return ImportOGS(cat, r, opts)
	}
	return unknownFormatError(string(f))
}

// Export writes cat in the given format. Only a subset of the
// importable formats has a writer.
func Export(cat *catalog.Catalog, f Format, w io.Writer, opts *Options) error {
	switch f {
	case FormatXML:
		return cat.WriteXML(w)
	case FormatZMAP:
		return ExportZMAP(cat, w, opts)
	case FormatCMT:
		return ExportCMT(cat, w)
	case FormatAtticIvy:
		return ExportAtticIvy(cat, w)
	}
	return unknownFormatError(string(f))
}
