package ioformat_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quakepy/qcat/internal/ioformat"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		msg  string
		in   string
		want ioformat.Format
		ok   bool
	}{
		{"zmap", "zmap", ioformat.FormatZMAP, true},
		{"gse with version", "gse2.0", ioformat.FormatGSE, true},
		{"ogs", "ogs-hpl", ioformat.FormatOGS, true},
		{"xml", "xml", ioformat.FormatXML, true},
		{"unknown", "hypo71", "", false},
		{"empty", "", "", false},
	}
	for _, v := range tests {
		f, err := ioformat.ParseFormat(v.in)
		if v.ok {
			assert.NoError(t, err, v.msg)
			assert.Equal(t, v.want, f, v.msg)
		} else {
			assert.Error(t, err, v.msg)
		}
	}
}

func TestImportDispatch(t *testing.T) {
	in := "10.5 20.3 2005.5 6 15 5.1 10.0 12 30 15.5\n"

	cat := newCatalog()
	require.NoError(t, ioformat.Import(cat, ioformat.FormatZMAP,
		strings.NewReader(in), nil))
	assert.Equal(t, 1, cat.Size())

	err := ioformat.Import(cat, ioformat.Format("hypo71"),
		strings.NewReader(in), nil)
	assert.Error(t, err)
}

func TestExportDispatch(t *testing.T) {
	cat := newCatalog()
	cat.AddEvent(atticIvyEvent())

	var buf bytes.Buffer
	require.NoError(t, ioformat.Export(cat, ioformat.FormatAtticIvy, &buf, nil))
	assert.NotEmpty(t, buf.String())

	// No writer exists for the import-only formats.
	err := ioformat.Export(cat, ioformat.FormatSTP, &buf, nil)
	assert.Error(t, err)
}
