package iofs_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/quakepy/qcat/internal/iofs"
	"github.com/quakepy/qcat/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEnsureDirs(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))

	for _, dir := range []string{
		config.ConfigDir(home),
		config.CacheDir(home),
		config.LogDir(home),
	} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	// second run is a no-op
	require.NoError(t, iofs.EnsureDirs(home))
}

func TestEnsureConfigFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))
	require.NoError(t, iofs.EnsureConfigFile(home))

	data, err := os.ReadFile(config.ConfigFilePath(home))
	require.NoError(t, err)
	assert.Contains(t, string(data), "authority_id")

	// existing file is not overwritten
	custom := []byte("catalog:\n  authority_id: custom\n")
	require.NoError(t,
		os.WriteFile(config.ConfigFilePath(home), custom, 0644))
	require.NoError(t, iofs.EnsureConfigFile(home))
	data, err = os.ReadFile(config.ConfigFilePath(home))
	require.NoError(t, err)
	assert.Equal(t, custom, data)
}

func TestParseCompression(t *testing.T) {
	tests := []struct {
		msg, in string
		want    iofs.Compression
		hasErr  bool
	}{
		{"empty is auto", "", iofs.CompressAuto, false},
		{"auto", "auto", iofs.CompressAuto, false},
		{"none", "none", iofs.CompressNone, false},
		{"gzip", "gzip", iofs.CompressGzip, false},
		{"gz alias", "gz", iofs.CompressGzip, false},
		{"bzip2", "bzip2", iofs.CompressBzip2, false},
		{"bz2 alias", "bz2", iofs.CompressBzip2, false},
		{"unknown", "zip", iofs.CompressNone, true},
	}
	for _, tt := range tests {
		got, err := iofs.ParseCompression(tt.in)
		if tt.hasErr {
			assert.Error(t, err, tt.msg)
			continue
		}
		require.NoError(t, err, tt.msg)
		assert.Equal(t, tt.want, got, tt.msg)
	}
}

func TestGzipRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.txt.gz")

	w, err := iofs.Create(path, iofs.CompressAuto)
	require.NoError(t, err)
	_, err = io.WriteString(w, "45.9 13.6 2004.5\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := iofs.Open(path, iofs.CompressAuto)
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "45.9 13.6 2004.5\n", string(data))
}

func TestBzip2RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.txt.bz2")

	w, err := iofs.Create(path, iofs.CompressBzip2)
	require.NoError(t, err)
	_, err = io.WriteString(w, "bulletin line\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := iofs.Open(path, iofs.CompressBzip2)
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "bulletin line\n", string(data))
}

func TestOpenPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain\n"), 0644))

	r, err := iofs.Open(path, iofs.CompressAuto)
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "plain\n", string(data))
}

func TestOpenMissing(t *testing.T) {
	_, err := iofs.Open(filepath.Join(t.TempDir(), "nope"), iofs.CompressAuto)
	assert.Error(t, err)
}

// TestEmbeddedConfigMatchesDefaults guards against the shipped
// config.yaml drifting away from the built-in defaults.
func TestEmbeddedConfigMatchesDefaults(t *testing.T) {
	var fromFile config.Config
	require.NoError(t, yaml.Unmarshal([]byte(iofs.ConfigYAML), &fromFile))

	want := config.New()
	assert.Equal(t, want.Catalog, fromFile.Catalog)
	assert.Equal(t, want.Archive, fromFile.Archive)

	// The shipped file steers CLI logs into a file; the library
	// default stays on stderr.
	assert.Equal(t, config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}, fromFile.Log)
}
