package iofs

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	dbzip2 "github.com/dsnet/compress/bzip2"
	"github.com/go-resty/resty/v2"
)

// Compression selects the stream codec for Open and Create.
type Compression int

const (
	// CompressAuto picks the codec from the filename extension
	// (.gz, .bz2) and falls back to no compression.
	CompressAuto Compression = iota
	CompressNone
	CompressGzip
	CompressBzip2
)

// ParseCompression maps a user-facing mode name to a Compression.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return CompressAuto, nil
	case "none":
		return CompressNone, nil
	case "gz", "gzip":
		return CompressGzip, nil
	case "bz2", "bzip2":
		return CompressBzip2, nil
	}
	return CompressNone, fmt.Errorf("unknown compression mode %q", s)
}

func resolve(path string, c Compression) Compression {
	if c != CompressAuto {
		return c
	}
	switch {
	case strings.HasSuffix(path, ".gz"):
		return CompressGzip
	case strings.HasSuffix(path, ".bz2"):
		return CompressBzip2
	}
	return CompressNone
}

// Open opens path for reading, transparently decompressing gzip and
// bzip2 streams. Paths beginning with a web URL scheme are fetched
// over HTTP instead of opened locally. The caller must close the
// returned reader on every exit path.
func Open(path string, c Compression) (io.ReadCloser, error) {
	var raw io.ReadCloser
	if isURL(path) {
		body, err := fetch(path)
		if err != nil {
			return nil, err
		}
		raw = io.NopCloser(bytes.NewReader(body))
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, ReadFileError(path, err)
		}
		raw = f
	}

	switch resolve(path, c) {
	case CompressGzip:
		zr, err := gzip.NewReader(raw)
		if err != nil {
			raw.Close()
			return nil, CompressionError(path, err)
		}
		return &layered{Reader: zr, close: []io.Closer{zr, raw}}, nil
	case CompressBzip2:
		return &layered{
			Reader: bzip2.NewReader(raw),
			close:  []io.Closer{raw},
		}, nil
	}
	return raw, nil
}

// Create creates path for writing, transparently compressing the
// stream when requested.
func Create(path string, c Compression) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, WriteFileError(path, err)
	}

	switch resolve(path, c) {
	case CompressGzip:
		zw := gzip.NewWriter(f)
		return &layeredW{Writer: zw, close: []io.Closer{zw, f}}, nil
	case CompressBzip2:
		zw, err := dbzip2.NewWriter(f, nil)
		if err != nil {
			f.Close()
			return nil, CompressionError(path, err)
		}
		return &layeredW{Writer: zw, close: []io.Closer{zw, f}}, nil
	}
	return f, nil
}

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") ||
		strings.HasPrefix(path, "https://")
}

func fetch(url string) ([]byte, error) {
	client := resty.New()
	resp, err := client.R().Get(url)
	if err != nil {
		return nil, FetchURLError(url, err)
	}
	if resp.IsError() {
		return nil, FetchURLError(url,
			fmt.Errorf("status %s", resp.Status()))
	}
	return resp.Body(), nil
}

// layered closes every codec layer in order.
type layered struct {
	io.Reader
	close []io.Closer
}

func (l *layered) Close() error {
	var err error
	for _, c := range l.close {
		if e := c.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

type layeredW struct {
	io.Writer
	close []io.Closer
}

func (l *layeredW) Close() error {
	var err error
	for _, c := range l.close {
		if e := c.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
