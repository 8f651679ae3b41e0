// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdb

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Open opens path for reading, decompressing .gz, .zst, and .xz files
// transparently. The caller must close the returned reader.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening structure file: %w", err)
	}

	rc, err := Decompress(f, path)
	if err != nil {
		f.Close()
		return nil, err
	}
	return rc, nil
}

// Decompress wraps rc in a decompressor chosen by the extension of name.
// Closing the result closes rc.
func Decompress(rc io.ReadCloser, name string) (io.ReadCloser, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		zr, err := gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("reading gzip stream %s: %w", name, err)
		}
		return &stackedCloser{Reader: zr, closers: []io.Closer{zr, rc}}, nil
	case ".zst":
		zr, err := zstd.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("reading zstd stream %s: %w", name, err)
		}
		dec := zr.IOReadCloser()
		return &stackedCloser{Reader: dec, closers: []io.Closer{dec, rc}}, nil
	case ".xz":
		xr, err := xz.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("reading xz stream %s: %w", name, err)
		}
		return &stackedCloser{Reader: xr, closers: []io.Closer{rc}}, nil
	}
	return rc, nil
}

// StripCompression removes a known compression extension from name, so
// "1abc.pdb.gz" becomes "1abc.pdb".
func StripCompression(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz", ".zst", ".xz":
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}

type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedCloser) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
