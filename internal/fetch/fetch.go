// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch resolves a structure argument to a readable PDB stream,
// either a local file or an entry downloaded from the RCSB archive.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/pdb2pqr/internal/httputil"
	"github.com/pdiddy/pdb2pqr/internal/pdb"
	"github.com/pdiddy/pdb2pqr/pkg/types"
)

const (
	// DefaultBaseURL is the RCSB download endpoint used when no base URL is configured.
	DefaultBaseURL = "https://files.rcsb.org/download"

	// DefaultTimeout bounds a single download request.
	DefaultTimeout = 60 * time.Second

	// DefaultUserAgent is sent with every download request.
	DefaultUserAgent = "pdb2pqr-go/0.1"
)

// ErrNotFound is returned when input is neither a file nor a known entry.
var ErrNotFound = errors.New("structure not found")

var pdbIDRe = regexp.MustCompile(`^[0-9][A-Za-z0-9]{3}$`)

// IsPDBID reports whether s has the shape of a four-character PDB entry ID.
func IsPDBID(s string) bool {
	return pdbIDRe.MatchString(s)
}

// Source describes where a structure came from.
type Source struct {
	// Name is the local path or the download URL.
	Name string

	// Remote is true when the structure was downloaded.
	Remote bool
}

// Resolve opens input. An existing file is opened directly (with
// decompression by extension). Otherwise a PDB ID is downloaded from
// cfg.BaseURL. The caller must close the returned reader.
func Resolve(ctx context.Context, client *http.Client, input string, cfg types.FetchConfig) (io.ReadCloser, Source, error) {
	if _, err := os.Stat(input); err == nil {
		rc, err := pdb.Open(input)
		if err != nil {
			return nil, Source{}, err
		}
		return rc, Source{Name: input}, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, Source{}, fmt.Errorf("checking %s: %w", input, err)
	}

	if !IsPDBID(input) {
		return nil, Source{}, fmt.Errorf("%w: %s is not a file or a PDB ID", ErrNotFound, input)
	}
	return Download(ctx, client, input, cfg)
}

// Download retrieves the PDB-format entry id from the archive.
func Download(ctx context.Context, client *http.Client, id string, cfg types.FetchConfig) (io.ReadCloser, Source, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	url := strings.TrimRight(base, "/") + "/" + strings.ToUpper(id) + ".pdb"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, Source{}, fmt.Errorf("building request for %s: %w", id, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := httputil.DoWithRetry(ctx, client, req, cfg.MaxRetries)
	if err != nil {
		return nil, Source{}, fmt.Errorf("downloading %s: %w", id, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp.Body, Source{Name: url, Remote: true}, nil
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, Source{}, fmt.Errorf("%w: PDB entry %s", ErrNotFound, id)
	default:
		resp.Body.Close()
		return nil, Source{}, fmt.Errorf("downloading %s: HTTP %d", id, resp.StatusCode)
	}
}
