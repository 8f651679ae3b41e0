// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdb2pqr/internal/httputil"
	"github.com/pdiddy/pdb2pqr/pkg/types"
)

const entry = "HEADER    TEST\nATOM      1  N   ALA A   1      11.104   6.134  -6.504  1.00  0.00           N\nEND\n"

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

func archive(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		switch r.URL.Path {
		case "/1ABC.pdb":
			io.WriteString(w, entry)
		case "/2BAD.pdb":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestIsPDBID(t *testing.T) {
	for _, id := range []string{"1abc", "1ABC", "4HHB", "9xyz"} {
		assert.True(t, IsPDBID(id), id)
	}
	for _, id := range []string{"", "abc", "abcd", "1abcd", "1ab-", "protein.pdb"} {
		assert.False(t, IsPDBID(id), id)
	}
}

func TestResolveLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.pdb")
	require.NoError(t, os.WriteFile(path, []byte(entry), 0o644))

	rc, src, err := Resolve(context.Background(), http.DefaultClient, path, types.FetchConfig{})
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, entry, string(data))
	assert.Equal(t, Source{Name: path}, src)
}

func TestResolveDownload(t *testing.T) {
	ts := archive(t)
	cfg := types.FetchConfig{BaseURL: ts.URL + "/"}

	rc, src, err := Resolve(context.Background(), ts.Client(), "1abc", cfg)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, entry, string(data))
	assert.True(t, src.Remote)
	assert.Equal(t, ts.URL+"/1ABC.pdb", src.Name)
}

func TestResolveErrors(t *testing.T) {
	ts := archive(t)
	cfg := types.FetchConfig{BaseURL: ts.URL}

	_, _, err := Resolve(context.Background(), ts.Client(), "missing.pdb", cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, _, err = Resolve(context.Background(), ts.Client(), "9ZZZ", cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, _, err = Resolve(context.Background(), ts.Client(), "2bad", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}
