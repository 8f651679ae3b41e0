// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metadata

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdb2pqr/pkg/types"
)

const samplePKGInfo = `Metadata-Version: 2.1
Name: pdb2pqr
Version: 3.1.0
Summary: Automates many of the common tasks of preparing structures for continuum solvation calculations
Home-page: https://www.poissonboltzmann.org/
Author: Jens Erik Nielsen, Todd Dolinsky, Nathan Baker
Author-email: nathanandrewbaker@gmail.com
License: BSD
Project-URL: Documentation, https://pdb2pqr.readthedocs.io
Project-URL: Source, https://github.com/Electrostatics/pdb2pqr
Keywords: science,chemistry,molecular biology
Platform: UNKNOWN
Classifier: Development Status :: 5 - Production/Stable
Classifier: Intended Audience :: Science/Research
Classifier: License :: OSI Approved :: BSD License
Classifier: Topic :: Scientific/Engineering :: Chemistry
Requires-Python: >=3.6
Provides-Extra: dev

PDB2PQR prepares structures for further calculations by reconstructing
missing atoms, adding hydrogens, and assigning charges and radii.
`

func TestParseSample(t *testing.T) {
	md, err := Parse(strings.NewReader(samplePKGInfo))
	require.NoError(t, err)

	assert.Equal(t, "2.1", md.MetadataVersion)
	assert.Equal(t, "pdb2pqr", md.Name)
	assert.Equal(t, "3.1.0", md.Version)
	assert.Equal(t, "BSD", md.License)
	assert.Equal(t, ">=3.6", md.RequiresPython)
	assert.Equal(t, []types.ProjectURL{
		{Label: "Documentation", URL: "https://pdb2pqr.readthedocs.io"},
		{Label: "Source", URL: "https://github.com/Electrostatics/pdb2pqr"},
	}, md.ProjectURLs)
	assert.Len(t, md.Classifiers, 4)
	assert.Equal(t, []string{"UNKNOWN"}, md.Platforms)
	assert.Equal(t, []types.Header{{Name: "Provides-Extra", Value: "dev"}}, md.Extra)
	assert.True(t, strings.HasPrefix(md.Description, "PDB2PQR prepares structures"))
	assert.False(t, strings.HasSuffix(md.Description, "\n"))

	assert.NoError(t, Validate(md))
}

func TestParseContinuationAndCase(t *testing.T) {
	input := "metadata-version: 1.2\r\nNAME: demo\r\nversion: 1.0\r\n" +
		"Description: first line\r\n        |second line\r\n        third line\r\n"

	md, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "1.2", md.MetadataVersion)
	assert.Equal(t, "demo", md.Name)
	assert.Equal(t, "first line\nsecond line\nthird line", md.Description)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		errMsg string
	}{
		{name: "empty input", input: "", errMsg: "empty metadata record"},
		{name: "blank lines only", input: "\n\n", errMsg: "empty metadata record"},
		{name: "header without colon", input: "Name: x\nnot a header\n", errMsg: "line 2"},
		{name: "leading continuation", input: "  dangling\nName: x\n", errMsg: "continuation line"},
		{name: "empty header name", input: ": value\n", errMsg: "line 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	_, err := Parse(strings.NewReader(""))
	assert.True(t, errors.Is(err, ErrEmpty))
}

func TestValidate(t *testing.T) {
	valid := func() *types.Metadata {
		return &types.Metadata{MetadataVersion: "2.1", Name: "pdb2pqr", Version: "3.1.0"}
	}

	tests := []struct {
		name   string
		mutate func(md *types.Metadata)
		fields []string
	}{
		{name: "minimal record is valid", mutate: func(*types.Metadata) {}},
		{
			name:   "missing required fields",
			mutate: func(md *types.Metadata) { *md = types.Metadata{} },
			fields: []string{"Metadata-Version", "Name", "Version"},
		},
		{
			name:   "unknown metadata version",
			mutate: func(md *types.Metadata) { md.MetadataVersion = "3.0" },
			fields: []string{"Metadata-Version"},
		},
		{
			name:   "bad name",
			mutate: func(md *types.Metadata) { md.Name = "-pdb2pqr" },
			fields: []string{"Name"},
		},
		{
			name:   "bad version",
			mutate: func(md *types.Metadata) { md.Version = "3.1.0-beta!" },
			fields: []string{"Version"},
		},
		{
			name:   "bad classifier",
			mutate: func(md *types.Metadata) { md.Classifiers = []string{"Topic :: ", "NoSeparator"} },
			fields: []string{"Classifier", "Classifier"},
		},
		{
			name: "bad project url",
			mutate: func(md *types.Metadata) {
				md.ProjectURLs = []types.ProjectURL{{Label: "", URL: "ftp://example.org"}}
			},
			fields: []string{"Project-URL", "Project-URL"},
		},
		{
			name:   "bad home page",
			mutate: func(md *types.Metadata) { md.HomePage = "www.example.org" },
			fields: []string{"Home-page"},
		},
		{
			name:   "bad author email",
			mutate: func(md *types.Metadata) { md.AuthorEmail = "not an email" },
			fields: []string{"Author-email"},
		},
		{
			name:   "bad requires python",
			mutate: func(md *types.Metadata) { md.RequiresPython = "3.6" },
			fields: []string{"Requires-Python"},
		},
		{
			name:   "duplicate header",
			mutate: func(md *types.Metadata) { md.Duplicates = []string{"Version"} },
			fields: []string{"Version"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := valid()
			tt.mutate(md)
			err := Validate(md)
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}

			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs), "expected ValidationErrors, got %v", err)
			got := make([]string, len(verrs))
			for i, e := range verrs {
				got[i] = e.Field
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestParseDuplicateHeader(t *testing.T) {
	md, err := Parse(strings.NewReader("Metadata-Version: 2.1\nName: a\nVersion: 1.0\nVersion: 2.0\n"))
	require.NoError(t, err)

	assert.Equal(t, "2.0", md.Version)
	assert.Equal(t, []string{"Version"}, md.Duplicates)
	assert.Error(t, Validate(md))
}

func TestValidVersion(t *testing.T) {
	good := []string{"1", "3.1.0", "1!2.0", "1.0a1", "1.0.rc2", "1.0-beta.3", "1.0.post1", "1.0-1",
		"1.0.dev0", "1.0a1.post2.dev3", "v2.0", "1.0+ubuntu.1", "2020.10"}
	bad := []string{"", "a.b", "1.0.", "1.0+", "1..0", "1.0 beta", "one"}

	for _, v := range good {
		assert.True(t, ValidVersion(v), "expected %q to be valid", v)
	}
	for _, v := range bad {
		assert.False(t, ValidVersion(v), "expected %q to be invalid", v)
	}
}

func TestCheckSpecifierSet(t *testing.T) {
	good := []string{">=3.6", ">=3.6, <4", "==3.*", "!=3.7.*", "~=3.8", "===foobar", "<4.0,>3.6.1"}
	bad := []string{"", "3.6", ">=", "~=3", "==3.*.1", ">=3.6+local", ">= 3.x"}

	for _, s := range good {
		assert.NoError(t, CheckSpecifierSet(s), s)
	}
	for _, s := range bad {
		assert.Error(t, CheckSpecifierSet(s), s)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	md, err := Parse(strings.NewReader(samplePKGInfo))
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := Write(&buf, md)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	again, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, md, again)
}

func TestWriteMultilineHeader(t *testing.T) {
	md := &types.Metadata{MetadataVersion: "2.1", Name: "x", Version: "1", License: "BSD\nsee LICENSE"}

	var buf bytes.Buffer
	_, err := Write(&buf, md)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "License: BSD\n        see LICENSE\n")

	again, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, "BSD\nsee LICENSE", again.License)
}

func TestWriteRejectsBlankContinuation(t *testing.T) {
	tests := []struct {
		name string
		md   *types.Metadata
	}{
		{name: "summary", md: &types.Metadata{Name: "x", Summary: "a\n\nb"}},
		{name: "whitespace only", md: &types.Metadata{Name: "x", License: "BSD\n   \nsee LICENSE"}},
		{name: "extra", md: &types.Metadata{Name: "x", Extra: []types.Header{{Name: "X-Note", Value: "a\n\nb"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			n, err := Write(&buf, tt.md)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrBlankContinuation))
			assert.Zero(t, n)
			assert.Zero(t, buf.Len())
		})
	}

	// A trailing newline leaves an empty last line, which is also rejected.
	_, err := Write(&bytes.Buffer{}, &types.Metadata{Name: "x", Summary: "a\n"})
	assert.True(t, errors.Is(err, ErrBlankContinuation))
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "PKG-INFO")
	require.NoError(t, os.WriteFile(path, []byte(samplePKGInfo), 0o644))

	md, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pdb2pqr", md.Name)

	_, err = ParseFile(filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestNormalizedName(t *testing.T) {
	assert.Equal(t, "pdb2pqr", NormalizedName("PDB2PQR"))
	assert.Equal(t, "my-package", NormalizedName("My__Package"))
	assert.Equal(t, "a-b-c", NormalizedName("a.b-_c"))
}
