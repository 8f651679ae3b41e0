// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metadata

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/pdb2pqr/pkg/types"
)

// ErrBlankContinuation is returned by Write for a header value with a blank
// inner line, which a reader would take as the end of the headers.
var ErrBlankContinuation = errors.New("header value contains a blank line")

// Write emits md in canonical field order. Multi-valued fields are repeated
// once per value, multi-line values are indented as continuation lines, and
// the description follows the headers as a body. Nothing is written when
// a header value has a blank inner line.
func Write(w io.Writer, md *types.Metadata) (int64, error) {
	var (
		b   strings.Builder
		bad error
	)

	header := func(name, value string) {
		if value == "" {
			return
		}
		if bad == nil && strings.Contains(value, "\n") {
			for _, line := range strings.Split(value, "\n")[1:] {
				if strings.TrimSpace(line) == "" {
					bad = fmt.Errorf("%s: %w", name, ErrBlankContinuation)
					break
				}
			}
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(strings.ReplaceAll(value, "\n", "\n        "))
		b.WriteByte('\n')
	}

	header(hdrMetadataVersion, md.MetadataVersion)
	header(hdrName, md.Name)
	header(hdrVersion, md.Version)
	header(hdrSummary, md.Summary)
	header(hdrHomePage, md.HomePage)
	header(hdrAuthor, md.Author)
	header(hdrAuthorEmail, md.AuthorEmail)
	header(hdrLicense, md.License)
	for _, pu := range md.ProjectURLs {
		if pu.Label == "" {
			header(hdrProjectURL, pu.URL)
			continue
		}
		header(hdrProjectURL, pu.Label+", "+pu.URL)
	}
	header(hdrKeywords, md.Keywords)
	for _, p := range md.Platforms {
		header(hdrPlatform, p)
	}
	for _, c := range md.Classifiers {
		header(hdrClassifier, c)
	}
	header(hdrRequiresPython, md.RequiresPython)
	for _, h := range md.Extra {
		header(h.Name, h.Value)
	}

	if bad != nil {
		return 0, bad
	}

	if md.Description != "" {
		b.WriteByte('\n')
		b.WriteString(md.Description)
		b.WriteByte('\n')
	}

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
