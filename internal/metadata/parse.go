// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metadata reads, validates, and writes Core Metadata records, the
// PKG-INFO files that describe a packaged distribution of the tool.
package metadata

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pdiddy/pdb2pqr/pkg/types"
)

// ErrEmpty is returned when a record has no headers.
var ErrEmpty = errors.New("empty metadata record")

// Canonical header names.
const (
	hdrMetadataVersion = "Metadata-Version"
	hdrName            = "Name"
	hdrVersion         = "Version"
	hdrSummary         = "Summary"
	hdrHomePage        = "Home-page"
	hdrAuthor          = "Author"
	hdrAuthorEmail     = "Author-email"
	hdrLicense         = "License"
	hdrProjectURL      = "Project-URL"
	hdrDescription     = "Description"
	hdrKeywords        = "Keywords"
	hdrPlatform        = "Platform"
	hdrClassifier      = "Classifier"
	hdrRequiresPython  = "Requires-Python"
)

// canonical maps lower-cased header names to their canonical spelling.
var canonical = map[string]string{}

func init() {
	for _, h := range []string{
		hdrMetadataVersion, hdrName, hdrVersion, hdrSummary, hdrHomePage,
		hdrAuthor, hdrAuthorEmail, hdrLicense, hdrProjectURL, hdrDescription,
		hdrKeywords, hdrPlatform, hdrClassifier, hdrRequiresPython,
	} {
		canonical[strings.ToLower(h)] = h
	}
}

type rawHeader struct {
	name  string
	value string
	line  int
}

// Parse reads a record from r. Headers end at the first blank line; any
// text after it is the description body.
func Parse(r io.Reader) (*types.Metadata, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	var (
		headers   []rawHeader
		body      []string
		inHeaders = true
		lineNo    int
	)

	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")

		if !inHeaders {
			body = append(body, line)
			continue
		}

		if strings.TrimSpace(line) == "" {
			inHeaders = false
			continue
		}

		if line[0] == ' ' || line[0] == '\t' {
			if len(headers) == 0 {
				return nil, fmt.Errorf("line %d: continuation line before any header", lineNo)
			}
			last := &headers[len(headers)-1]
			cont := strings.TrimLeft(line, " \t")
			if strings.EqualFold(last.name, hdrDescription) {
				cont = strings.TrimPrefix(cont, "|")
			}
			last.value += "\n" + strings.TrimRight(cont, " \t")
			continue
		}

		idx := strings.IndexByte(line, ':')
		if idx <= 0 {
			return nil, fmt.Errorf("line %d: malformed header %q", lineNo, line)
		}
		headers = append(headers, rawHeader{
			name:  strings.TrimSpace(line[:idx]),
			value: strings.TrimSpace(line[idx+1:]),
			line:  lineNo,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading metadata: %w", err)
	}
	if len(headers) == 0 {
		return nil, ErrEmpty
	}

	md := &types.Metadata{}
	seen := make(map[string]bool)
	for _, h := range headers {
		assign(md, h, seen)
	}

	if text := strings.Trim(strings.Join(body, "\n"), "\n"); text != "" {
		md.Description = text
	}
	return md, nil
}

// ParseFile reads a record from the file at path.
func ParseFile(path string) (*types.Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening metadata file: %w", err)
	}
	defer f.Close()

	md, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return md, nil
}

func assign(md *types.Metadata, h rawHeader, seen map[string]bool) {
	name, ok := canonical[strings.ToLower(h.name)]
	if !ok {
		md.Extra = append(md.Extra, types.Header{Name: h.name, Value: h.value})
		return
	}

	single := func(dst *string) {
		if seen[name] {
			md.Duplicates = append(md.Duplicates, name)
		}
		seen[name] = true
		*dst = h.value
	}

	switch name {
	case hdrMetadataVersion:
		single(&md.MetadataVersion)
	case hdrName:
		single(&md.Name)
	case hdrVersion:
		single(&md.Version)
	case hdrSummary:
		single(&md.Summary)
	case hdrHomePage:
		single(&md.HomePage)
	case hdrAuthor:
		single(&md.Author)
	case hdrAuthorEmail:
		single(&md.AuthorEmail)
	case hdrLicense:
		single(&md.License)
	case hdrDescription:
		single(&md.Description)
	case hdrKeywords:
		single(&md.Keywords)
	case hdrRequiresPython:
		single(&md.RequiresPython)
	case hdrProjectURL:
		md.ProjectURLs = append(md.ProjectURLs, parseProjectURL(h.value))
	case hdrPlatform:
		md.Platforms = append(md.Platforms, h.value)
	case hdrClassifier:
		md.Classifiers = append(md.Classifiers, h.value)
	}
}

// parseProjectURL splits "Label, https://..." at the first comma. A value
// without a comma is treated as a bare URL.
func parseProjectURL(value string) types.ProjectURL {
	label, link, ok := strings.Cut(value, ",")
	if !ok {
		return types.ProjectURL{URL: strings.TrimSpace(value)}
	}
	return types.ProjectURL{
		Label: strings.TrimSpace(label),
		URL:   strings.TrimSpace(link),
	}
}

var normalizeRe = regexp.MustCompile(`[-_.]+`)

// NormalizedName returns the comparable form of a distribution name:
// runs of "-", "_", "." collapse to "-" and letters are lower-cased.
func NormalizedName(name string) string {
	return strings.ToLower(normalizeRe.ReplaceAllString(name, "-"))
}
