// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metadata

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"

	"github.com/pdiddy/pdb2pqr/pkg/types"
)

// KnownMetadataVersions lists the Metadata-Version values accepted by Validate.
var KnownMetadataVersions = []string{"1.0", "1.1", "1.2", "2.1", "2.2", "2.3", "2.4"}

var nameRe = regexp.MustCompile(`(?i)^([A-Z0-9]|[A-Z0-9][A-Z0-9._-]*[A-Z0-9])$`)

// ValidationError describes one problem with a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every problem found in a record.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks md for required fields and well-formed values. It returns
// nil or a ValidationErrors listing every problem in field order.
func Validate(md *types.Metadata) error {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	for _, dup := range md.Duplicates {
		add(dup, "header appears more than once")
	}

	switch {
	case md.MetadataVersion == "":
		add(hdrMetadataVersion, "required field is missing")
	case !knownMetadataVersion(md.MetadataVersion):
		add(hdrMetadataVersion, "unsupported version %q", md.MetadataVersion)
	}

	switch {
	case md.Name == "":
		add(hdrName, "required field is missing")
	case !nameRe.MatchString(md.Name):
		add(hdrName, "invalid distribution name %q", md.Name)
	}

	switch {
	case md.Version == "":
		add(hdrVersion, "required field is missing")
	case !ValidVersion(md.Version):
		add(hdrVersion, "%q is not a valid PEP 440 version", md.Version)
	}

	if md.HomePage != "" {
		if err := checkURL(md.HomePage); err != nil {
			add(hdrHomePage, "%v", err)
		}
	}

	if md.AuthorEmail != "" {
		if _, err := mail.ParseAddressList(md.AuthorEmail); err != nil {
			add(hdrAuthorEmail, "invalid address list %q: %v", md.AuthorEmail, err)
		}
	}

	for _, pu := range md.ProjectURLs {
		if pu.Label == "" {
			add(hdrProjectURL, "missing label for %q", pu.URL)
		}
		if err := checkURL(pu.URL); err != nil {
			add(hdrProjectURL, "%v", err)
		}
	}

	for _, c := range md.Classifiers {
		if err := checkClassifier(c); err != nil {
			add(hdrClassifier, "%v", err)
		}
	}

	if md.RequiresPython != "" {
		if err := CheckSpecifierSet(md.RequiresPython); err != nil {
			add(hdrRequiresPython, "%v", err)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func knownMetadataVersion(v string) bool {
	for _, known := range KnownMetadataVersions {
		if v == known {
			return true
		}
	}
	return false
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("URL %q has no host", raw)
	}
	return nil
}

// checkClassifier requires at least two non-empty segments separated by " :: ".
func checkClassifier(c string) error {
	parts := strings.Split(c, " :: ")
	if len(parts) < 2 {
		return fmt.Errorf("classifier %q has no \" :: \" separator", c)
	}
	for _, p := range parts {
		if p == "" || strings.TrimSpace(p) != p {
			return fmt.Errorf("classifier %q has an empty or padded segment", c)
		}
	}
	return nil
}
