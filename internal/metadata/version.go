// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metadata

import (
	"fmt"
	"regexp"
	"strings"
)

// versionPattern accepts PEP 440 versions, including the permitted
// non-canonical spellings (leading "v", "-" / "_" separators, "alpha").
const versionPattern = `v?(?:[0-9]+!)?[0-9]+(?:\.[0-9]+)*` +
	`(?:[-_.]?(?:a|b|c|rc|alpha|beta|pre|preview)[-_.]?[0-9]*)?` +
	`(?:-[0-9]+|[-_.]?(?:post|rev|r)[-_.]?[0-9]*)?` +
	`(?:[-_.]?dev[-_.]?[0-9]*)?`

const localPattern = `(?:\+[a-z0-9]+(?:[-_.][a-z0-9]+)*)?`

var (
	versionRe  = regexp.MustCompile(`(?i)^` + versionPattern + localPattern + `$`)
	publicRe   = regexp.MustCompile(`(?i)^` + versionPattern + `$`)
	wildcardRe = regexp.MustCompile(`(?i)^v?(?:[0-9]+!)?[0-9]+(?:\.[0-9]+)*\.\*$`)
)

// ValidVersion reports whether v is a well-formed PEP 440 version.
func ValidVersion(v string) bool {
	return versionRe.MatchString(strings.TrimSpace(v))
}

// specifier operators, longest first so "===" wins over "==".
var operators = []string{"===", "~=", "==", "!=", "<=", ">=", "<", ">"}

// CheckSpecifierSet validates a comma-separated list of version specifiers
// such as ">=3.6,<4" or "==3.*".
func CheckSpecifierSet(set string) error {
	if strings.TrimSpace(set) == "" {
		return fmt.Errorf("empty specifier set")
	}
	for _, spec := range strings.Split(set, ",") {
		if err := checkSpecifier(strings.TrimSpace(spec)); err != nil {
			return err
		}
	}
	return nil
}

func checkSpecifier(spec string) error {
	var op string
	for _, candidate := range operators {
		if strings.HasPrefix(spec, candidate) {
			op = candidate
			break
		}
	}
	if op == "" {
		return fmt.Errorf("specifier %q has no comparison operator", spec)
	}

	v := strings.TrimSpace(strings.TrimPrefix(spec, op))
	if v == "" {
		return fmt.Errorf("specifier %q has no version", spec)
	}

	switch op {
	case "===":
		if strings.ContainsAny(v, " \t;") {
			return fmt.Errorf("specifier %q: arbitrary equality version contains whitespace", spec)
		}
	case "==", "!=":
		if strings.HasSuffix(v, ".*") {
			if !wildcardRe.MatchString(v) {
				return fmt.Errorf("specifier %q: malformed wildcard", spec)
			}
			return nil
		}
		if !versionRe.MatchString(v) {
			return fmt.Errorf("specifier %q: malformed version", spec)
		}
	case "~=":
		if !publicRe.MatchString(v) {
			return fmt.Errorf("specifier %q: malformed version", spec)
		}
		release := strings.TrimLeft(v, "vV")
		if i := strings.IndexByte(release, '!'); i >= 0 {
			release = release[i+1:]
		}
		if !strings.Contains(release, ".") {
			return fmt.Errorf("specifier %q: compatible release needs at least two segments", spec)
		}
	default:
		if !publicRe.MatchString(v) {
			return fmt.Errorf("specifier %q: malformed version", spec)
		}
	}
	return nil
}
