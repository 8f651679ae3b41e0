// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ProjectURL is a labelled link from a Project-URL header.
type ProjectURL struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// Header is a raw header kept verbatim because it has no dedicated field.
type Header struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Metadata is a Core Metadata record (the PKG-INFO / METADATA file of a
// Python distribution).
type Metadata struct {
	MetadataVersion string       `json:"metadata_version" yaml:"metadata_version"`
	Name            string       `json:"name" yaml:"name"`
	Version         string       `json:"version" yaml:"version"`
	Summary         string       `json:"summary,omitempty" yaml:"summary,omitempty"`
	HomePage        string       `json:"home_page,omitempty" yaml:"home_page,omitempty"`
	Author          string       `json:"author,omitempty" yaml:"author,omitempty"`
	AuthorEmail     string       `json:"author_email,omitempty" yaml:"author_email,omitempty"`
	License         string       `json:"license,omitempty" yaml:"license,omitempty"`
	ProjectURLs     []ProjectURL `json:"project_urls,omitempty" yaml:"project_urls,omitempty"`
	Description     string       `json:"description,omitempty" yaml:"description,omitempty"`
	Keywords        string       `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Platforms       []string     `json:"platforms,omitempty" yaml:"platforms,omitempty"`
	Classifiers     []string     `json:"classifiers,omitempty" yaml:"classifiers,omitempty"`
	RequiresPython  string       `json:"requires_python,omitempty" yaml:"requires_python,omitempty"`

	// Extra holds headers without a dedicated field, in input order.
	Extra []Header `json:"extra,omitempty" yaml:"extra,omitempty"`

	// Duplicates names single-valued headers that appeared more than once.
	Duplicates []string `json:"-" yaml:"-"`
}
