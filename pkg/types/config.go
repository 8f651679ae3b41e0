// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strings"
	"time"
)

// Forcefield names a parameter set used for charge and radius assignment.
type Forcefield string

const (
	ForcefieldAmber   Forcefield = "amber"
	ForcefieldCharmm  Forcefield = "charmm"
	ForcefieldParse   Forcefield = "parse"
	ForcefieldTYL06   Forcefield = "tyl06"
	ForcefieldPEOEPB  Forcefield = "peoepb"
	ForcefieldSwanson Forcefield = "swanson"
)

// Forcefields lists the built-in force fields in the order they are shown
// in help text.
var Forcefields = []Forcefield{
	ForcefieldAmber, ForcefieldCharmm, ForcefieldParse,
	ForcefieldTYL06, ForcefieldPEOEPB, ForcefieldSwanson,
}

// ParseForcefield lower-cases name and reports whether it is a built-in
// force field.
func ParseForcefield(name string) (Forcefield, bool) {
	ff := Forcefield(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Forcefields {
		if ff == known {
			return ff, true
		}
	}
	return ff, false
}

// PkaMethod selects how titration states are calculated.
type PkaMethod string

const (
	PkaNone    PkaMethod = ""
	PkaPropka  PkaMethod = "propka"
	PkaPDB2PKA PkaMethod = "pdb2pka"
)

// RunOptions holds every setting that controls a single structure
// preparation run. Field names follow the command-line flags.
type RunOptions struct {
	// InputPath is a local PDB path or a four-character PDB ID.
	InputPath string `json:"input_path" yaml:"input_path"`

	// OutputPQR is the path of the file to write.
	OutputPQR string `json:"output_pqr" yaml:"output_pqr"`

	// LogLevel is one of DEBUG, INFO, WARNING, ERROR, CRITICAL.
	LogLevel string `json:"log_level" yaml:"log_level"`

	FF        Forcefield `json:"ff" yaml:"ff"`
	UserFF    string     `json:"userff,omitempty" yaml:"userff,omitempty"`
	UserNames string     `json:"usernames,omitempty" yaml:"usernames,omitempty"`
	FFOut     Forcefield `json:"ffout,omitempty" yaml:"ffout,omitempty"`

	// Clean skips optimization, atom addition, and parameter assignment and
	// returns the input atoms in aligned format.
	Clean bool `json:"clean" yaml:"clean"`

	Debump     bool `json:"debump" yaml:"debump"`
	Opt        bool `json:"opt" yaml:"opt"`
	KeepChain  bool `json:"keep_chain" yaml:"keep_chain"`
	AssignOnly bool `json:"assign_only" yaml:"assign_only"`

	APBSInput string `json:"apbs_input,omitempty" yaml:"apbs_input,omitempty"`
	Ligand    string `json:"ligand,omitempty" yaml:"ligand,omitempty"`

	// Whitespace inserts spaces between atom and residue names and between
	// coordinates so fields never run together.
	Whitespace bool `json:"whitespace" yaml:"whitespace"`

	NeutralN      bool `json:"neutraln" yaml:"neutraln"`
	NeutralC      bool `json:"neutralc" yaml:"neutralc"`
	DropWater     bool `json:"drop_water" yaml:"drop_water"`
	IncludeHeader bool `json:"include_header" yaml:"include_header"`

	PkaMethod PkaMethod `json:"pka_method,omitempty" yaml:"pka_method,omitempty"`
	PH        float64   `json:"ph" yaml:"ph"`

	PDB2PKAOut    string  `json:"pdb2pka_out" yaml:"pdb2pka_out"`
	PDB2PKAResume bool    `json:"pdb2pka_resume" yaml:"pdb2pka_resume"`
	PDie          float64 `json:"pdie" yaml:"pdie"`
	SDie          float64 `json:"sdie" yaml:"sdie"`
	PairEne       float64 `json:"pairene" yaml:"pairene"`
}

// FetchConfig holds settings for retrieving structures from the RCSB.
type FetchConfig struct {
	// BaseURL is the download endpoint (default https://files.rcsb.org/download).
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries bounds retries on HTTP 429 and 503 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// HistoryConfig holds settings for the run history database.
type HistoryConfig struct {
	// Dir contains history.db.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default number of runs listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Disabled turns off recording.
	Disabled bool `json:"disabled" yaml:"disabled"`
}
