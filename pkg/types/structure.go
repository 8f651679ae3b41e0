// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Record is a single line of a PDB file.
type Record interface {
	// RecordType returns the trimmed record name (e.g. "ATOM", "REMARK").
	RecordType() string

	// String returns the line as it was read, without the trailing newline.
	String() string
}

// Atom is an ATOM or HETATM record. FFCharge and Radius are only set when
// the atom was read from a PQR file.
type Atom struct {
	Type       string  `json:"type" yaml:"type"`
	Serial     int     `json:"serial" yaml:"serial"`
	Name       string  `json:"name" yaml:"name"`
	AltLoc     string  `json:"alt_loc,omitempty" yaml:"alt_loc,omitempty"`
	ResName    string  `json:"res_name" yaml:"res_name"`
	ChainID    string  `json:"chain_id,omitempty" yaml:"chain_id,omitempty"`
	ResSeq     int     `json:"res_seq" yaml:"res_seq"`
	ICode      string  `json:"ins_code,omitempty" yaml:"ins_code,omitempty"`
	X          float64 `json:"x" yaml:"x"`
	Y          float64 `json:"y" yaml:"y"`
	Z          float64 `json:"z" yaml:"z"`
	Occupancy  float64 `json:"occupancy" yaml:"occupancy"`
	TempFactor float64 `json:"temp_factor" yaml:"temp_factor"`
	SegID      string  `json:"seg_id,omitempty" yaml:"seg_id,omitempty"`
	Element    string  `json:"element,omitempty" yaml:"element,omitempty"`
	Charge     string  `json:"charge,omitempty" yaml:"charge,omitempty"`

	FFCharge float64 `json:"ffcharge" yaml:"ffcharge"`
	Radius   float64 `json:"radius" yaml:"radius"`

	Line string `json:"-" yaml:"-"`
}

func (a *Atom) RecordType() string { return a.Type }
func (a *Atom) String() string     { return a.Line }

// ResidueRecord is a non-coordinate record that still names a residue
// (SIGATM, ANISOU, SIGUIJ, SEQADV).
type ResidueRecord struct {
	Type    string `json:"type" yaml:"type"`
	ResName string `json:"res_name" yaml:"res_name"`
	Line    string `json:"-" yaml:"-"`
}

func (r *ResidueRecord) RecordType() string { return r.Type }
func (r *ResidueRecord) String() string     { return r.Line }

// Generic is any record this package does not decode.
type Generic struct {
	Type string
	Line string
}

func (g *Generic) RecordType() string { return g.Type }
func (g *Generic) String() string     { return g.Line }

// Residue groups consecutive atoms sharing chain, sequence number,
// insertion code, and residue name.
type Residue struct {
	Name    string  `json:"name" yaml:"name"`
	ChainID string  `json:"chain_id,omitempty" yaml:"chain_id,omitempty"`
	ResSeq  int     `json:"res_seq" yaml:"res_seq"`
	ICode   string  `json:"ins_code,omitempty" yaml:"ins_code,omitempty"`
	Atoms   []*Atom `json:"-" yaml:"-"`
}

// Charge sums the partial charges of the residue's atoms.
func (r *Residue) Charge() float64 {
	var total float64
	for _, a := range r.Atoms {
		total += a.FFCharge
	}
	return total
}

func (r *Residue) String() string {
	if r.ChainID == "" {
		return fmt.Sprintf("%s %d%s", r.Name, r.ResSeq, r.ICode)
	}
	return fmt.Sprintf("%s %s %d%s", r.Name, r.ChainID, r.ResSeq, r.ICode)
}
