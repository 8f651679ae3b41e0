// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"

	"github.com/pdiddy/pdb2pqr/internal/options"
	"github.com/pdiddy/pdb2pqr/internal/pdb"
	"github.com/pdiddy/pdb2pqr/internal/pqr"
)

// ResidueCharge is one residue whose net charge is not an integer.
type ResidueCharge struct {
	Residue string  `json:"residue" yaml:"residue"`
	Charge  float64 `json:"charge" yaml:"charge"`
}

// Report summarizes a PQR file.
type Report struct {
	Path        string          `json:"path" yaml:"path"`
	Atoms       int             `json:"atoms" yaml:"atoms"`
	HeavyAtoms  int             `json:"heavy_atoms" yaml:"heavy_atoms"`
	Residues    int             `json:"residues" yaml:"residues"`
	Chains      []string        `json:"chains,omitempty" yaml:"chains,omitempty"`
	TotalCharge float64         `json:"total_charge" yaml:"total_charge"`
	NonIntegral []ResidueCharge `json:"non_integral,omitempty" yaml:"non_integral,omitempty"`

	// ChargeError is set when any residue charge is non-integral.
	ChargeError string `json:"charge_error,omitempty" yaml:"charge_error,omitempty"`
}

// Inspect reads the PQR file at path, which may be compressed, and reports
// its per-residue and total charges.
func Inspect(path string) (*Report, error) {
	rc, err := pdb.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	atoms, err := pdb.ReadPQR(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	residues := pdb.Residues(atoms)

	rep := &Report{
		Path:        path,
		Atoms:       len(atoms),
		HeavyAtoms:  pdb.HeavyAtomCount(atoms),
		Residues:    len(residues),
		TotalCharge: pqr.TotalCharge(residues),
	}
	seen := make(map[string]bool)
	for _, a := range atoms {
		if a.ChainID != "" && !seen[a.ChainID] {
			seen[a.ChainID] = true
			rep.Chains = append(rep.Chains, a.ChainID)
		}
	}
	for _, r := range pqr.NonIntegral(residues, options.ChargeTolerance) {
		rep.NonIntegral = append(rep.NonIntegral, ResidueCharge{Residue: r.String(), Charge: r.Charge()})
	}
	if err := pqr.CheckIntegralCharges(residues, options.ChargeTolerance); err != nil {
		rep.ChargeError = err.Error()
	}
	return rep, nil
}
