// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdb

import (
	"strings"

	"github.com/pdiddy/pdb2pqr/pkg/types"
)

// WaterResidueNames are the residue names treated as solvent.
var WaterResidueNames = []string{"HOH", "WAT"}

// IsWater reports whether resName names a water residue.
func IsWater(resName string) bool {
	for _, w := range WaterResidueNames {
		if strings.EqualFold(resName, w) {
			return true
		}
	}
	return false
}

// DropWater returns records with every water ATOM, HETATM, SIGATM, and
// SEQADV record removed, along with the number of records dropped.
func DropWater(records []types.Record) ([]types.Record, int) {
	kept := make([]types.Record, 0, len(records))
	dropped := 0
	for _, rec := range records {
		var resName string
		switch r := rec.(type) {
		case *types.Atom:
			resName = r.ResName
		case *types.ResidueRecord:
			if r.Type == "SIGATM" || r.Type == "SEQADV" {
				resName = r.ResName
			}
		}
		if resName != "" && IsWater(resName) {
			dropped++
			continue
		}
		kept = append(kept, rec)
	}
	return kept, dropped
}

// Residues groups consecutive atoms that share chain, sequence number,
// insertion code, and residue name.
func Residues(atoms []*types.Atom) []*types.Residue {
	var (
		residues []*types.Residue
		cur      *types.Residue
	)
	for _, a := range atoms {
		if cur == nil || cur.ChainID != a.ChainID || cur.ResSeq != a.ResSeq ||
			cur.ICode != a.ICode || cur.Name != a.ResName {
			cur = &types.Residue{Name: a.ResName, ChainID: a.ChainID, ResSeq: a.ResSeq, ICode: a.ICode}
			residues = append(residues, cur)
		}
		cur.Atoms = append(cur.Atoms, a)
	}
	return residues
}

// Occupancy lists the atoms of one residue that carry an alternate
// location indicator.
type Occupancy struct {
	Residue *types.Residue
	Atoms   []*types.Atom
}

// MultipleOccupancies returns every residue with at least one alternate
// location atom, in residue order.
func MultipleOccupancies(residues []*types.Residue) []Occupancy {
	var out []Occupancy
	for _, res := range residues {
		var alt []*types.Atom
		for _, a := range res.Atoms {
			if a.AltLoc != "" {
				alt = append(alt, a)
			}
		}
		if len(alt) > 0 {
			out = append(out, Occupancy{Residue: res, Atoms: alt})
		}
	}
	return out
}

// ResolveAlternates keeps the first instance of each atom name in every
// residue and clears its alternate location indicator. Residue atom lists
// are trimmed in place and the kept atoms are returned in input order.
func ResolveAlternates(residues []*types.Residue) []*types.Atom {
	var kept []*types.Atom
	for _, res := range residues {
		seen := make(map[string]bool, len(res.Atoms))
		atoms := res.Atoms[:0]
		for _, a := range res.Atoms {
			if seen[a.Name] {
				continue
			}
			seen[a.Name] = true
			a.AltLoc = ""
			atoms = append(atoms, a)
		}
		res.Atoms = atoms
		kept = append(kept, atoms...)
	}
	return kept
}

// Element returns the atom's element symbol, falling back to the first
// letter of the atom name when the element column is blank. Names that
// start with a digit (e.g. "1HB") use the first letter after it.
func Element(a *types.Atom) string {
	if a.Element != "" {
		return strings.ToUpper(a.Element)
	}
	for _, r := range a.Name {
		if r >= '0' && r <= '9' {
			continue
		}
		return strings.ToUpper(string(r))
	}
	return ""
}

// HeavyAtomCount returns the number of non-hydrogen atoms.
func HeavyAtomCount(atoms []*types.Atom) int {
	n := 0
	for _, a := range atoms {
		switch Element(a) {
		case "H", "D":
		default:
			n++
		}
	}
	return n
}
