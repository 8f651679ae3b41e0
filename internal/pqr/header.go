// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pqr

import (
	"fmt"

	"github.com/pdiddy/pdb2pqr/pkg/types"
)

// HeaderInfo describes the run that produced a PQR file.
type HeaderInfo struct {
	Version   string
	FF        types.Forcefield
	FFOut     types.Forcefield
	PkaMethod types.PkaMethod
	PH        float64
	Missing   []*types.Atom
	Charge    *float64
	OldHeader []types.Record
}

// oldHeaderTypes are the input records carried over by IncludeHeader.
var oldHeaderTypes = map[string]bool{
	"HEADER": true, "TITLE": true, "COMPND": true, "SOURCE": true,
	"KEYWDS": true, "EXPDTA": true, "AUTHOR": true, "REVDAT": true,
	"JRNL": true, "REMARK": true,
}

// Header returns the REMARK block written above the atom records.
func Header(info HeaderInfo) []string {
	lines := []string{
		fmt.Sprintf("REMARK   1 PQR file generated by PDB2PQR (Version %s)", info.Version),
		"REMARK   1",
	}
	if info.FF != "" {
		lines = append(lines, fmt.Sprintf("REMARK   1 Forcefield Used: %s", info.FF))
	}
	if info.FFOut != "" {
		lines = append(lines, fmt.Sprintf("REMARK   1 Naming Scheme Used: %s", info.FFOut))
	}
	if info.FF != "" || info.FFOut != "" {
		lines = append(lines, "REMARK   1")
	}
	if info.PkaMethod != types.PkaNone {
		lines = append(lines,
			fmt.Sprintf("REMARK   1 pKas calculated by %s and assigned using pH %.2f", info.PkaMethod, info.PH),
			"REMARK   1")
	}

	if len(info.Missing) > 0 {
		lines = append(lines,
			"REMARK   5 WARNING: PDB2PQR was unable to assign charges",
			"REMARK   5          to the following atoms (omitted below):")
		for _, a := range info.Missing {
			lines = append(lines, fmt.Sprintf("REMARK   5              %d %s in %s %d", a.Serial, a.Name, a.ResName, a.ResSeq))
		}
		lines = append(lines,
			"REMARK   5 This is usually due to the fact that this residue is not",
			"REMARK   5 an amino acid or nucleic acid; or, there are no parameters",
			"REMARK   5 available for the specific protonation state of this",
			"REMARK   5 residue in the selected forcefield.",
			"REMARK   5")
	}

	if info.Charge != nil {
		lines = append(lines,
			fmt.Sprintf("REMARK   6 Total charge on this biomolecule: %.4f e", *info.Charge),
			"REMARK   6")
	}

	for _, rec := range info.OldHeader {
		if oldHeaderTypes[rec.RecordType()] {
			lines = append(lines, rec.String())
		}
	}
	return lines
}
