// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pqr formats atoms as PQR records and checks per-residue charges.
package pqr

import (
	"fmt"
	"strings"

	"github.com/pdiddy/pdb2pqr/pkg/types"
)

func clip(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// FormatAtom renders a as a PQR line without a trailing newline. Four
// character atom names start in column 13, shorter names in column 14.
// The chain column is blank unless keepChain is set. Charge and radius
// replace the occupancy and temperature-factor columns.
func FormatAtom(a *types.Atom, keepChain bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%-6s", clip(a.Type, 6))
	fmt.Fprintf(&b, "%5s", clip(fmt.Sprintf("%d", a.Serial), 5))
	b.WriteByte(' ')

	if len(a.Name) == 4 {
		b.WriteString(a.Name)
	} else {
		fmt.Fprintf(&b, " %-3s", clip(a.Name, 3))
	}
	b.WriteByte(' ')

	if len(a.ResName) == 4 {
		b.WriteString(a.ResName)
	} else {
		fmt.Fprintf(&b, "%-3s ", clip(a.ResName, 3))
	}

	if keepChain && a.ChainID != "" {
		b.WriteString(clip(a.ChainID, 1))
	} else {
		b.WriteByte(' ')
	}

	fmt.Fprintf(&b, "%4s", clip(fmt.Sprintf("%d", a.ResSeq), 4))
	fmt.Fprintf(&b, "%-4s", clip(a.ICode, 4))

	for _, v := range []float64{a.X, a.Y, a.Z} {
		fmt.Fprintf(&b, "%8s", clip(fmt.Sprintf("%8.3f", v), 8))
	}
	fmt.Fprintf(&b, "%8s", fmt.Sprintf("%.4f", a.FFCharge))
	fmt.Fprintf(&b, "%7s", fmt.Sprintf("%.4f", a.Radius))
	return b.String()
}

// SpaceColumns inserts a space after the record name and the atom name and
// between the x, y, and z coordinates of an ATOM or HETATM line, so wide
// values never run into each other. Other lines are returned unchanged.
func SpaceColumns(line string) string {
	if !strings.HasPrefix(line, "ATOM") && !strings.HasPrefix(line, "HETATM") {
		return line
	}
	if len(line) < 47 {
		return line
	}
	return line[0:6] + " " + line[6:16] + " " + line[16:38] + " " + line[38:46] + " " + line[46:]
}
