// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pqr

import (
	"fmt"
	"math"

	"github.com/pdiddy/pdb2pqr/pkg/types"
)

// TotalCharge sums the charges of every residue.
func TotalCharge(residues []*types.Residue) float64 {
	var total float64
	for _, r := range residues {
		total += r.Charge()
	}
	return total
}

// NonIntegral returns the residues whose charge differs from the nearest
// integer by more than tol.
func NonIntegral(residues []*types.Residue, tol float64) []*types.Residue {
	var out []*types.Residue
	for _, r := range residues {
		q := r.Charge()
		if math.Abs(q-math.Round(q)) > tol {
			out = append(out, r)
		}
	}
	return out
}

// CheckIntegralCharges returns an error naming the first residue whose
// charge is not an integer within tol.
func CheckIntegralCharges(residues []*types.Residue, tol float64) error {
	bad := NonIntegral(residues, tol)
	if len(bad) == 0 {
		return nil
	}
	r := bad[0]
	return fmt.Errorf("residue %s %d charge is non-integer: %.4f", r.Name, r.ResSeq, r.Charge())
}
