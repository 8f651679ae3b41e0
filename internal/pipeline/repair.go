// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdb2pqr/internal/options"
)

// ErrNoHeavyAtoms is returned by IsRepairable when a structure has nothing
// to work with.
var ErrNoHeavyAtoms = errors.New("no biomolecule heavy atoms found and no ligand present; " +
	"unable to proceed. You may also see this message if PDB2PQR does not have parameters " +
	"for any residue in your protein")

// IsRepairable reports whether missing heavy atoms can and should be
// rebuilt. A structure missing more than options.RepairLimit of its heavy
// atoms is logged as an error and left unrepaired.
func IsRepairable(numHeavy, numMissing int, hasLigand bool, log logrus.FieldLogger) (bool, error) {
	if numHeavy == 0 {
		if !hasLigand {
			return false, ErrNoHeavyAtoms
		}
		log.Warn("No heavy atoms found but a ligand is present. Proceeding with caution.")
		return false, nil
	}

	if numMissing == 0 {
		log.Info("This biomolecule is clean.  No repair needed.")
		return false, nil
	}

	frac := float64(numMissing) / float64(numHeavy)
	if frac > options.RepairLimit {
		log.Errorf("This PDB file is missing too many (%d out of %d, %g) heavy atoms to accurately "+
			"repair the file.  The current repair limit is set at %g. You may also see this message "+
			"if PDB2PQR does not have parameters for enough residues in your protein.",
			numMissing, numHeavy, frac, options.RepairLimit)
		return false, nil
	}
	return true, nil
}
