// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdb

import "github.com/pdiddy/pdb2pqr/pkg/types"

// FirstModel drops every atom and model record after the first ENDMDL so
// that only model 1 of a multi-model file remains. Header and trailing
// records such as CONECT and END are kept. It also returns the number of
// MODEL records seen.
func FirstModel(records []types.Record) ([]types.Record, int) {
	var (
		kept   = make([]types.Record, 0, len(records))
		models int
		done   bool
	)
	for _, rec := range records {
		rtype := rec.RecordType()
		if rtype == "MODEL" {
			models++
		}
		if done {
			switch rec.(type) {
			case *types.Atom, *types.ResidueRecord:
				continue
			}
			switch rtype {
			case "MODEL", "ENDMDL", "TER":
				continue
			}
		}
		kept = append(kept, rec)
		if rtype == "ENDMDL" {
			done = true
		}
	}
	return kept, models
}
