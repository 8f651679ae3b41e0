// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package options builds, normalizes, and sanity-checks run options before
// any structure is loaded.
package options

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pdiddy/pdb2pqr/pkg/types"
)

var (
	// ErrInvalidOption marks option combinations that can never work.
	ErrInvalidOption = errors.New("invalid option")

	// ErrNotSupported marks options that need a processing stage this
	// build does not provide.
	ErrNotSupported = errors.New("not supported")
)

const (
	// TitleFormat is the banner logged at the start of every run.
	TitleFormat = "PDB2PQR v%s: biomolecular structure conversion software."

	// RepairLimit is the largest fraction of missing heavy atoms that may
	// be rebuilt.
	RepairLimit = 0.1

	// ChargeTolerance is the round-off allowed when deciding whether a
	// residue charge is integral.
	ChargeTolerance = 1e-3

	// MinPH is the lowest accepted --with-ph value.
	MinPH = 0.0

	// MaxPH is the highest accepted --with-ph value.
	MaxPH = 14.0
)

// Citations are logged after the banner.
var Citations = []string{
	"Please cite:  Jurrus E, et al.  Improvements to the APBS biomolecular solvation software suite.  Protein Sci 27 112-128 (2018).",
	"Please cite:  Dolinsky TJ, et al.  PDB2PQR: expanding and upgrading automated preparation of biomolecular structures for molecular simulations. Nucleic Acids Res 35 W522-W525 (2007).",
}

// Defaults returns the option values used when a flag is not given.
func Defaults() types.RunOptions {
	return types.RunOptions{
		LogLevel:   "INFO",
		FF:         types.ForcefieldParse,
		Debump:     true,
		Opt:        true,
		PH:         7.0,
		PDB2PKAOut: "pdb2pka_output",
		PDie:       8.0,
		SDie:       80.0,
		PairEne:    1.0,
	}
}

// SplashLines returns the banner and citation lines for version.
func SplashLines(version string) []string {
	lines := []string{fmt.Sprintf(TitleFormat, version)}
	return append(lines, Citations...)
}

// Transform applies the option interactions that flags alone cannot
// express: assign-only and clean runs never debump or optimize, and
// force-field names are lower-cased.
func Transform(opts types.RunOptions) types.RunOptions {
	if opts.AssignOnly || opts.Clean {
		opts.Debump = false
		opts.Opt = false
	}
	if opts.UserFF != "" {
		opts.UserFF = strings.ToLower(opts.UserFF)
	} else if opts.FF != "" {
		opts.FF = types.Forcefield(strings.ToLower(string(opts.FF)))
	}
	if opts.FFOut != "" {
		opts.FFOut = types.Forcefield(strings.ToLower(string(opts.FFOut)))
	}
	opts.PkaMethod = types.PkaMethod(strings.ToLower(string(opts.PkaMethod)))
	return opts
}

// CheckFiles verifies that every user-supplied auxiliary file exists.
// Missing files wrap fs.ErrNotExist.
func CheckFiles(opts types.RunOptions) error {
	if opts.UserNames != "" {
		if err := requireFile(opts.UserNames, "user-provided names file"); err != nil {
			return err
		}
	}

	if opts.UserFF != "" {
		if err := requireFile(opts.UserFF, "user-provided forcefield file"); err != nil {
			return err
		}
		if opts.UserNames == "" {
			return fmt.Errorf("%w: --usernames must be specified if using --userff", ErrInvalidOption)
		}
	}

	if opts.Ligand != "" {
		if err := requireFile(opts.Ligand, "ligand file"); err != nil {
			return err
		}
	}
	return nil
}

func requireFile(path, what string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s does not exist: %s: %w", what, path, fs.ErrNotExist)
		}
		return fmt.Errorf("checking %s %s: %w", what, path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file: %s: %w", what, path, fs.ErrNotExist)
	}
	return nil
}

// CheckOptions rejects option combinations that cannot produce a result.
func CheckOptions(opts types.RunOptions) error {
	if opts.PH < MinPH || opts.PH > MaxPH {
		return fmt.Errorf("%w: specified pH (%g) is outside the range [%g, %g] of this program",
			ErrInvalidOption, opts.PH, MinPH, MaxPH)
	}

	if opts.UserFF == "" && !opts.Clean {
		if _, ok := types.ParseForcefield(string(opts.FF)); !ok {
			return fmt.Errorf("%w: unknown forcefield %q", ErrInvalidOption, opts.FF)
		}
	}
	if opts.FFOut != "" {
		if _, ok := types.ParseForcefield(string(opts.FFOut)); !ok {
			return fmt.Errorf("%w: unknown output naming scheme %q", ErrInvalidOption, opts.FFOut)
		}
	}

	isParse := strings.EqualFold(string(opts.FF), string(types.ForcefieldParse))
	if opts.NeutralN && !isParse {
		return fmt.Errorf("%w: --neutraln option only works with PARSE forcefield", ErrInvalidOption)
	}
	if opts.NeutralC && !isParse {
		return fmt.Errorf("%w: --neutralc option only works with PARSE forcefield", ErrInvalidOption)
	}

	switch opts.PkaMethod {
	case types.PkaNone, types.PkaPropka, types.PkaPDB2PKA:
	default:
		return fmt.Errorf("%w: unknown titration state method %q", ErrInvalidOption, opts.PkaMethod)
	}
	return nil
}

// CheckSupported reports options that need titration, hydrogen placement,
// or force-field assignment. Only clean runs are carried out.
func CheckSupported(opts types.RunOptions) error {
	switch {
	case opts.PkaMethod == types.PkaPDB2PKA:
		return fmt.Errorf("%w: PDB2PKA titration", ErrNotSupported)
	case opts.PkaMethod == types.PkaPropka:
		return fmt.Errorf("%w: PROPKA titration", ErrNotSupported)
	case opts.Ligand != "":
		return fmt.Errorf("%w: ligand parameterization", ErrNotSupported)
	case opts.APBSInput != "":
		return fmt.Errorf("%w: APBS input generation", ErrNotSupported)
	case !opts.Clean:
		return fmt.Errorf("%w: force field assignment (use --clean)", ErrNotSupported)
	}
	return nil
}
