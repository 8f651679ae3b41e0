// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdb2pqr/internal/fetch"
	"github.com/pdiddy/pdb2pqr/internal/options"
	"github.com/pdiddy/pdb2pqr/internal/pipeline"
	"github.com/pdiddy/pdb2pqr/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] INPUT OUTPUT",
	Short: "Convert a PDB structure to PQR",
	Long: `Run reads INPUT, a PDB file path (optionally .gz, .zst or .xz
compressed) or a four character PDB ID fetched from the RCSB archive, and
writes OUTPUT in PQR format.

Only --clean runs are carried out: atoms are written with zero charge and
radius. Titration, hydrogen optimization, debumping, force field assignment,
ligand parameterization and APBS input generation are reported as not
supported.

With --whitespace, atom lines get extra spaces between fixed columns. TER,
END and header lines are still written unchanged, so the file keeps its
chain breaks and terminator.

Every run is recorded in the history database unless --no-history is set.`,
	Args: cobra.ExactArgs(2),
	RunE: runRun,
}

func init() {
	fs := runCmd.Flags()

	defaults := options.Defaults()
	var ffNames []string
	for _, ff := range types.Forcefields {
		ffNames = append(ffNames, strings.ToUpper(string(ff)))
	}

	fs.String("ff", strings.ToUpper(string(defaults.FF)), "force field: "+strings.Join(ffNames, ", "))
	fs.String("userff", "", "user-created force field file (requires --usernames)")
	fs.String("usernames", "", "user-created names file")
	fs.String("ffout", "", "output naming scheme: "+strings.Join(ffNames, ", "))
	fs.Bool("clean", false, "no hydrogen, charge or radius assignment; write aligned atoms only")
	fs.Bool("nodebump", false, "do not debump the structure")
	fs.Bool("noopt", false, "do not optimize the hydrogen bonding network")
	fs.Bool("keep-chain", false, "keep the chain ID in the output")
	fs.Bool("assign-only", false, "only assign charges and radii; no hydrogens, debumping or optimization")
	fs.String("apbs-input", "", "create an APBS input file with this name")
	fs.String("ligand", "", "MOL2 file describing a ligand")
	fs.Bool("whitespace", false, "insert whitespace between atom name and residue name and between coordinates")
	fs.Bool("neutraln", false, "make the N-terminus neutral (PARSE only)")
	fs.Bool("neutralc", false, "make the C-terminus neutral (PARSE only)")
	fs.Bool("drop-water", false, "drop waters before processing")
	fs.Bool("include-header", false, "include a header in the PQR output")
	fs.String("titration-state-method", "", "method for titration states: propka or pdb2pka")
	fs.Float64("with-ph", defaults.PH, "pH for titration state assignment")
	fs.String("pdb2pka-out", defaults.PDB2PKAOut, "PDB2PKA output directory")
	fs.Bool("pdb2pka-resume", false, "resume a PDB2PKA run")
	fs.Float64("pdie", defaults.PDie, "protein dielectric constant")
	fs.Float64("sdie", defaults.SDie, "solvent dielectric constant")
	fs.Float64("pairene", defaults.PairEne, "cutoff energy for residue pair interactions")

	fs.String("rcsb-url", fetch.DefaultBaseURL, "base URL of the PDB archive used for ID downloads")
	fs.Bool("no-history", false, "do not record this run in the history database")
	fs.String("history-dir", "", "directory holding the history database")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	bindFlags(cmd.Flags(), map[string]string{
		"rcsb-url":    "fetch.base_url",
		"no-history":  "history.disabled",
		"history-dir": "history.dir",
	})

	log, err := newLogger()
	if err != nil {
		return err
	}

	opts := runOptions(args[0], args[1])

	store, err := openHistory()
	if err != nil {
		log.Warnf("History disabled: %v", err)
	}
	if store != nil {
		defer store.Close()
	}

	cfg := fetchConfig()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	run, err := pipeline.Run(ctx, opts, pipeline.Deps{
		Logger:  log,
		Client:  &http.Client{Timeout: cfg.Timeout},
		Fetch:   cfg,
		History: store,
		Version: version,
	})
	if err != nil {
		if errors.Is(err, options.ErrNotSupported) {
			log.Error("Only --clean runs are supported by this build.")
		}
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %s (%d atoms, %d residues, run %s)\n", run.Output, run.Atoms, run.Residues, run.ID)
	return nil
}

// runOptions assembles RunOptions from bound flags, config and environment.
func runOptions(input, output string) types.RunOptions {
	return types.RunOptions{
		InputPath:     input,
		OutputPQR:     output,
		LogLevel:      viper.GetString("log-level"),
		FF:            types.Forcefield(viper.GetString("ff")),
		UserFF:        viper.GetString("userff"),
		UserNames:     viper.GetString("usernames"),
		FFOut:         types.Forcefield(viper.GetString("ffout")),
		Clean:         viper.GetBool("clean"),
		Debump:        !viper.GetBool("nodebump"),
		Opt:           !viper.GetBool("noopt"),
		KeepChain:     viper.GetBool("keep-chain"),
		AssignOnly:    viper.GetBool("assign-only"),
		APBSInput:     viper.GetString("apbs-input"),
		Ligand:        viper.GetString("ligand"),
		Whitespace:    viper.GetBool("whitespace"),
		NeutralN:      viper.GetBool("neutraln"),
		NeutralC:      viper.GetBool("neutralc"),
		DropWater:     viper.GetBool("drop-water"),
		IncludeHeader: viper.GetBool("include-header"),
		PkaMethod:     types.PkaMethod(viper.GetString("titration-state-method")),
		PH:            viper.GetFloat64("with-ph"),
		PDB2PKAOut:    viper.GetString("pdb2pka-out"),
		PDB2PKAResume: viper.GetBool("pdb2pka-resume"),
		PDie:          viper.GetFloat64("pdie"),
		SDie:          viper.GetFloat64("sdie"),
		PairEne:       viper.GetFloat64("pairene"),
	}
}
