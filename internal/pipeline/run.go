// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives a structure preparation run from validated
// options to a written PQR file and a history record.
package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdb2pqr/internal/fetch"
	"github.com/pdiddy/pdb2pqr/internal/history"
	"github.com/pdiddy/pdb2pqr/internal/logging"
	"github.com/pdiddy/pdb2pqr/internal/options"
	"github.com/pdiddy/pdb2pqr/internal/pdb"
	"github.com/pdiddy/pdb2pqr/internal/pqr"
	"github.com/pdiddy/pdb2pqr/pkg/types"
)

// Deps carries the collaborators a run needs. Zero values are replaced by
// defaults: a discarding logger, http.DefaultClient, and no history.
type Deps struct {
	Logger  *logrus.Logger
	Client  *http.Client
	Fetch   types.FetchConfig
	History *history.Store
	Version string

	// Now returns the current time; tests pin it.
	Now func() time.Time
}

func (d *Deps) fill() {
	if d.Logger == nil {
		d.Logger = logging.Discard()
	}
	if d.Client == nil {
		d.Client = http.DefaultClient
	}
	if d.Version == "" {
		d.Version = "dev"
	}
	if d.Now == nil {
		d.Now = time.Now
	}
}

// Run validates opts, loads the structure, and writes the PQR output. The
// returned Run summarizes the outcome and is also stored in the history
// when deps.History is set, whether or not the run succeeded.
func Run(ctx context.Context, opts types.RunOptions, deps Deps) (types.Run, error) {
	deps.fill()
	log := deps.Logger

	run := types.Run{
		ID:        uuid.New().String(),
		Input:     opts.InputPath,
		Output:    opts.OutputPQR,
		StartedAt: deps.Now(),
	}
	warn := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		log.Warn(msg)
		run.Warnings = append(run.Warnings, msg)
	}

	err := execute(ctx, &opts, deps, &run, warn)

	run.Options = opts
	run.FF = opts.FF
	run.FinishedAt = deps.Now()
	run.Status = types.RunSucceeded
	if err != nil {
		run.Status = types.RunFailed
		run.Error = err.Error()
	}

	if deps.History != nil {
		if herr := deps.History.Record(ctx, run); herr != nil {
			log.Warnf("Unable to record run history: %v", herr)
		}
	}
	return run, err
}

func execute(ctx context.Context, opts *types.RunOptions, deps Deps, run *types.Run, warn func(string, ...any)) error {
	log := deps.Logger

	log.Debugf("Invoked with arguments: %+v", *opts)
	for _, line := range options.SplashLines(deps.Version) {
		log.Info(line)
	}

	log.Info("Checking and transforming input arguments.")
	*opts = options.Transform(*opts)
	if err := options.CheckFiles(*opts); err != nil {
		return err
	}
	if err := options.CheckOptions(*opts); err != nil {
		return err
	}
	if err := options.CheckSupported(*opts); err != nil {
		return err
	}
	if opts.OutputPQR == "" {
		return fmt.Errorf("%w: output path is required", options.ErrInvalidOption)
	}

	log.Infof("Loading molecule: %s", opts.InputPath)
	rc, src, err := fetch.Resolve(ctx, deps.Client, opts.InputPath, deps.Fetch)
	if err != nil {
		return err
	}
	records, err := pdb.Read(rc)
	rc.Close()
	if err != nil {
		return fmt.Errorf("reading %s: %w", src.Name, err)
	}

	records, models := pdb.FirstModel(records)
	if models > 1 {
		warn("Multiple models found; using model 1 of %d.", models)
	}

	if opts.DropWater {
		log.Info("Dropping water from structure.")
		records, run.WaterDropped = pdb.DropWater(records)
	}

	log.Info("Setting up molecule.")
	residues := pdb.Residues(pdb.Atoms(records))
	for _, occ := range pdb.MultipleOccupancies(residues) {
		for _, a := range occ.Atoms {
			warn("Multiple occupancies found: %s in %s.", a.Name, occ.Residue)
		}
		warn("Multiple occupancies found in %s. At least one of the instances is being ignored.", occ.Residue)
	}
	atoms := pdb.ResolveAlternates(residues)

	run.Atoms, run.Residues = len(atoms), len(residues)
	log.Infof("Created biomolecule object with %d residues and %d atoms.", len(residues), len(atoms))
	if len(atoms) == 0 {
		return fmt.Errorf("no ATOM or HETATM records found in %s", src.Name)
	}

	log.Info("Arguments specified cleaning only; skipping remaining steps.")
	var header []string
	if opts.IncludeHeader {
		header = pqr.Header(pqr.HeaderInfo{Version: deps.Version, OldHeader: records})
	}
	return writeOutput(opts, header, atoms)
}

func writeOutput(opts *types.RunOptions, header []string, atoms []*types.Atom) error {
	f, err := os.Create(opts.OutputPQR)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	w := pqr.NewWriter(f, pqr.WriterOptions{KeepChain: opts.KeepChain, Whitespace: opts.Whitespace})
	if err := w.Write(header, atoms); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}
