// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdb2pqr/internal/history"
	"github.com/pdiddy/pdb2pqr/internal/logging"
	"github.com/pdiddy/pdb2pqr/internal/options"
	"github.com/pdiddy/pdb2pqr/internal/pdb"
	"github.com/pdiddy/pdb2pqr/pkg/types"
)

func atomLine(serial int, name, alt, res, chain string, seq int, x, y, z float64) string {
	return fmt.Sprintf("%-6s%5d %-4s%1s%3s %1s%4d%1s   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s",
		"ATOM", serial, name, alt, res, chain, seq, "", x, y, z, 1.0, 0.0, "")
}

func writeStructure(t *testing.T) string {
	t.Helper()
	lines := []string{
		"HEADER    HYDROLASE                               01-JAN-00   1ABC",
		"REMARK   2 RESOLUTION.    1.80 ANGSTROMS.",
		atomLine(1, " N", "", "ALA", "A", 1, 11.104, 6.134, -6.504),
		atomLine(2, " CA", "", "ALA", "A", 1, 11.639, 6.071, -5.147),
		atomLine(3, " H", "", "ALA", "A", 1, 10.500, 6.000, -6.900),
		atomLine(4, " N", "A", "SER", "A", 2, 12.000, 7.000, -4.000),
		atomLine(5, " N", "B", "SER", "A", 2, 12.100, 7.100, -4.100),
		"TER       6      SER A   2",
		strings.Replace(atomLine(7, " O", "", "HOH", "A", 101, 1, 2, 3), "ATOM  ", "HETATM", 1),
		"END",
	}
	path := filepath.Join(t.TempDir(), "1abc.pdb")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func cleanOptions(in, out string) types.RunOptions {
	opts := options.Defaults()
	opts.InputPath = in
	opts.OutputPQR = out
	opts.Clean = true
	return opts
}

func testDeps(t *testing.T, logs *bytes.Buffer) Deps {
	t.Helper()
	logger, err := logging.New(logs, "DEBUG")
	require.NoError(t, err)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return Deps{
		Logger:  logger,
		Version: "test",
		Now: func() time.Time {
			now = now.Add(time.Second)
			return now
		},
	}
}

func TestRunClean(t *testing.T) {
	in := writeStructure(t)
	out := filepath.Join(t.TempDir(), "out.pqr")

	opts := cleanOptions(in, out)
	opts.DropWater = true
	opts.IncludeHeader = true
	opts.KeepChain = true

	var logs bytes.Buffer
	run, err := Run(context.Background(), opts, testDeps(t, &logs))
	require.NoError(t, err)

	assert.Equal(t, types.RunSucceeded, run.Status)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, 4, run.Atoms)
	assert.Equal(t, 2, run.Residues)
	assert.Equal(t, 1, run.WaterDropped)
	assert.False(t, run.Options.Debump, "clean runs never debump")
	assert.Equal(t, []string{
		"Multiple occupancies found: N in SER A 2.",
		"Multiple occupancies found: N in SER A 2.",
		"Multiple occupancies found in SER A 2. At least one of the instances is being ignored.",
	}, run.Warnings)
	assert.True(t, run.FinishedAt.After(run.StartedAt))

	text := logs.String()
	assert.Contains(t, text, "PDB2PQR vtest: biomolecular structure conversion software.")
	assert.Contains(t, text, "Created biomolecule object with 2 residues and 4 atoms.")
	assert.Equal(t, 1, strings.Count(text, "Multiple occupancies found: N in SER A 2."))
	assert.NotContains(t, text, "Multiple models found")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	assert.Equal(t, "REMARK   1 PQR file generated by PDB2PQR (Version test)", lines[0])
	assert.Contains(t, lines, "HEADER    HYDROLASE                               01-JAN-00   1ABC")
	assert.Contains(t, lines, "ATOM      1  N   ALA A   1      11.104   6.134  -6.504  0.0000 0.0000")
	assert.Equal(t, []string{"TER", "END"}, lines[len(lines)-2:])
	assert.NotContains(t, string(data), "HOH")

	atoms, err := pdb.ReadPQR(strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)
	require.Len(t, atoms, 4)

	// Only the first SER N instance (altLoc A, serial 4) is written.
	written := 0
	for _, a := range atoms {
		if a.ResName == "SER" && a.Name == "N" {
			written++
			assert.Equal(t, 4, a.Serial)
			assert.InDelta(t, 12.0, a.X, 1e-9)
		}
	}
	assert.Equal(t, 1, written)
}

func TestRunFirstModelOnly(t *testing.T) {
	lines := []string{
		"MODEL        1",
		atomLine(1, " N", "", "ALA", "A", 1, 1, 1, 1),
		"ENDMDL",
		"MODEL        2",
		atomLine(1, " N", "", "ALA", "A", 1, 2, 2, 2),
		"ENDMDL",
		"END",
	}
	in := filepath.Join(t.TempDir(), "nmr.pdb")
	require.NoError(t, os.WriteFile(in, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	out := filepath.Join(t.TempDir(), "nmr.pqr")

	run, err := Run(context.Background(), cleanOptions(in, out), Deps{})
	require.NoError(t, err)
	assert.Equal(t, 1, run.Atoms)
	assert.Equal(t, []string{"Multiple models found; using model 1 of 2."}, run.Warnings)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "ATOM "))
	assert.Contains(t, string(data), "   1.000   1.000   1.000")
}

func TestRunWithoutHeader(t *testing.T) {
	in := writeStructure(t)
	out := filepath.Join(t.TempDir(), "out.pqr")

	_, err := Run(context.Background(), cleanOptions(in, out), Deps{})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "ATOM      1  N   ALA     1"))
	assert.Contains(t, string(data), "HOH")
}

func TestRunFailures(t *testing.T) {
	in := writeStructure(t)
	dir := t.TempDir()

	tests := []struct {
		name   string
		mutate func(*types.RunOptions)
		want   error
	}{
		{
			name:   "assignment not supported",
			mutate: func(o *types.RunOptions) { o.Clean = false },
			want:   options.ErrNotSupported,
		},
		{
			name:   "invalid pH",
			mutate: func(o *types.RunOptions) { o.PH = 15 },
			want:   options.ErrInvalidOption,
		},
		{
			name:   "missing output",
			mutate: func(o *types.RunOptions) { o.OutputPQR = "" },
			want:   options.ErrInvalidOption,
		},
		{
			name:   "missing input",
			mutate: func(o *types.RunOptions) { o.InputPath = filepath.Join(dir, "nope.pdb") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := cleanOptions(in, filepath.Join(dir, "out.pqr"))
			tt.mutate(&opts)

			run, err := Run(context.Background(), opts, Deps{})
			require.Error(t, err)
			if tt.want != nil {
				assert.True(t, errors.Is(err, tt.want), "err = %v", err)
			}
			assert.Equal(t, types.RunFailed, run.Status)
			assert.Equal(t, err.Error(), run.Error)
		})
	}
}

func TestRunRecordsHistory(t *testing.T) {
	store, err := history.NewStore(types.HistoryConfig{Dir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	in := writeStructure(t)
	deps := Deps{History: store}

	ok, err := Run(context.Background(), cleanOptions(in, filepath.Join(t.TempDir(), "a.pqr")), deps)
	require.NoError(t, err)

	bad := cleanOptions(in, filepath.Join(t.TempDir(), "b.pqr"))
	bad.Clean = false
	failed, err := Run(context.Background(), bad, deps)
	require.Error(t, err)

	got, err := store.Get(context.Background(), ok.ID)
	require.NoError(t, err)
	assert.Equal(t, types.RunSucceeded, got.Status)
	assert.Equal(t, 5, got.Atoms)

	got, err = store.Get(context.Background(), failed.ID)
	require.NoError(t, err)
	assert.Equal(t, types.RunFailed, got.Status)
	assert.Contains(t, got.Error, "not supported")
}

func TestInspect(t *testing.T) {
	pqrText := strings.Join([]string{
		"REMARK   1 PQR file generated by PDB2PQR",
		"ATOM      1  N   LYS A   1      11.104   6.134  -6.504  0.6000 1.8240",
		"ATOM      2  CA  LYS A   1      11.639   6.071  -5.147  0.4000 1.9080",
		"ATOM      3  HA  LYS A   1      10.500   6.000  -6.900  0.0000 1.1000",
		"ATOM      4  NE2 HIS B   2      12.000   7.000  -4.000  0.2500 1.8240",
		"TER",
		"END",
	}, "\n") + "\n"

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(pqrText))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	path := filepath.Join(t.TempDir(), "out.pqr.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	rep, err := Inspect(path)
	require.NoError(t, err)
	assert.Equal(t, 4, rep.Atoms)
	assert.Equal(t, 3, rep.HeavyAtoms)
	assert.Equal(t, 2, rep.Residues)
	assert.Equal(t, []string{"A", "B"}, rep.Chains)
	assert.InDelta(t, 1.25, rep.TotalCharge, 1e-9)
	require.Len(t, rep.NonIntegral, 1)
	assert.Equal(t, "HIS B 2", rep.NonIntegral[0].Residue)
	assert.Equal(t, "residue HIS 2 charge is non-integer: 0.2500", rep.ChargeError)

	_, err = Inspect(filepath.Join(t.TempDir(), "missing.pqr"))
	assert.Error(t, err)
}

func TestIsRepairable(t *testing.T) {
	tests := []struct {
		name      string
		heavy     int
		missing   int
		ligand    bool
		want      bool
		wantErr   bool
		wantInLog string
	}{
		{name: "no heavy atoms", wantErr: true},
		{name: "ligand only", ligand: true, wantInLog: "ligand is present"},
		{name: "clean", heavy: 100, wantInLog: "No repair needed"},
		{name: "within limit", heavy: 100, missing: 10, want: true},
		{name: "too many missing", heavy: 100, missing: 11, wantInLog: "missing too many (11 out of 100, 0.11)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			logger, err := logging.New(&logs, "DEBUG")
			require.NoError(t, err)

			got, err := IsRepairable(tt.heavy, tt.missing, tt.ligand, logger)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoHeavyAtoms)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, logs.String(), tt.wantInLog)
		})
	}
}
