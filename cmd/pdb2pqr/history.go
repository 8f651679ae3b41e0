// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdb2pqr/internal/history"
	"github.com/pdiddy/pdb2pqr/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Review recorded runs (list, show, export)",
	Long: `History reads the local SQLite database where every run is recorded
with its options, counts, warnings and outcome.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := historyStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(context.Background(), historyQuery(cmd))
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-9s  %-30s  %6s  %s\n",
		"ID", "Started", "Status", "Input", "Atoms", "Warnings")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 120))
	for _, r := range runs {
		fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-9s  %-30s  %6d  %d\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Status,
			truncate(r.Input, 30), r.Atoms, len(r.Warnings))
	}
	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
	return nil
}

// --- show subcommand ---

var historyShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print one run as YAML or JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	store, err := historyStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}
	return encode(os.Stdout, format, run)
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs to YAML or JSON",
	Long: `Export writes the recorded runs (or a filtered subset) to --out, or to
export.yaml or export.json in the history directory.`,
	RunE: runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	store, err := historyStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := historyQuery(cmd)
	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(context.Background(), out, opts)
	case "json":
		path, err = store.ExportJSON(context.Background(), out, opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Exported to %s\n", path)
	return nil
}

// --- shared helpers ---

func historyStore(cmd *cobra.Command) (*history.Store, error) {
	bindFlags(cmd.Flags(), map[string]string{
		"history-dir": "history.dir",
		"max-results": "history.max_results",
	})
	cfg := historyConfig()
	return history.NewStore(cfg)
}

func historyQuery(cmd *cobra.Command) history.QueryOptions {
	input, _ := cmd.Flags().GetString("input")
	status, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")
	return history.QueryOptions{
		Input:      input,
		Status:     types.RunStatus(status),
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	historyCmd.PersistentFlags().String("history-dir", "", "directory holding the history database")
	historyCmd.PersistentFlags().Int("max-results", 20, "default number of runs listed")

	for _, c := range []*cobra.Command{historyListCmd, historyExportCmd} {
		c.Flags().String("input", "", "filter by input path substring")
		c.Flags().String("status", "", "filter by status: succeeded or failed")
		c.Flags().Int("limit", 0, "maximum runs (0 = use default; all for export)")
	}
	historyShowCmd.Flags().String("format", "yaml", "output format: yaml or json")
	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	historyExportCmd.Flags().String("out", "", "output path (default: export.<format> in the history directory)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
