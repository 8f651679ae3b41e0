// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdb2pqr/internal/pipeline"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Summarize the charges of a PQR file",
	Long: `Inspect reads a PQR file and reports its atom, residue and chain counts,
the total charge, and every residue whose net charge is not an integer.

With --missing, the heavy atom count is also checked against the repair
limit to report whether the structure could be repaired.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().String("format", "", "output format: yaml or json (default: table)")
	inspectCmd.Flags().Int("missing", 0, "number of missing heavy atoms to check against the repair limit")
	inspectCmd.Flags().Bool("ligand", false, "the structure contains a ligand")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	rep, err := pipeline.Inspect(args[0])
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("missing") {
		log, err := newLogger()
		if err != nil {
			return err
		}
		missing, _ := cmd.Flags().GetInt("missing")
		ligand, _ := cmd.Flags().GetBool("ligand")
		ok, err := pipeline.IsRepairable(rep.HeavyAtoms, missing, ligand, log)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Repairable: %t\n", ok)
	}

	if format != "" {
		if err := encode(os.Stdout, format, rep); err != nil {
			return err
		}
	} else {
		printReport(rep)
	}
	if rep.ChargeError != "" {
		return fmt.Errorf("%s", rep.ChargeError)
	}
	return nil
}

func printReport(rep *pipeline.Report) {
	fmt.Printf("File:          %s\n", rep.Path)
	fmt.Printf("Atoms:         %d (%d heavy)\n", rep.Atoms, rep.HeavyAtoms)
	fmt.Printf("Residues:      %d\n", rep.Residues)
	fmt.Printf("Chains:        %v\n", rep.Chains)
	fmt.Printf("Total charge:  %.4f e\n", rep.TotalCharge)

	if len(rep.NonIntegral) == 0 {
		fmt.Println("All residue charges are integral.")
		return
	}
	fmt.Printf("\n%-20s  %s\n", "Residue", "Charge")
	for _, rc := range rep.NonIntegral {
		fmt.Printf("%-20s  %.4f\n", truncate(rc.Residue, 20), rc.Charge)
	}
}
