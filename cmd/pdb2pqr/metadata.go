// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdb2pqr/internal/metadata"
)

var metadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Check and convert package metadata records (PKG-INFO)",
	Long: `Metadata reads Core Metadata records such as PKG-INFO or METADATA files.
Use subcommands to validate records, show them as YAML or JSON, or rewrite
them in canonical field order.`,
}

// --- validate subcommand ---

var metadataValidateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Validate one or more metadata records",
	Long: `Validate checks required fields, the Metadata-Version, the project name,
the PEP 440 version, URLs, the author email, classifiers and Requires-Python.
Every problem is reported; the command fails if any record is invalid.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMetadataValidate,
}

func runMetadataValidate(cmd *cobra.Command, args []string) error {
	failed := 0
	for _, path := range args {
		md, err := metadata.ParseFile(path)
		if err != nil {
			fmt.Fprintf(os.Stdout, "%s: %v\n", path, err)
			failed++
			continue
		}
		err = metadata.Validate(md)
		var verrs metadata.ValidationErrors
		switch {
		case err == nil:
			fmt.Fprintf(os.Stdout, "%s: ok (%s %s)\n", path, md.Name, md.Version)
		case errors.As(err, &verrs):
			failed++
			for _, ve := range verrs {
				fmt.Fprintf(os.Stdout, "%s: %s\n", path, ve.Error())
			}
		default:
			failed++
			fmt.Fprintf(os.Stdout, "%s: %v\n", path, err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d record(s) failed validation", failed)
	}
	return nil
}

// --- show subcommand ---

var metadataShowCmd = &cobra.Command{
	Use:   "show FILE",
	Short: "Print a metadata record as YAML or JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runMetadataShow,
}

func runMetadataShow(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	md, err := metadata.ParseFile(args[0])
	if err != nil {
		return err
	}
	return encode(os.Stdout, format, md)
}

// --- export subcommand ---

var metadataExportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Rewrite a metadata record in canonical field order",
	Long: `Export parses FILE and writes it back with fields in canonical order,
multi-valued fields repeated and the description as a body. The record is
written to --out, or to stdout when --out is empty.`,
	Args: cobra.ExactArgs(1),
	RunE: runMetadataExport,
}

func runMetadataExport(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")
	md, err := metadata.ParseFile(args[0])
	if err != nil {
		return err
	}
	if out == "" {
		_, err = metadata.Write(os.Stdout, md)
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	if _, err := metadata.Write(f, md); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Exported to %s\n", out)
	return nil
}

func init() {
	metadataShowCmd.Flags().String("format", "yaml", "output format: yaml or json")
	metadataExportCmd.Flags().String("out", "", "output path (default: stdout)")

	metadataCmd.AddCommand(metadataValidateCmd)
	metadataCmd.AddCommand(metadataShowCmd)
	metadataCmd.AddCommand(metadataExportCmd)

	rootCmd.AddCommand(metadataCmd)
}
