package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of pdb2pqr",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pdb2pqr %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
