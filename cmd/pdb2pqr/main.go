// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdb2pqr CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdb2pqr/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pdb2pqr CLI.
var rootCmd = &cobra.Command{
	Use:   "pdb2pqr",
	Short: "Biomolecular structure conversion software",
	Long: `pdb2pqr reads PDB structures and writes PQR files, where the occupancy
and temperature factor columns carry per-atom charge and radius.

Use run to convert a structure, inspect to summarize the charges of a PQR
file, metadata to check package metadata records, and history to review
earlier runs.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdb2pqr.yaml or ~/.config/pdb2pqr/pdb2pqr.yaml)")
	rootCmd.PersistentFlags().String("log-level", "INFO", "logging level: DEBUG, INFO, WARNING, ERROR, CRITICAL")
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdb2pqr")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdb2pqr"))
		}
	}

	viper.SetEnvPrefix("PDB2PQR")
	viper.SetEnvKeyReplacer(envKeys)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the stderr logger at the configured level.
func newLogger() (*logrus.Logger, error) {
	return logging.New(os.Stderr, viper.GetString("log-level"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
