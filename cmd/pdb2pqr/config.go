// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdb2pqr/internal/fetch"
	"github.com/pdiddy/pdb2pqr/internal/history"
	"github.com/pdiddy/pdb2pqr/pkg/types"
)

// envKeys maps viper keys such as fetch.base_url or with-ph to
// PDB2PQR_FETCH_BASE_URL and PDB2PQR_WITH_PH.
var envKeys = strings.NewReplacer("-", "_", ".", "_")

func init() {
	viper.SetDefault("fetch.base_url", fetch.DefaultBaseURL)
	viper.SetDefault("fetch.timeout", fetch.DefaultTimeout)
	viper.SetDefault("fetch.max_retries", 0)
	viper.SetDefault("history.dir", defaultHistoryDir())
	viper.SetDefault("history.max_results", 20)
	viper.SetDefault("history.disabled", false)
}

func defaultHistoryDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".pdb2pqr"
	}
	return filepath.Join(dir, "pdb2pqr")
}

// bindFlags binds every flag in fs to the viper key of the same name, or
// to the key in renames when one is given.
func bindFlags(fs *pflag.FlagSet, renames map[string]string) {
	fs.VisitAll(func(f *pflag.Flag) {
		key := f.Name
		if k, ok := renames[f.Name]; ok {
			key = k
		}
		viper.BindPFlag(key, f)
	})
}

func fetchConfig() types.FetchConfig {
	return types.FetchConfig{
		BaseURL:    viper.GetString("fetch.base_url"),
		Timeout:    viper.GetDuration("fetch.timeout"),
		UserAgent:  fetch.DefaultUserAgent,
		MaxRetries: viper.GetInt("fetch.max_retries"),
	}
}

func historyConfig() types.HistoryConfig {
	return types.HistoryConfig{
		Dir:        viper.GetString("history.dir"),
		MaxResults: viper.GetInt("history.max_results"),
		Disabled:   viper.GetBool("history.disabled"),
	}
}

// openHistory returns nil without error when history is disabled.
func openHistory() (*history.Store, error) {
	cfg := historyConfig()
	if cfg.Disabled {
		return nil, nil
	}
	return history.NewStore(cfg)
}
