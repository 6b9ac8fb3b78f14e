// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the toolscout CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/toolscout/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds tokens loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when set, the loaded secret for key
// otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the toolscout CLI.
var rootCmd = &cobra.Command{
	Use:   "toolscout",
	Short: "Discover and validate tool manifests across public sources",
	Long: `toolscout searches code hosting, the general web, and curated directories
for tool manifests (JSON or YAML documents declaring a named set of callable
tools), validates them against a structural contract, scores their
trustworthiness, and prints a ranked list.

Discovery is one subcommand; a local seed catalog of known-good manifests is
browsable through the catalog subcommand.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./toolscout.yaml or ~/.config/toolscout/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("toolscout")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "toolscout"))
		}
	}

	viper.SetEnvPrefix("TOOLSCOUT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
