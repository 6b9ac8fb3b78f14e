package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/toolscout/internal/catalog"
	"github.com/pdiddy/toolscout/pkg/types"
)

const defaultCatalogPath = "catalog.yaml"

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the local seed catalog of known-good manifests",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List seed manifests, optionally filtered by domain or tag",
	RunE:  runCatalogList,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print one seed manifest as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogShow,
}

func init() {
	catalogCmd.PersistentFlags().String("catalog", "", "catalog fixture file (default catalog.yaml)")
	catalogListCmd.Flags().String("domain", "", "only manifests in this domain")
	catalogListCmd.Flags().String("tag", "", "only manifests carrying this tag")
	catalogListCmd.Flags().Bool("json", false, "output as JSON")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	rootCmd.AddCommand(catalogCmd)
}

func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		path = viper.GetString("catalog.path")
	}
	if path == "" {
		path = defaultCatalogPath
	}
	return catalog.Load(types.CatalogConfig{Path: path})
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	c, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	domain, _ := cmd.Flags().GetString("domain")
	tag, _ := cmd.Flags().GetString("tag")

	entries := c.List()
	if domain != "" {
		entries = c.FilterByDomain(domain)
	}
	if tag != "" {
		var filtered []types.Artifact
		for _, a := range entries {
			for _, tg := range a.Tags {
				if tg == tag {
					filtered = append(filtered, a)
					break
				}
			}
		}
		entries = filtered
	}

	jsonOut, _ := cmd.Flags().GetBool("json")
	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No manifests found.")
		return nil
	}
	for _, a := range entries {
		fmt.Printf("%-30s  %-14s  %.2f  %s\n", a.Name, a.Domain, a.ConfidenceScore, a.Description)
	}
	return nil
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	c, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	a, ok := c.Get(args[0])
	if !ok {
		return fmt.Errorf("no catalog entry named %q", args[0])
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(a)
}
