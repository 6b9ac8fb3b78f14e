package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/toolscout/internal/cache"
	"github.com/pdiddy/toolscout/internal/discover"
	"github.com/pdiddy/toolscout/internal/fetch"
	"github.com/pdiddy/toolscout/pkg/types"
)

const (
	defaultLimit     = 20
	defaultTimeout   = 2 * time.Minute
	defaultUserAgent = "toolscout/0.1"
)

var discoverCmd = &cobra.Command{
	Use:   "discover <query>",
	Short: "Search external sources for tool manifests",
	Long: `Discover fans a free-text query out to three sources concurrently: the
code host's code search, a web search engine, and curated directory lists.
Documents that validate as tool manifests are scored, deduplicated, and
printed ranked by confidence. A source that fails entirely is reported as a
warning and contributes nothing.`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().Int("limit", 0, "maximum number of results (default 20)")
	discoverCmd.Flags().Bool("json", false, "output results as JSON")
	discoverCmd.Flags().Duration("timeout", 0, "overall query timeout (default 2m)")
	discoverCmd.Flags().Bool("no-browser", false, "use plain HTTP for web search instead of a headless browser")
	discoverCmd.Flags().Bool("cache", false, "cache results in a local database")
	discoverCmd.Flags().String("cache-path", "", "cache database file (default toolscout-cache.db)")
	discoverCmd.Flags().String("dedup", "first-seen", "duplicate policy: first-seen or highest-confidence")

	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a search query")
	}
	query := strings.Join(args, " ")

	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		limit = viper.GetInt("max_results")
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	jsonOut, _ := cmd.Flags().GetBool("json")
	noBrowser, _ := cmd.Flags().GetBool("no-browser")
	useCache, _ := cmd.Flags().GetBool("cache")
	cachePath, _ := cmd.Flags().GetString("cache-path")
	dedupName, _ := cmd.Flags().GetString("dedup")

	dedup, err := discover.ParseDedupPolicy(dedupName)
	if err != nil {
		return err
	}

	if cachePath == "" {
		cachePath = viper.GetString("cache.path")
	}

	// Cached entries are keyed by query and limit only, so the cache
	// serves the default dedup policy alone.
	var store *cache.Store
	if useCache && dedup == discover.DedupFirstSeen {
		store, err = cache.NewStore(types.CacheConfig{
			Path: cachePath,
			TTL:  viper.GetDuration("cache.ttl"),
		})
		if err != nil {
			return err
		}
		defer store.Close()

		if out, ok, err := store.Get(query, limit); err == nil && ok {
			return emit(out, jsonOut)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := types.DiscoveryConfig{
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("fetch.timeout"),
				UserAgent: defaultUserAgent,
			},
			Headless: true,
		},
		MaxResults:        limit,
		MaxCandidateLinks: viper.GetInt("max_candidate_links"),
		CodeHostToken:     secretDefault("code-host-token", viper.GetString("code_host_token")),
	}

	codeCfg := cfg.Fetch
	codeCfg.AuthToken = cfg.CodeHostToken
	codeFetcher := fetch.NewClient(codeCfg)
	defer codeFetcher.Close()

	var webFetcher fetch.Fetcher
	if noBrowser {
		webFetcher = fetch.NewClient(cfg.Fetch)
	} else {
		b, err := fetch.NewBrowser(cfg.Fetch)
		if err != nil {
			return fmt.Errorf("starting browser: %w", err)
		}
		webFetcher = b
	}
	defer webFetcher.Close()

	dirFetcher := fetch.NewClient(cfg.Fetch)
	defer dirFetcher.Close()

	sources := []discover.Source{
		&discover.CodeHostSource{Fetcher: codeFetcher, MaxLinks: cfg.MaxCandidateLinks, Warn: os.Stderr},
		&discover.WebSource{Fetcher: webFetcher, MaxLinks: cfg.MaxCandidateLinks, Warn: os.Stderr},
		&discover.DirectorySource{Fetcher: dirFetcher, MaxLinks: cfg.MaxCandidateLinks, Warn: os.Stderr},
	}

	out, err := discover.DiscoverWith(ctx, query, limit, sources, dedup, os.Stderr)
	if err != nil {
		return err
	}

	if store != nil {
		if err := store.Put(query, limit, out); err != nil {
			fmt.Fprintf(os.Stderr, "warning: caching results failed: %v\n", err)
		}
	}

	return emit(out, jsonOut)
}

func emit(out types.RankedResultSet, jsonOut bool) error {
	if jsonOut {
		return discover.FormatJSON(out, os.Stdout)
	}
	discover.FormatTable(out, os.Stdout)
	return nil
}
