// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover turns a free-text query into a ranked list of validated
// tool manifests. Three source adapters (code-hosting search, general web
// search, curated directories) run concurrently; their outputs are merged,
// deduplicated by source URL, sorted by confidence, and truncated.
package discover

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/pdiddy/toolscout/internal/manifest"
	"github.com/pdiddy/toolscout/pkg/types"
)

// Source searches one external source class for candidate manifest
// documents. Search returns at most limit candidates and must not fail for
// data-dependent reasons (no results, individual pages broken). An error
// means the whole source could not run.
type Source interface {
	Name() string
	Platform() types.SourcePlatform
	Search(ctx context.Context, query string, limit int) ([]types.CandidateDocument, error)
}

// DedupPolicy names the rule for which duplicate of a source URL survives
// merging.
type DedupPolicy int

const (
	// DedupFirstSeen keeps the artifact from the earliest source in
	// registration order (code host, general web, curated). A later
	// duplicate is dropped even when its confidence is higher.
	DedupFirstSeen DedupPolicy = iota

	// DedupHighestConfidence keeps whichever duplicate scores highest.
	DedupHighestConfidence
)

// ParseDedupPolicy maps a policy name from a flag or config file to its
// DedupPolicy value.
func ParseDedupPolicy(name string) (DedupPolicy, error) {
	switch name {
	case "first-seen":
		return DedupFirstSeen, nil
	case "highest-confidence":
		return DedupHighestConfidence, nil
	}
	return 0, fmt.Errorf("unknown dedup policy %q (want first-seen or highest-confidence)", name)
}

// Discover fans the query out to all sources concurrently, parses and
// validates what they return, merges, dedupes under DedupFirstSeen, ranks,
// and truncates to limit. A source that fails entirely contributes nothing
// and is recorded in SourceErrors; only an empty source list is an error.
// limit <= 0 returns an empty set without touching the network.
func Discover(ctx context.Context, query string, limit int, sources []Source, w io.Writer) (types.RankedResultSet, error) {
	return DiscoverWith(ctx, query, limit, sources, DedupFirstSeen, w)
}

// DiscoverWith is Discover with the dedup policy chosen by the caller.
func DiscoverWith(ctx context.Context, query string, limit int, sources []Source, policy DedupPolicy, w io.Writer) (types.RankedResultSet, error) {
	if strings.TrimSpace(query) == "" {
		return types.RankedResultSet{}, fmt.Errorf("query is empty")
	}
	if len(sources) == 0 {
		return types.RankedResultSet{}, fmt.Errorf("no discovery sources configured")
	}
	if limit <= 0 {
		return types.RankedResultSet{Query: query}, nil
	}

	// Each source gets an equal share of the limit.
	share := (limit + len(sources) - 1) / len(sources)

	// Results land in a slot per source so the merge order is the
	// registration order, not the completion order.
	slots := make([][]types.CandidateDocument, len(sources))
	errs := make([]error, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			slots[i], errs[i] = src.Search(ctx, query, share)
		}(i, src)
	}
	wg.Wait()

	out := types.RankedResultSet{Query: query}
	var all []types.Artifact
	for i, src := range sources {
		if errs[i] != nil {
			msg := fmt.Sprintf("%s: %v", src.Name(), errs[i])
			out.SourceErrors = append(out.SourceErrors, msg)
			fmt.Fprintf(w, "warning: source %s failed: %v\n", src.Name(), errs[i])
			continue
		}
		// The aggregator owns platform attribution, whatever the
		// adapter put on the document.
		for j := range slots[i] {
			slots[i][j].SourcePlatform = src.Platform()
		}
		all = append(all, parseDocuments(slots[i])...)
	}

	results, removed := deduplicate(all, policy)

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ConfidenceScore > results[j].ConfidenceScore
	})

	if len(results) > limit {
		results = results[:limit]
	}

	out.Results = results
	out.DupsRemoved = removed
	return out, nil
}

// parseDocuments validates each candidate and keeps the artifacts. A
// candidate that fails validation produces nothing.
func parseDocuments(docs []types.CandidateDocument) []types.Artifact {
	var artifacts []types.Artifact
	for _, doc := range docs {
		if a := manifest.Parse(doc); a != nil {
			artifacts = append(artifacts, *a)
		}
	}
	return artifacts
}

// deduplicate merges artifacts that share a source URL according to the
// given policy.
func deduplicate(artifacts []types.Artifact, p DedupPolicy) ([]types.Artifact, int) {
	seen := make(map[string]int) // source URL -> index in deduped
	var deduped []types.Artifact
	removed := 0

	for _, a := range artifacts {
		if idx, dup := seen[a.SourceURL]; dup {
			if p == DedupHighestConfidence && a.ConfidenceScore > deduped[idx].ConfidenceScore {
				deduped[idx] = a
			}
			removed++
			continue
		}
		seen[a.SourceURL] = len(deduped)
		deduped = append(deduped, a)
	}
	return deduped, removed
}

// FormatTable writes the result set as a human-readable table to w.
func FormatTable(out types.RankedResultSet, w io.Writer) {
	if len(out.Results) == 0 {
		fmt.Fprintln(w, "No manifests found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-30s  %-14s  %-6s  %-5s  %s\n",
		"Rank", "Name", "Domain", "Score", "Tools", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, a := range out.Results {
		name := a.Name
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-30s  %-14s  %-6.2f  %-5d  %s\n",
			i+1, name, a.Domain, a.ConfidenceScore, len(a.Tools), a.SourceURL)
	}

	fmt.Fprintf(w, "\n%d manifests", len(out.Results))
	if out.DupsRemoved > 0 {
		fmt.Fprintf(w, " (%d duplicates removed)", out.DupsRemoved)
	}
	fmt.Fprintln(w)
}

// FormatJSON writes the result set as indented JSON to w.
func FormatJSON(out types.RankedResultSet, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
