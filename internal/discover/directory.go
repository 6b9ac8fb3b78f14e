// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/pdiddy/toolscout/internal/fetch"
	"github.com/pdiddy/toolscout/internal/urlutil"
	"github.com/pdiddy/toolscout/pkg/types"
)

// directoryURLs are the curated lists harvested by default: raw markdown
// READMEs of awesome-style collections plus code-host topic pages.
var directoryURLs = []string{
	"https://raw.githubusercontent.com/awesome-lists/awesome-mcp/main/README.md",
	"https://raw.githubusercontent.com/modelcontextprotocol/awesome-mcp/main/README.md",
	"https://github.com/topics/mcp",
	"https://github.com/topics/model-context-protocol",
}

// markdownLinkRx matches markdown links: [title](url).
var markdownLinkRx = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// DirectorySource harvests candidate links from curated directory lists.
// Unlike the search-driven sources it does not query the lists; it walks
// their entries and lets validation decide what survives.
type DirectorySource struct {
	Fetcher  fetch.Fetcher
	URLs     []string
	MaxLinks int
	Warn     io.Writer
}

// Name returns the source identifier.
func (s *DirectorySource) Name() string { return "curated" }

// Platform returns the source platform.
func (s *DirectorySource) Platform() types.SourcePlatform { return types.PlatformCurated }

// Search harvests code-host links from each configured list and returns
// the candidates whose raw content validates. It fails only when every
// list fails.
func (s *DirectorySource) Search(ctx context.Context, query string, limit int) ([]types.CandidateDocument, error) {
	listURLs := s.URLs
	if len(listURLs) == 0 {
		listURLs = directoryURLs
	}
	maxLinks := s.MaxLinks
	if maxLinks <= 0 {
		maxLinks = defaultMaxLinks
	}

	var docs []types.CandidateDocument
	var firstErr error
	fetched := 0

	for _, listURL := range listURLs {
		if len(docs) >= limit {
			break
		}

		links, err := s.harvest(ctx, listURL, maxLinks)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			warnf(s.Warn, "curated list %s failed: %v", listURL, err)
			continue
		}
		fetched++

		docs = append(docs, collect(ctx, s.Fetcher, links, types.PlatformCurated, limit-len(docs), s.Warn)...)
	}

	if fetched == 0 {
		return nil, fmt.Errorf("curated lists: %w", firstErr)
	}
	return docs, nil
}

// harvest extracts candidate links from one list. Markdown lists are
// fetched raw and scanned for [title](url) entries; topic pages are
// fetched as pages and their code-host anchors kept.
func (s *DirectorySource) harvest(ctx context.Context, listURL string, maxLinks int) ([]candidateLink, error) {
	var links []candidateLink

	if strings.HasSuffix(listURL, ".md") {
		raw, err := s.Fetcher.FetchRaw(ctx, listURL)
		if err != nil {
			return nil, err
		}
		for _, m := range markdownLinkRx.FindAllStringSubmatch(raw, -1) {
			if len(links) >= maxLinks {
				break
			}
			if urlutil.IsCodeHost(m[2]) {
				links = append(links, newCandidateLink(m[2]))
			}
		}
		return links, nil
	}

	page, err := s.Fetcher.FetchPage(ctx, listURL)
	if err != nil {
		return nil, err
	}
	for _, l := range page.Links {
		if len(links) >= maxLinks {
			break
		}
		// Repository-shaped links only.
		if urlutil.IsCodeHost(l.URL) && urlutil.RepositoryFromURL(l.URL) != "" {
			links = append(links, newCandidateLink(l.URL))
		}
	}
	return links, nil
}
