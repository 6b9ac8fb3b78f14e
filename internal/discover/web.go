// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/pdiddy/toolscout/internal/fetch"
	"github.com/pdiddy/toolscout/internal/urlutil"
	"github.com/pdiddy/toolscout/pkg/types"
)

// webSearchBase is the general web search endpoint. Declared as a var so
// tests can substitute an httptest server.
var webSearchBase = "https://html.duckduckgo.com/html/"

// WebSource searches the general web for manifest files through a search
// engine's HTML interface. Search pages are JavaScript-heavy, so this
// source is normally wired with the browser fetcher.
type WebSource struct {
	Fetcher  fetch.Fetcher
	MaxLinks int
	Warn     io.Writer
}

// Name returns the source identifier.
func (s *WebSource) Name() string { return "general_web" }

// Platform returns the source platform.
func (s *WebSource) Platform() types.SourcePlatform { return types.PlatformGeneralWeb }

// Search queries the search engine, keeps result links that plausibly
// point at a manifest file, and returns the candidates whose raw content
// validates.
func (s *WebSource) Search(ctx context.Context, query string, limit int) ([]types.CandidateDocument, error) {
	searchURL := fmt.Sprintf("%s?q=%s", webSearchBase, url.QueryEscape(query+" mcp json"))

	page, err := s.Fetcher.FetchPage(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("web search: %w", err)
	}

	maxLinks := s.MaxLinks
	if maxLinks <= 0 {
		maxLinks = defaultMaxLinks
	}

	var links []candidateLink
	for _, l := range page.Links {
		if len(links) >= maxLinks {
			break
		}
		if urlutil.SameHost(l.URL, searchURL) {
			// Pagination and settings links on the results page itself.
			continue
		}
		if urlutil.LooksLikeManifestLink(l.URL) {
			links = append(links, newCandidateLink(l.URL))
		}
	}

	return collect(ctx, s.Fetcher, links, types.PlatformGeneralWeb, limit, s.Warn), nil
}
