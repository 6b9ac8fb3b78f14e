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

// codeHostSearchBase is the code-host search endpoint. Declared as a var so
// tests can substitute an httptest server.
var codeHostSearchBase = "https://github.com/search"

// CodeHostSource searches the code-hosting platform's code search for
// manifest files.
type CodeHostSource struct {
	Fetcher  fetch.Fetcher
	MaxLinks int
	Warn     io.Writer
}

// Name returns the source identifier.
func (s *CodeHostSource) Name() string { return "code_host" }

// Platform returns the source platform.
func (s *CodeHostSource) Platform() types.SourcePlatform { return types.PlatformCodeHost }

// Search runs a code search per manifest filename pattern, follows file
// view links, and returns the candidates whose raw content validates. It
// fails only when every search page fails.
func (s *CodeHostSource) Search(ctx context.Context, query string, limit int) ([]types.CandidateDocument, error) {
	searchURLs := []string{
		fmt.Sprintf("%s?q=%s+filename%%3A.mcp.json&type=code", codeHostSearchBase, url.QueryEscape(query)),
		fmt.Sprintf("%s?q=%s+filename%%3A.mcp.yaml&type=code", codeHostSearchBase, url.QueryEscape(query)),
	}

	maxLinks := s.MaxLinks
	if maxLinks <= 0 {
		maxLinks = defaultMaxLinks
	}

	var docs []types.CandidateDocument
	var firstErr error
	fetched := 0

	for _, searchURL := range searchURLs {
		if len(docs) >= limit {
			break
		}

		page, err := s.Fetcher.FetchPage(ctx, searchURL)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			warnf(s.Warn, "code host search page failed: %v", err)
			continue
		}
		fetched++

		var links []candidateLink
		for _, l := range page.Links {
			if len(links) >= maxLinks {
				break
			}
			if urlutil.IsViewLink(l.URL) || (urlutil.IsCodeHost(l.URL) && urlutil.MatchesManifestFilename(l.URL)) {
				links = append(links, newCandidateLink(l.URL))
			}
		}

		docs = append(docs, collect(ctx, s.Fetcher, links, types.PlatformCodeHost, limit-len(docs), s.Warn)...)
	}

	if fetched == 0 {
		return nil, fmt.Errorf("code host search: %w", firstErr)
	}
	return docs, nil
}
