// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/toolscout/internal/fetch"
	"github.com/pdiddy/toolscout/internal/manifest"
	"github.com/pdiddy/toolscout/internal/urlutil"
	"github.com/pdiddy/toolscout/pkg/types"
)

// defaultMaxLinks bounds how many candidate links one search page yields.
const defaultMaxLinks = 20

// candidateLink pairs the user-facing URL of a candidate with the URL its
// raw content is fetched from. The two differ on the code host, where a
// view link must be rewritten to a raw-content link.
type candidateLink struct {
	viewURL string
	rawURL  string
}

// newCandidateLink derives the raw-content URL for u.
func newCandidateLink(u string) candidateLink {
	return candidateLink{viewURL: u, rawURL: urlutil.RawContentURL(u)}
}

// collect fetches each candidate link sequentially and keeps documents
// whose content passes manifest validation, up to limit. Individual fetch
// or validation failures skip the link, never fail the batch. Links are
// fetched sequentially to bound concurrent outbound requests.
func collect(ctx context.Context, f fetch.Fetcher, links []candidateLink, platform types.SourcePlatform, limit int, warn io.Writer) []types.CandidateDocument {
	var docs []types.CandidateDocument
	seen := make(map[string]struct{})

	for _, link := range links {
		if len(docs) >= limit {
			break
		}
		if _, dup := seen[link.viewURL]; dup {
			continue
		}
		seen[link.viewURL] = struct{}{}

		raw, err := f.FetchRaw(ctx, link.rawURL)
		if err != nil {
			warnf(warn, "skipping %s: %v", link.rawURL, err)
			continue
		}

		doc := types.CandidateDocument{
			SourceURL:      link.viewURL,
			RawContent:     raw,
			SourcePlatform: platform,
			RepositoryHint: urlutil.RepositoryFromURL(link.viewURL),
		}
		if manifest.Parse(doc) == nil {
			continue
		}
		docs = append(docs, doc)
	}
	return docs
}

// warnf writes a diagnostic line, tolerating a nil writer.
func warnf(w io.Writer, format string, args ...any) {
	if w == nil {
		return
	}
	fmt.Fprintf(w, "warning: "+format+"\n", args...)
}
