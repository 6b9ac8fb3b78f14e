// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package urlutil provides URL classification and rewriting helpers shared
// by the source adapters: code-host view-to-raw rewriting, manifest filename
// detection, and repository slug extraction.
package urlutil

import (
	"net/url"
	"regexp"
	"strings"
)

// codeHostDomain is the code-hosting platform the pipeline recognizes for
// repository extraction and confidence scoring.
const codeHostDomain = "github.com"

var (
	repoRx = regexp.MustCompile(`github\.com/([^/]+/[^/]+)`)

	// manifestFileRx matches filenames that conventionally hold tool
	// manifests.
	manifestFileRx = []*regexp.Regexp{
		regexp.MustCompile(`\.mcp\.json$`),
		regexp.MustCompile(`\.mcp\.ya?ml$`),
		regexp.MustCompile(`mcp[-_]?schema\.json$`),
		regexp.MustCompile(`mcp[-_]?config\.json$`),
		regexp.MustCompile(`tools\.json$`),
		regexp.MustCompile(`schema\.json$`),
	}
)

// IsCodeHost reports whether u points at the code-hosting platform.
func IsCodeHost(u string) bool {
	return strings.Contains(u, codeHostDomain)
}

// HasManifestMarker reports whether u contains the artifact-file marker used
// by the confidence heuristic.
func HasManifestMarker(u string) bool {
	return strings.Contains(u, ".mcp.")
}

// RawContentURL converts a code-host "view" link to its raw-content
// equivalent by rewriting the /blob/ path segment. URLs without a /blob/
// segment are returned unchanged.
func RawContentURL(u string) string {
	return strings.Replace(u, "/blob/", "/raw/", 1)
}

// IsViewLink reports whether u is a code-host file view link that needs
// RawContentURL before fetching.
func IsViewLink(u string) bool {
	return strings.Contains(u, "/blob/")
}

// MatchesManifestFilename reports whether the final path segment of u looks
// like a manifest file.
func MatchesManifestFilename(u string) bool {
	name := u
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.IndexAny(name, "?#"); idx >= 0 {
		name = name[:idx]
	}
	for _, rx := range manifestFileRx {
		if rx.MatchString(name) {
			return true
		}
	}
	return false
}

// LooksLikeManifestLink reports whether u is worth fetching as a candidate:
// it ends in a structured-data extension or mentions manifests at all. Used
// by the general-web adapter to filter search result links.
func LooksLikeManifestLink(u string) bool {
	lower := strings.ToLower(u)
	for _, marker := range []string{".json", ".yaml", ".yml", "mcp"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// RepositoryFromURL extracts the owner/repo slug from a code-host URL, or
// returns "" when none is present.
func RepositoryFromURL(u string) string {
	m := repoRx.FindStringSubmatch(u)
	if m == nil {
		return ""
	}
	repo := m[1]
	// Trim trailing path noise left by greedy match on query strings.
	if idx := strings.IndexAny(repo, "?#"); idx >= 0 {
		repo = repo[:idx]
	}
	return repo
}

// SameHost reports whether two URLs share a hostname, ignoring a leading
// "www." prefix. Used to drop a results page's links to itself.
func SameHost(a, b string) bool {
	ua, errA := url.Parse(a)
	ub, errB := url.Parse(b)
	if errA != nil || errB != nil {
		return false
	}
	return strings.TrimPrefix(ua.Hostname(), "www.") == strings.TrimPrefix(ub.Hostname(), "www.")
}
