// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"strings"

	"github.com/pdiddy/toolscout/internal/urlutil"
)

// Metadata holds the derived classification for a validated manifest.
type Metadata struct {
	Domain     string
	Tags       []string
	Confidence float64
}

// maxTags caps the tag set; excess tags past the cap are dropped in
// insertion order.
const maxTags = 10

// domainTable maps domains to their trigger keywords. Order matters: the
// first domain with a keyword hit wins, so the table order is part of the
// classification contract.
var domainTable = []struct {
	domain   string
	keywords []string
}{
	{"weather", []string{"weather", "climate", "forecast", "temperature"}},
	{"finance", []string{"finance", "trading", "stock", "crypto", "payment"}},
	{"travel", []string{"travel", "booking", "hotel", "flight", "airbnb"}},
	{"productivity", []string{"calendar", "task", "note", "email", "schedule"}},
	{"development", []string{"code", "git", "github", "deploy", "api"}},
	{"social", []string{"social", "twitter", "facebook", "instagram", "post"}},
	{"ecommerce", []string{"shop", "store", "product", "cart", "order"}},
	{"data", []string{"data", "analytics", "database", "query", "search"}},
	{"ai", []string{"ai", "ml", "llm", "gpt", "model"}},
	{"communication", []string{"chat", "message", "slack", "discord", "teams"}},
}

// genericTags are keyword-triggered tags derived from the manifest's name
// and description.
var genericTags = []string{"api", "web", "database", "cloud", "automation", "integration"}

// Extract derives domain, tags, and a confidence score from a decoded
// manifest. Pure and deterministic: same input, same output, no I/O.
func Extract(doc map[string]any, name, description, sourceURL string) Metadata {
	domain := classifyDomain(doc, name, description)
	return Metadata{
		Domain:     domain,
		Tags:       extractTags(doc, name, description, domain),
		Confidence: confidence(doc, description, sourceURL),
	}
}

// classifyDomain prefers an explicit domain field, then matches name and
// description against the keyword table in table order, defaulting to
// "general".
func classifyDomain(doc map[string]any, name, description string) string {
	if d, ok := doc["domain"].(string); ok && d != "" {
		return d
	}

	text := strings.ToLower(name + " " + description)
	for _, entry := range domainTable {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				return entry.domain
			}
		}
	}
	return "general"
}

// extractTags unions the manifest's declared tags, the classified domain,
// the first underscore-delimited segment of every tool name, and generic
// keyword hits, keeping insertion order and capping at maxTags.
func extractTags(doc map[string]any, name, description, domain string) []string {
	var tags []string
	seen := make(map[string]struct{})
	add := func(tag string) {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || len(tags) >= maxTags {
			return
		}
		if _, dup := seen[tag]; dup {
			return
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	if declared, ok := doc["tags"].([]any); ok {
		for _, v := range declared {
			if s, ok := v.(string); ok {
				add(s)
			}
		}
	}

	if domain != "general" {
		add(domain)
	}

	if toolList, ok := doc["tools"].([]any); ok {
		for _, item := range toolList {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			toolName, _ := m["name"].(string)
			if prefix, _, _ := strings.Cut(toolName, "_"); prefix != "" {
				add(prefix)
			}
		}
	}

	text := strings.ToLower(name + " " + description)
	for _, kw := range genericTags {
		if strings.Contains(text, kw) {
			add(kw)
		}
	}

	return tags
}

// confidence scores manifest completeness. A heuristic, not a probability:
// base 0.5, bonuses for descriptive fields, multiple tools, parameterized
// and well-described tools, and a trusted source URL. Clamped to [0, 1].
func confidence(doc map[string]any, description string, sourceURL string) float64 {
	score := 0.5

	if description != "" {
		score += 0.1
	}
	if v, ok := doc["version"].(string); ok && v != "" {
		score += 0.1
	}

	toolList, _ := doc["tools"].([]any)
	if len(toolList) > 1 {
		score += 0.1
	}
	for _, item := range toolList {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if params, ok := m["parameters"].(map[string]any); ok && len(params) > 0 {
			score += 0.05
		}
		if desc, _ := m["description"].(string); len(desc) > 20 {
			score += 0.05
		}
	}

	if urlutil.IsCodeHost(sourceURL) {
		score += 0.1
	}
	if urlutil.HasManifestMarker(sourceURL) {
		score += 0.1
	}

	if score > 1.0 {
		score = 1.0
	}
	if score < 0.0 {
		score = 0.0
	}
	return score
}
