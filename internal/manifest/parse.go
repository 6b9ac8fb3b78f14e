// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest parses raw candidate documents into validated artifacts
// and derives their metadata (domain, tags, confidence).
//
// Parsing is strict and total: a document either satisfies the structural
// contract (a mapping with a non-empty string "name" and a non-empty
// "tools" list whose every element carries a non-empty name and
// description) or it yields nothing. Lenient partial acceptance is not
// offered; a malformed manifest must never reach ranking.
package manifest

import (
	"encoding/json"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/toolscout/internal/urlutil"
	"github.com/pdiddy/toolscout/pkg/types"
)

// Parse decodes raw as JSON first and YAML second, validates the structural
// contract, and returns a validated artifact with metadata filled in. It
// returns nil for any document that fails to decode or validate; malformed
// input is a normal outcome here, not an error.
func Parse(doc types.CandidateDocument) *types.Artifact {
	decoded, fileType := decode(doc.RawContent)
	if decoded == nil {
		return nil
	}

	name, ok := decoded["name"].(string)
	if !ok || name == "" {
		return nil
	}

	tools, ok := toolSpecs(decoded["tools"])
	if !ok || len(tools) == 0 {
		return nil
	}

	description, _ := decoded["description"].(string)

	repo := doc.RepositoryHint
	if repo == "" {
		repo = urlutil.RepositoryFromURL(doc.SourceURL)
	}

	meta := Extract(decoded, name, description, doc.SourceURL)

	return &types.Artifact{
		Name:            name,
		Description:     description,
		Tools:           tools,
		Tags:            meta.Tags,
		Domain:          meta.Domain,
		ConfidenceScore: meta.Confidence,
		SourceURL:       doc.SourceURL,
		SourcePlatform:  doc.SourcePlatform,
		FileType:        fileType,
		Repository:      repo,
		Validated:       true,
	}
}

// decode tries JSON, then YAML. Only a top-level mapping is acceptable;
// scalars, lists, and undecodable input all return nil.
func decode(raw string) (map[string]any, types.FileType) {
	var viaJSON map[string]any
	if err := json.Unmarshal([]byte(raw), &viaJSON); err == nil && viaJSON != nil {
		return viaJSON, types.FileTypeJSON
	}

	var viaYAML map[string]any
	if err := yaml.Unmarshal([]byte(raw), &viaYAML); err == nil && viaYAML != nil {
		return viaYAML, types.FileTypeYAML
	}

	return nil, ""
}

// toolSpecs validates and converts the decoded "tools" value. Every element
// must be a mapping with non-empty string name and description; a single bad
// element rejects the whole document.
func toolSpecs(v any) ([]types.ToolSpec, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}

	specs := make([]types.ToolSpec, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		name, ok := m["name"].(string)
		if !ok || name == "" {
			return nil, false
		}
		desc, ok := m["description"].(string)
		if !ok || desc == "" {
			return nil, false
		}

		spec := types.ToolSpec{Name: name, Description: desc}
		if params, ok := m["parameters"].(map[string]any); ok && len(params) > 0 {
			spec.Parameters = params
		}
		specs = append(specs, spec)
	}
	return specs, true
}
