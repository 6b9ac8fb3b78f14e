// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the toolscout discovery
// pipeline: candidate documents produced by source adapters, validated
// artifacts produced by the manifest parser, and the ranked result set
// returned to callers.
package types

// SourcePlatform identifies the class of external source a document or
// artifact came from.
type SourcePlatform string

const (
	PlatformCodeHost   SourcePlatform = "code_host"
	PlatformGeneralWeb SourcePlatform = "general_web"
	PlatformCurated    SourcePlatform = "curated"
)

// FileType records which serialization a manifest decoded from.
type FileType string

const (
	FileTypeJSON FileType = "json"
	FileTypeYAML FileType = "yaml"
)

// CandidateDocument is raw, unvalidated text retrieved from a source before
// parsing. A source adapter produces it; the manifest parser consumes it
// exactly once. A candidate yields at most one artifact: documents that fail
// validation produce nothing.
type CandidateDocument struct {
	// SourceURL is the page the raw content was fetched from.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// RawContent is the unparsed manifest text (JSON or YAML).
	RawContent string `json:"raw_content" yaml:"raw_content"`

	// SourcePlatform identifies the adapter class that found the document.
	SourcePlatform SourcePlatform `json:"source_platform" yaml:"source_platform"`

	// RepositoryHint is the owner/repo slug when the source URL allows
	// extracting one, empty otherwise.
	RepositoryHint string `json:"repository_hint,omitempty" yaml:"repository_hint,omitempty"`
}

// ToolSpec describes one callable tool declared by a manifest. Parameter
// mapping keys are unique; their ordering carries no meaning.
type ToolSpec struct {
	// Name is the tool identifier (e.g. "get_current_weather").
	Name string `json:"name" yaml:"name"`

	// Description explains what the tool does.
	Description string `json:"description" yaml:"description"`

	// Parameters maps parameter names to type descriptors. May be empty.
	Parameters map[string]any `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// Artifact is a validated, schema-conforming manifest discovered from an
// external source. Created by the parser and metadata extractor; read-only
// downstream. Validated is true only when every tool has a non-empty name
// and description and the tool list is non-empty.
type Artifact struct {
	// Name is the manifest name.
	Name string `json:"name" yaml:"name"`

	// Description summarizes the manifest, empty when the document has none.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Tools lists the declared tools in document order.
	Tools []ToolSpec `json:"tools" yaml:"tools"`

	// Tags holds up to ten derived and declared tags in insertion order.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Domain classifies the manifest (e.g. "weather", "finance", "general").
	Domain string `json:"domain" yaml:"domain"`

	// ConfidenceScore is a deterministic heuristic in [0, 1] estimating how
	// trustworthy and complete the artifact is. It is not a probability.
	ConfidenceScore float64 `json:"confidence_score" yaml:"confidence_score"`

	// SourceURL is where the manifest was found.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// SourcePlatform identifies the adapter class that found it.
	SourcePlatform SourcePlatform `json:"source_platform" yaml:"source_platform"`

	// FileType records which serialization decoded successfully.
	FileType FileType `json:"file_type" yaml:"file_type"`

	// Repository is the owner/repo slug when known.
	Repository string `json:"repository,omitempty" yaml:"repository,omitempty"`

	// Validated reports whether the manifest passed structural validation.
	Validated bool `json:"validated" yaml:"validated"`
}

// RankedResultSet is the ordered output of one discovery query: deduplicated
// by source URL, sorted by confidence descending (stable), truncated to the
// caller's limit. Constructed once per query and not mutated afterwards.
type RankedResultSet struct {
	// Query is the free-text query that produced the set.
	Query string `json:"query" yaml:"query"`

	// Results holds the ranked artifacts.
	Results []Artifact `json:"results" yaml:"results"`

	// DupsRemoved counts duplicates dropped during merging.
	DupsRemoved int `json:"dups_removed" yaml:"dups_removed"`

	// SourceErrors records sources that failed entirely, as "name: error"
	// strings. A failed source contributes zero results, never an error to
	// the caller.
	SourceErrors []string `json:"source_errors,omitempty" yaml:"source_errors,omitempty"`
}
