// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog loads a read-only seed catalog of tool manifests from a
// YAML fixture file. Seed entries pass through the same validation as
// discovered documents, so a catalog never holds an unvalidated artifact.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/toolscout/internal/manifest"
	"github.com/pdiddy/toolscout/pkg/types"
)

// entry is one seed in the fixture file: a source URL plus the manifest
// document itself.
type entry struct {
	SourceURL string         `yaml:"source_url"`
	Manifest  map[string]any `yaml:"manifest"`
}

type fixture struct {
	Manifests []entry `yaml:"manifests"`
}

// Catalog holds validated seed artifacts in fixture order.
type Catalog struct {
	artifacts []types.Artifact
}

// Load reads and validates the fixture at cfg.Path. A seed that fails
// validation is an error, not a skip.
func Load(cfg types.CatalogConfig) (*Catalog, error) {
	data, err := os.ReadFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog fixture: %w", err)
	}

	var f fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog fixture: %w", err)
	}

	c := &Catalog{}
	for i, e := range f.Manifests {
		raw, err := json.Marshal(e.Manifest)
		if err != nil {
			return nil, fmt.Errorf("encoding catalog entry %d: %w", i, err)
		}
		a := manifest.Parse(types.CandidateDocument{
			SourceURL:      e.SourceURL,
			RawContent:     string(raw),
			SourcePlatform: types.PlatformCurated,
		})
		if a == nil {
			return nil, fmt.Errorf("catalog entry %d (%s) failed validation", i, e.SourceURL)
		}
		c.artifacts = append(c.artifacts, *a)
	}
	return c, nil
}

// List returns all seed artifacts in fixture order.
func (c *Catalog) List() []types.Artifact {
	out := make([]types.Artifact, len(c.artifacts))
	copy(out, c.artifacts)
	return out
}

// Get returns the seed artifact with the given name.
func (c *Catalog) Get(name string) (types.Artifact, bool) {
	for _, a := range c.artifacts {
		if a.Name == name {
			return a, true
		}
	}
	return types.Artifact{}, false
}

// FilterByDomain returns the seed artifacts classified under domain.
func (c *Catalog) FilterByDomain(domain string) []types.Artifact {
	var out []types.Artifact
	for _, a := range c.artifacts {
		if a.Domain == domain {
			out = append(out, a)
		}
	}
	return out
}

// FilterByTag returns the seed artifacts carrying tag.
func (c *Catalog) FilterByTag(tag string) []types.Artifact {
	var out []types.Artifact
	for _, a := range c.artifacts {
		for _, tg := range a.Tags {
			if tg == tag {
				out = append(out, a)
				break
			}
		}
	}
	return out
}
