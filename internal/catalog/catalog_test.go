package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pdiddy/toolscout/pkg/types"
)

const fixtureYAML = `
manifests:
  - source_url: https://github.com/modelcontextprotocol/servers/tree/main/src/weather
    manifest:
      name: weather-forecast
      version: "1.0.0"
      description: Real-time weather data and forecasting
      tools:
        - name: get_current_weather
          description: Get current weather for a location
          parameters:
            location: string
            units: string
  - source_url: https://github.com/acme/ledger
    manifest:
      name: stock-ticker
      description: Live stock quotes
      tools:
        - name: get_quote
          description: Fetch the latest quote for a symbol
          parameters:
            symbol: string
`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	c, err := Load(types.CatalogConfig{Path: writeFixture(t, fixtureYAML)})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	all := c.List()
	if len(all) != 2 {
		t.Fatalf("len(List()) = %d, want 2", len(all))
	}
	for _, a := range all {
		if !a.Validated {
			t.Errorf("%s: Validated = false", a.Name)
		}
	}
	if all[0].Domain != "weather" {
		t.Errorf("Domain = %q, want weather", all[0].Domain)
	}
	if all[1].Domain != "finance" {
		t.Errorf("Domain = %q, want finance", all[1].Domain)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(types.CatalogConfig{Path: filepath.Join(t.TempDir(), "absent.yaml")}); err == nil {
		t.Error("expected error for a missing fixture")
	}
}

func TestLoadInvalidSeed(t *testing.T) {
	bad := `
manifests:
  - source_url: https://example.org/x
    manifest:
      tools: []
`
	if _, err := Load(types.CatalogConfig{Path: writeFixture(t, bad)}); err == nil {
		t.Error("expected error for an invalid seed")
	}
}

func TestGet(t *testing.T) {
	c, err := Load(types.CatalogConfig{Path: writeFixture(t, fixtureYAML)})
	if err != nil {
		t.Fatal(err)
	}

	a, ok := c.Get("weather-forecast")
	if !ok {
		t.Fatal("Get(weather-forecast) missed")
	}
	if a.Repository != "modelcontextprotocol/servers" {
		t.Errorf("Repository = %q", a.Repository)
	}
	if _, ok := c.Get("absent"); ok {
		t.Error("Get(absent) hit")
	}
}

func TestFilters(t *testing.T) {
	c, err := Load(types.CatalogConfig{Path: writeFixture(t, fixtureYAML)})
	if err != nil {
		t.Fatal(err)
	}

	if got := c.FilterByDomain("weather"); len(got) != 1 || got[0].Name != "weather-forecast" {
		t.Errorf("FilterByDomain(weather) = %+v", got)
	}
	if got := c.FilterByTag("finance"); len(got) != 1 || got[0].Name != "stock-ticker" {
		t.Errorf("FilterByTag(finance) = %+v", got)
	}
	if got := c.FilterByDomain("travel"); len(got) != 0 {
		t.Errorf("FilterByDomain(travel) = %+v", got)
	}
}
