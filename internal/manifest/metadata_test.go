package manifest

import (
	"encoding/json"
	"math"
	"testing"
)

func mustDecode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return doc
}

func TestClassifyDomain(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		extractName string
		description string
		want        string
	}{
		{"explicit field wins", `{"domain":"custom"}`, "weather-tool", "forecast", "custom"},
		{"keyword in name", `{}`, "stock-ticker", "", "finance"},
		{"keyword in description", `{}`, "x", "hotel booking helper", "travel"},
		{"table order breaks ties", `{}`, "x", "temperature of the trading floor", "weather"},
		{"no match", `{}`, "x", "something else entirely", "general"},
		{"empty domain field ignored", `{"domain":""}`, "x", "climate data", "weather"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDecode(t, tt.doc)
			if got := classifyDomain(doc, tt.extractName, tt.description); got != tt.want {
				t.Errorf("classifyDomain = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractTags(t *testing.T) {
	doc := mustDecode(t, `{
		"tags": ["First", "first", " custom "],
		"tools": [
			{"name": "get_current_weather", "description": "d"},
			{"name": "get_forecast", "description": "d"},
			{"name": "plain", "description": "d"}
		]
	}`)

	tags := extractTags(doc, "weather-kit", "a web api for weather", "weather")
	want := []string{"first", "custom", "weather", "get", "plain", "api", "web"}
	if len(tags) != len(want) {
		t.Fatalf("tags = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("tags[%d] = %q, want %q", i, tags[i], want[i])
		}
	}
}

func TestExtractTagsCap(t *testing.T) {
	doc := mustDecode(t, `{"tags":["a","b","c","d","e","f","g","h","i","j","k","l"]}`)
	tags := extractTags(doc, "x", "", "general")
	if len(tags) != maxTags {
		t.Errorf("len(tags) = %d, want %d", len(tags), maxTags)
	}
}

func TestExtractTagsSkipsGeneralDomain(t *testing.T) {
	tags := extractTags(map[string]any{}, "x", "", "general")
	for _, tag := range tags {
		if tag == "general" {
			t.Error("'general' must not be emitted as a tag")
		}
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		description string
		sourceURL   string
		want        float64
	}{
		{"bare minimum", `{"name":"x","tools":[{"name":"a","description":"b"}]}`, "", "https://example.org/t.json", 0.5},
		{"description bonus", `{"tools":[]}`, "does things", "https://example.org/t.json", 0.6},
		{"version bonus", `{"version":"1.0.0","tools":[]}`, "", "https://example.org/t.json", 0.6},
		{"multiple tools", `{"tools":[{"name":"a","description":"b"},{"name":"c","description":"d"}]}`, "", "https://example.org/t.json", 0.6},
		{"parameterized tool", `{"tools":[{"name":"a","description":"b","parameters":{"q":"string"}}]}`, "", "https://example.org/t.json", 0.55},
		{"long tool description", `{"tools":[{"name":"a","description":"a sufficiently long tool description"}]}`, "", "https://example.org/t.json", 0.55},
		{"code host bonus", `{"tools":[]}`, "", "https://github.com/acme/x/raw/main/t.json", 0.6},
		{"manifest marker bonus", `{"tools":[]}`, "", "https://example.org/tool.mcp.json", 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDecode(t, tt.doc)
			got := confidence(doc, tt.description, tt.sourceURL)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("confidence = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfidenceClamped(t *testing.T) {
	doc := mustDecode(t, `{
		"version": "2.0",
		"tools": [
			{"name":"a","description":"a sufficiently long tool description","parameters":{"q":"s"}},
			{"name":"b","description":"another sufficiently long description","parameters":{"q":"s"}},
			{"name":"c","description":"yet another sufficiently long description","parameters":{"q":"s"}},
			{"name":"d","description":"one more sufficiently long description","parameters":{"q":"s"}}
		]
	}`)
	got := confidence(doc, "rich", "https://github.com/acme/x/blob/main/x.mcp.json")
	if got != 1.0 {
		t.Errorf("confidence = %v, want clamped to 1.0", got)
	}
}

func TestWeatherManifestEndToEnd(t *testing.T) {
	a := Parse(codeHostDoc(weatherJSON))
	if a == nil {
		t.Fatal("Parse returned nil")
	}
	if a.Domain != "weather" {
		t.Errorf("Domain = %q, want weather", a.Domain)
	}

	has := func(tag string) bool {
		for _, tg := range a.Tags {
			if tg == tag {
				return true
			}
		}
		return false
	}
	if !has("get") {
		t.Errorf("Tags = %v, want 'get' from the tool name prefix", a.Tags)
	}
	if !has("weather") {
		t.Errorf("Tags = %v, want the classified domain as a tag", a.Tags)
	}

	// 0.5 base, +0.1 description, +0.1 version, +0.05 parameterized tool,
	// +0.1 code host, +0.1 manifest marker in the source URL.
	if math.Abs(a.ConfidenceScore-0.95) > 1e-9 {
		t.Errorf("ConfidenceScore = %v, want 0.95", a.ConfidenceScore)
	}
	if a.ConfidenceScore < 0.75 {
		t.Errorf("ConfidenceScore = %v, want at least 0.75", a.ConfidenceScore)
	}
}
