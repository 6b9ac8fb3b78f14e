package discover

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"testing"

	"github.com/pdiddy/toolscout/internal/fetch"
	"github.com/pdiddy/toolscout/pkg/types"
)

// stubFetcher serves canned pages and raw files; anything else is not found.
type stubFetcher struct {
	pages  map[string]*fetch.PageContent
	raw    map[string]string
	closed bool
}

func (f *stubFetcher) FetchPage(_ context.Context, u string) (*fetch.PageContent, error) {
	if p, ok := f.pages[u]; ok {
		return p, nil
	}
	return nil, &fetch.Error{Kind: fetch.KindNotFound, URL: u}
}

func (f *stubFetcher) FetchRaw(_ context.Context, u string) (string, error) {
	if r, ok := f.raw[u]; ok {
		return r, nil
	}
	return "", &fetch.Error{Kind: fetch.KindNotFound, URL: u}
}

func (f *stubFetcher) Close() error { f.closed = true; return nil }

const weatherManifest = `{
	"name": "weather-forecast",
	"version": "1.0.0",
	"description": "Real-time weather data and forecasting",
	"tools": [
		{"name": "get_current_weather", "description": "...", "parameters": {"location": "string"}}
	]
}`

const (
	weatherViewURL = "https://github.com/acme/weather/blob/main/weather.mcp.json"
	weatherRawURL  = "https://github.com/acme/weather/raw/main/weather.mcp.json"
)

// --- CodeHostSource ---

func TestCodeHostSearch(t *testing.T) {
	searchURL := fmt.Sprintf("%s?q=%s+filename%%3A.mcp.json&type=code", codeHostSearchBase, url.QueryEscape("weather"))
	f := &stubFetcher{
		pages: map[string]*fetch.PageContent{
			searchURL: {URL: searchURL, Links: []fetch.Link{
				{Text: "weather.mcp.json", URL: weatherViewURL},
				{Text: "docs", URL: "https://github.com/acme/weather"},
				{Text: "elsewhere", URL: "https://example.org/page"},
			}},
		},
		raw: map[string]string{weatherRawURL: weatherManifest},
	}
	src := &CodeHostSource{Fetcher: f, Warn: &bytes.Buffer{}}

	docs, err := src.Search(context.Background(), "weather", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("len(docs) = %d, want 1", len(docs))
	}
	d := docs[0]
	if d.SourceURL != weatherViewURL {
		t.Errorf("SourceURL = %q, want the view link", d.SourceURL)
	}
	if d.RepositoryHint != "acme/weather" {
		t.Errorf("RepositoryHint = %q", d.RepositoryHint)
	}
	if d.SourcePlatform != types.PlatformCodeHost {
		t.Errorf("SourcePlatform = %q", d.SourcePlatform)
	}
}

func TestCodeHostSearchSkipsBrokenLinks(t *testing.T) {
	searchURL := fmt.Sprintf("%s?q=%s+filename%%3A.mcp.json&type=code", codeHostSearchBase, url.QueryEscape("weather"))
	var warnings bytes.Buffer
	f := &stubFetcher{
		pages: map[string]*fetch.PageContent{
			searchURL: {URL: searchURL, Links: []fetch.Link{
				{Text: "gone", URL: "https://github.com/acme/gone/blob/main/gone.mcp.json"},
				{Text: "weather", URL: weatherViewURL},
			}},
		},
		raw: map[string]string{weatherRawURL: weatherManifest},
	}
	src := &CodeHostSource{Fetcher: f, Warn: &warnings}

	docs, err := src.Search(context.Background(), "weather", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("len(docs) = %d, want 1", len(docs))
	}
	if warnings.Len() == 0 {
		t.Error("expected a warning for the broken link")
	}
}

func TestCodeHostSearchAllPagesFail(t *testing.T) {
	src := &CodeHostSource{Fetcher: &stubFetcher{}, Warn: &bytes.Buffer{}}
	if _, err := src.Search(context.Background(), "weather", 5); err == nil {
		t.Error("expected error when every search page fails")
	}
}

// --- WebSource ---

func TestWebSearch(t *testing.T) {
	searchURL := fmt.Sprintf("%s?q=%s", webSearchBase, url.QueryEscape("weather mcp json"))
	manifestURL := "https://files.example.org/tool.mcp.json"
	f := &stubFetcher{
		pages: map[string]*fetch.PageContent{
			searchURL: {URL: searchURL, Links: []fetch.Link{
				{Text: "next page", URL: webSearchBase + "?q=weather&s=30"},
				{Text: "blog post", URL: "https://blog.example.org/post"},
				{Text: "manifest", URL: manifestURL},
			}},
		},
		raw: map[string]string{manifestURL: weatherManifest},
	}
	src := &WebSource{Fetcher: f, Warn: &bytes.Buffer{}}

	docs, err := src.Search(context.Background(), "weather", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("len(docs) = %d, want 1", len(docs))
	}
	if docs[0].SourceURL != manifestURL {
		t.Errorf("SourceURL = %q", docs[0].SourceURL)
	}
	if docs[0].SourcePlatform != types.PlatformGeneralWeb {
		t.Errorf("SourcePlatform = %q", docs[0].SourcePlatform)
	}
}

func TestWebSearchPageFails(t *testing.T) {
	src := &WebSource{Fetcher: &stubFetcher{}, Warn: &bytes.Buffer{}}
	if _, err := src.Search(context.Background(), "weather", 5); err == nil {
		t.Error("expected error when the search page fails")
	}
}

// --- DirectorySource ---

func TestDirectoryMarkdownList(t *testing.T) {
	listURL := "https://lists.example.org/readme.md"
	f := &stubFetcher{
		raw: map[string]string{
			listURL: "# Tools\n" +
				"- [Weather](" + weatherViewURL + ")\n" +
				"- [Elsewhere](https://example.org/x)\n",
			weatherRawURL: weatherManifest,
		},
	}
	src := &DirectorySource{Fetcher: f, URLs: []string{listURL}, Warn: &bytes.Buffer{}}

	docs, err := src.Search(context.Background(), "weather", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("len(docs) = %d, want 1", len(docs))
	}
	if docs[0].SourcePlatform != types.PlatformCurated {
		t.Errorf("SourcePlatform = %q", docs[0].SourcePlatform)
	}
}

func TestDirectoryTopicPage(t *testing.T) {
	listURL := "https://github.com/topics/mcp"
	f := &stubFetcher{
		pages: map[string]*fetch.PageContent{
			listURL: {URL: listURL, Links: []fetch.Link{
				{Text: "login", URL: "https://github.com/login"},
				{Text: "weather", URL: weatherViewURL},
			}},
		},
		raw: map[string]string{weatherRawURL: weatherManifest},
	}
	src := &DirectorySource{Fetcher: f, URLs: []string{listURL}, Warn: &bytes.Buffer{}}

	docs, err := src.Search(context.Background(), "weather", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("len(docs) = %d, want 1", len(docs))
	}
}

func TestDirectoryAllListsFail(t *testing.T) {
	src := &DirectorySource{Fetcher: &stubFetcher{}, URLs: []string{"https://lists.example.org/readme.md"}, Warn: &bytes.Buffer{}}
	if _, err := src.Search(context.Background(), "weather", 5); err == nil {
		t.Error("expected error when every list fails")
	}
}

// --- end to end ---

func TestDiscoverWeatherFromCuratedList(t *testing.T) {
	listURL := "https://lists.example.org/readme.md"
	f := &stubFetcher{
		raw: map[string]string{
			listURL:       "[Weather](" + weatherViewURL + ")",
			weatherRawURL: weatherManifest,
		},
	}
	sources := []Source{&DirectorySource{Fetcher: f, URLs: []string{listURL}, Warn: &bytes.Buffer{}}}

	out, err := Discover(context.Background(), "weather", 5, sources, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(out.Results) != 1 {
		t.Fatalf("len(Results) = %d, want 1", len(out.Results))
	}
	a := out.Results[0]
	if a.Domain != "weather" {
		t.Errorf("Domain = %q, want weather", a.Domain)
	}
	hasTag := func(tag string) bool {
		for _, tg := range a.Tags {
			if tg == tag {
				return true
			}
		}
		return false
	}
	if !hasTag("get") || !hasTag("weather") {
		t.Errorf("Tags = %v, want both 'get' and 'weather'", a.Tags)
	}
	if a.ConfidenceScore < 0.75 {
		t.Errorf("ConfidenceScore = %v, want at least 0.75", a.ConfidenceScore)
	}
	if !a.Validated {
		t.Error("Validated = false")
	}
}
