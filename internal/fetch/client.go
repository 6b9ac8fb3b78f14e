// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pdiddy/toolscout/pkg/types"

	"golang.org/x/net/html"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultMaxBodyBytes = 1 << 20
	defaultUserAgent    = "toolscout/0.1"
)

// Client is the plain-HTTP fetcher. Page extraction parses the response
// body with x/net/html; no JavaScript runs, which is sufficient for raw
// manifests, markdown READMEs, and server-rendered search pages.
type Client struct {
	client  *http.Client
	cfg     types.FetchConfig
	maxBody int64
}

// NewClient builds a Client from cfg, applying defaults for zero values.
func NewClient(cfg types.FetchConfig) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		cfg:     cfg,
		maxBody: maxBody,
	}
}

// FetchPage retrieves pageURL and extracts its visible text and hyperlinks.
func (c *Client) FetchPage(ctx context.Context, pageURL string) (*PageContent, error) {
	body, finalURL, err := c.get(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	doc, parseErr := html.Parse(body)
	io.Copy(io.Discard, body)
	body.Close()
	if parseErr != nil {
		return nil, &Error{Kind: KindNetwork, URL: pageURL, Err: parseErr}
	}

	base, _ := url.Parse(finalURL)
	text, links := parsePage(doc, base)
	return &PageContent{URL: finalURL, Text: text, Links: links}, nil
}

// FetchRaw retrieves rawURL and returns the body as a string, capped at the
// configured byte limit.
func (c *Client) FetchRaw(ctx context.Context, rawURL string) (string, error) {
	body, _, err := c.get(ctx, rawURL)
	if err != nil {
		return "", err
	}
	defer body.Close()

	data, readErr := io.ReadAll(io.LimitReader(body, c.maxBody))
	if readErr != nil {
		return "", classify(rawURL, readErr)
	}
	return string(data), nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// get issues the GET and maps failures to *Error. The returned body is
// limited and open; callers must close it.
func (c *Client) get(ctx context.Context, pageURL string) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", &Error{Kind: KindNetwork, URL: pageURL, Err: err}
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if c.cfg.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.AuthToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", classify(pageURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, "", statusError(pageURL, resp.StatusCode)
	}

	finalURL := pageURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}
	return resp.Body, finalURL, nil
}
