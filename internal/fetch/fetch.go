// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves external pages and raw file content for the
// discovery pipeline. It offers two implementations of the same contract: a
// headless-browser fetcher for JavaScript-rendered search pages and a plain
// HTTP fetcher for static pages and raw manifests. All network and
// navigation failures surface as a single typed *Error. Nothing is retried
// at this layer; each fetch is a single best-effort attempt so overall query
// latency stays bounded.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// ErrorKind classifies a fetch failure.
type ErrorKind string

const (
	KindNetwork  ErrorKind = "network"
	KindTimeout  ErrorKind = "timeout"
	KindNotFound ErrorKind = "not_found"
)

// Error is the single failure type this package returns. Callers branch on
// Kind; the wrapped cause is available through errors.Unwrap.
type Error struct {
	Kind ErrorKind
	URL  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Link is a hyperlink extracted from a page, with its absolute URL.
type Link struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// PageContent is the extracted view of a fetched page: visible text plus the
// hyperlinks found in it.
type PageContent struct {
	URL   string
	Text  string
	Links []Link
}

// Fetcher retrieves pages and raw content. Both operations are idempotent
// GETs. Close releases any underlying resources (browser process, idle
// connections) and must be called on every exit path.
type Fetcher interface {
	FetchPage(ctx context.Context, url string) (*PageContent, error)
	FetchRaw(ctx context.Context, url string) (string, error)
	Close() error
}

// classify wraps a transport error as *Error, distinguishing timeouts from
// other network failures.
func classify(pageURL string, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, URL: pageURL, Err: err}
	}
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return &Error{Kind: KindTimeout, URL: pageURL, Err: err}
	}
	return &Error{Kind: KindNetwork, URL: pageURL, Err: err}
}

// statusError wraps a non-2xx HTTP status as *Error. 404 and 410 map to
// KindNotFound; everything else is a network failure.
func statusError(pageURL string, code int) *Error {
	kind := KindNetwork
	if code == 404 || code == 410 {
		kind = KindNotFound
	}
	return &Error{Kind: kind, URL: pageURL, Err: fmt.Errorf("HTTP %d", code)}
}
