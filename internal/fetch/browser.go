// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/pdiddy/toolscout/pkg/types"
)

const defaultNavigationTimeout = 15 * time.Second

// settleDelay is the fixed pause after navigation that lets late XHR-driven
// content land before extraction. Bounded by the navigation timeout either way.
const settleDelay = 2 * time.Second

// Browser is the headless-Chrome fetcher, for search pages that render their
// results with JavaScript. Raw file fetches never need a browser and are
// delegated to an embedded Client.
type Browser struct {
	cfg         types.FetchConfig
	cancelAlloc context.CancelFunc
	cancelCtx   context.CancelFunc
	browserCtx  context.Context
	raw         *Client
}

// NewBrowser launches a headless Chrome allocator. The caller owns the
// returned Browser and must Close it; each FetchPage runs in its own tab.
func NewBrowser(cfg types.FetchConfig) (*Browser, error) {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.NavigationTimeout <= 0 {
		cfg.NavigationTimeout = defaultNavigationTimeout
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(cfg.UserAgent),
		chromedp.Flag("headless", cfg.Headless),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancelCtx := chromedp.NewContext(allocCtx)

	return &Browser{
		cfg:         cfg,
		cancelAlloc: cancelAlloc,
		cancelCtx:   cancelCtx,
		browserCtx:  browserCtx,
		raw:         NewClient(cfg),
	}, nil
}

// FetchPage navigates to pageURL in a fresh tab, waits a bounded interval
// for the page to settle, and extracts visible text and anchors.
func (b *Browser) FetchPage(ctx context.Context, pageURL string) (*PageContent, error) {
	tabCtx, cancelTab := chromedp.NewContext(b.browserCtx)
	defer cancelTab()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, b.cfg.NavigationTimeout)
	defer cancelTimeout()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			cancelTab()
		case <-done:
		}
	}()

	var text string
	var links []Link
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(pageURL),
		chromedp.Sleep(settleDelay),
		chromedp.Evaluate(`document.body ? document.body.innerText : ""`, &text),
		chromedp.Evaluate(
			`Array.from(document.querySelectorAll('a[href]'))
				.map(a => ({text: (a.innerText || "").trim(), url: a.href}))
				.filter(l => l.url.startsWith("http"))`,
			&links,
		),
	)
	if err != nil {
		return nil, classify(pageURL, err)
	}

	return &PageContent{URL: pageURL, Text: text, Links: links}, nil
}

// FetchRaw retrieves raw file content over plain HTTP.
func (b *Browser) FetchRaw(ctx context.Context, rawURL string) (string, error) {
	return b.raw.FetchRaw(ctx, rawURL)
}

// Close shuts down the browser and the allocator. Safe to call once on any
// exit path.
func (b *Browser) Close() error {
	b.cancelCtx()
	b.cancelAlloc()
	return b.raw.Close()
}
