// Package fetch - browser.go provides optional headless browser
// rendering for boards the reader proxy cannot serve.
package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinRenderedLen is the extracted-text length under which a direct
// fetch is considered an unrendered SPA shell.
const MinRenderedLen = 500

// ShouldUseBrowser reports whether the extracted text is short enough
// to justify a browser-rendered retry.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinRenderedLen
}

// RenderWithBrowser loads the URL in headless Chrome and returns the
// rendered HTML. Requires Chrome/Chromium on the host; callers treat
// failure like any other tier failure.
func RenderWithBrowser(ctx context.Context, urlStr string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(urlStr),
		chromedp.WaitReady("body"),
		// Give client-side rendering a moment to fill the posting in.
		chromedp.Sleep(3*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	return html, nil
}
