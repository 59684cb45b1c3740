// Package ingestion resolves a submitted job listing into the best
// available plain-text description.
package ingestion

import (
	"context"
	"log"

	"github.com/jonathan/job-tailor/internal/fetch"
	"github.com/jonathan/job-tailor/internal/types"
)

// Options configures the resolver tiers.
type Options struct {
	// ReaderBaseURL overrides the default reader proxy; useful in tests.
	ReaderBaseURL string
	// Fetch applies to both the reader and direct tiers.
	Fetch *fetch.Options
	// UseBrowser enables the headless-browser tier when the direct
	// fetch yields too little text. Off by default; needs Chrome.
	UseBrowser bool
}

// ResolveJobDescription returns the best available description text for
// a listing. Pasted text wins verbatim; otherwise the URL is fetched
// through the reader proxy (rendered boards only) and then directly.
// Acquisition is best-effort: every failure is logged and absorbed, and
// the empty string means no description could be obtained. It never
// fails the request.
func ResolveJobDescription(ctx context.Context, listing types.JobListing, opts *Options) string {
	if listing.Description != "" {
		return listing.Description
	}
	if listing.URL == "" {
		return ""
	}
	if opts == nil {
		opts = &Options{}
	}

	if fetch.IsRenderedBoard(listing.URL) {
		reader := fetch.NewReader(opts.ReaderBaseURL, opts.Fetch)
		text, err := reader.Render(ctx, listing.URL)
		if err == nil {
			return text
		}
		log.Printf("[resolver] reader tier failed for %s: %v", listing.URL, err)
	}

	return resolveDirect(ctx, listing.URL, opts)
}

// resolveDirect fetches the page itself and extracts the posting text,
// optionally re-rendering through a headless browser when the static
// HTML is an SPA shell.
func resolveDirect(ctx context.Context, urlStr string, opts *Options) string {
	result, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		log.Printf("[resolver] direct fetch failed for %s: %v", urlStr, err)
		return ""
	}

	text, err := fetch.ExtractJobText(result.Body)
	if err != nil {
		log.Printf("[resolver] extraction failed for %s: %v", urlStr, err)
		return ""
	}

	if opts.UseBrowser && fetch.ShouldUseBrowser(text) {
		html, err := fetch.RenderWithBrowser(ctx, urlStr, 0)
		if err != nil {
			log.Printf("[resolver] browser tier failed for %s: %v", urlStr, err)
			return text
		}
		rendered, err := fetch.ExtractJobText(html)
		if err != nil {
			log.Printf("[resolver] browser extraction failed for %s: %v", urlStr, err)
			return text
		}
		if len(rendered) > len(text) {
			return rendered
		}
	}

	return text
}
