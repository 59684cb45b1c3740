// Package fetch - reader.go provides the text-rendering reader proxy
// tier used for JavaScript-rendered job boards.
package fetch

import (
	"context"
	"net/url"
	"strings"
)

// DefaultReaderBaseURL is the reader proxy that returns a plain-text
// rendering of a target page appended to its path.
const DefaultReaderBaseURL = "https://r.jina.ai/"

// minReaderTextLen is the minimum rendering length accepted from the
// reader proxy. Shorter responses are usually error pages or consent
// walls, so the caller should fall through to a direct fetch.
const minReaderTextLen = 200

// renderedBoards lists job-board hosts known to render postings with
// JavaScript, where a direct fetch returns an empty shell.
var renderedBoards = []string{
	"linkedin.com",
	"indeed.com",
	"glassdoor.com",
	"ziprecruiter.com",
	"monster.com",
}

// IsRenderedBoard reports whether the URL points at a job board that
// needs a rendering proxy. Matching is a case-insensitive substring
// check on the host so subdomains are covered.
func IsRenderedBoard(urlStr string) bool {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Host)
	for _, board := range renderedBoards {
		if strings.Contains(host, board) {
			return true
		}
	}
	return false
}

// Reader fetches pages through a text-rendering proxy.
type Reader struct {
	baseURL string
	opts    *Options
}

// NewReader returns a Reader against baseURL, or the default proxy when
// baseURL is empty.
func NewReader(baseURL string, opts *Options) *Reader {
	if baseURL == "" {
		baseURL = DefaultReaderBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Reader{baseURL: baseURL, opts: opts}
}

// Render requests a plain-text rendering of target. It retries once on
// failure; the reader proxy is the only tier worth a second attempt
// since it fronts pages a direct fetch cannot read at all. Renderings
// shorter than the acceptance threshold are rejected.
func (r *Reader) Render(ctx context.Context, target string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		result, err := URL(ctx, r.baseURL+target, r.opts)
		if err != nil {
			lastErr = err
			continue
		}
		text := strings.TrimSpace(result.Body)
		if len(text) <= minReaderTextLen {
			lastErr = &Error{URL: target, Message: "reader rendering too short"}
			continue
		}
		return Truncate(text, MaxDescriptionLen), nil
	}
	return "", lastErr
}
