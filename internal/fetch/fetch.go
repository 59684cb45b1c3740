// Package fetch provides HTTP acquisition of job-posting pages and
// HTML-to-text extraction. It centralizes all outbound fetching used by
// the job-description resolver.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout bounds every outbound fetch; a hung job board must not
// pin a request.
const DefaultTimeout = 15 * time.Second

// BrowserUserAgent is sent on direct page fetches. Job boards routinely
// serve empty shells to non-browser agents.
const BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// MaxDescriptionLen caps extracted description text before it enters a
// prompt.
const MaxDescriptionLen = 10000

// minSelectorTextLen is the threshold below which a selector match is
// considered noise rather than the posting body.
const minSelectorTextLen = 100

// Result holds the body and status of a page fetch.
type Result struct {
	URL        string
	Body       string
	StatusCode int
}

// Error describes a failed fetch.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures outbound fetches.
type Options struct {
	Timeout   time.Duration
	UserAgent string
}

// DefaultOptions returns the defaults used by the resolver.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: BrowserUserAgent,
	}
}

// URL performs a GET against a job-posting page and returns the raw
// body. A non-2xx status is an error; the Result is still returned so
// callers can log the status.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	client := &http.Client{Timeout: opts.Timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	result := &Result{
		URL:        urlStr,
		Body:       string(body),
		StatusCode: resp.StatusCode,
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return result, &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	return result, nil
}

// descriptionSelectors is probed in order; the first match with enough
// text wins. Order matters and is part of the extraction contract.
var descriptionSelectors = []string{
	`[class*="description"]`,
	`[class*="job-description"]`,
	`[id*="description"]`,
	`[class*="posting"]`,
	`[class*="content"]`,
	"article",
	"main",
}

// ExtractJobText parses HTML and returns the job-description text. It
// strips script, style, nav, header and footer elements, probes the
// description selectors, and falls back to the full body text when no
// selector yields enough content.
func ExtractJobText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, nav, header, footer").Remove()

	var text string
	for _, selector := range descriptionSelectors {
		sel := doc.Find(selector)
		if sel.Length() == 0 {
			continue
		}
		candidate := strings.TrimSpace(sel.First().Text())
		if len(candidate) > minSelectorTextLen {
			text = candidate
			break
		}
	}
	if text == "" {
		text = strings.TrimSpace(doc.Find("body").Text())
	}

	return Truncate(CleanText(text), MaxDescriptionLen), nil
}

// CleanText collapses runs of spaces and tabs to single spaces within
// each line and runs of three or more newlines to exactly two, so
// paragraph breaks survive extraction.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	text = strings.Join(lines, "\n")

	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(text)
}

// Truncate caps text at max bytes.
func Truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max]
}
