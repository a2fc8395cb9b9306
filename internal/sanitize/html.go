// Package sanitize restricts rich-text article bodies to a small HTML subset.
//
// The policy keeps paragraphs, line breaks, basic emphasis, hyperlinks, lists,
// headings h1-h4, blockquotes, preformatted blocks and inline code. Only <a>
// keeps attributes (href and title). Everything else loses its tags while
// keeping its text, with one exception inherited from bluemonday: the bodies of
// raw-text elements such as <script>, <style>, <iframe> and <noscript> are
// dropped together with the tags.
package sanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

// AllowedElements lists the tags that survive sanitization.
var AllowedElements = []string{
	"p", "br", "strong", "em", "u", "a",
	"ul", "ol", "li",
	"h1", "h2", "h3", "h4",
	"blockquote", "pre", "code",
}

// Sanitizer cleans untrusted HTML.
type Sanitizer interface {
	Sanitize(raw string) string
}

// HTML is the article body sanitizer. It is safe for concurrent use.
type HTML struct {
	policy *bluemonday.Policy
}

// NewHTML builds the article body policy.
func NewHTML() *HTML {
	p := bluemonday.NewPolicy()
	p.AllowElements(AllowedElements...)
	p.AllowAttrs("href", "title").OnElements("a")

	// Link targets must parse and be relative or http(s)/mailto. rel="nofollow"
	// is not injected: the attribute set on <a> stays exactly href and title.
	p.RequireParseableURLs(true)
	p.AllowRelativeURLs(true)
	p.AllowURLSchemes("http", "https", "mailto")

	return &HTML{policy: p}
}

// Sanitize returns raw restricted to the allow-list. It never fails and is
// idempotent.
func (h *HTML) Sanitize(raw string) string {
	if raw == "" {
		return raw
	}
	return h.policy.Sanitize(raw)
}

var defaultHTML = NewHTML()

// String sanitizes raw with the shared article body policy.
func String(raw string) string {
	return defaultHTML.Sanitize(raw)
}
