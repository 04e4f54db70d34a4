package sanitize

import "github.com/microcosm-cc/bluemonday"

// Sanitizer neutralizes script-capable markup in user-supplied rich text
// while letting a small formatting and block subset through unchanged. It is
// idempotent: already-sanitized text passes through untouched, so it is only
// applied on the write path.
type Sanitizer struct {
	policy *bluemonday.Policy
}

func New() *Sanitizer {
	p := bluemonday.NewPolicy()

	// Formatting subset.
	p.AllowElements("b", "i", "u", "em", "strong", "s", "sub", "sup", "br")
	// Block subset.
	p.AllowElements("p", "div", "blockquote", "ul", "ol", "li")
	p.AllowElements("h1", "h2", "h3", "h4", "h5", "h6")

	return &Sanitizer{policy: p}
}

// Sanitize strips script tags (and their bodies), event handler attributes
// and javascript: URIs; disallowed tags are dropped, their text kept.
func (s *Sanitizer) Sanitize(raw string) string {
	return s.policy.Sanitize(raw)
}
