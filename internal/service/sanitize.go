package service

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var iconClassPattern = regexp.MustCompile(`^[\w\- ]+$`)

// newIconPolicy allows emoji and plain text plus icon-font tags and https images.
func newIconPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowAttrs("class").Matching(iconClassPattern).OnElements("i", "span")
	p.AllowElements("i", "span")
	p.AllowAttrs("src").OnElements("img")
	p.AllowAttrs("alt").OnElements("img")
	p.AllowURLSchemes("https")
	p.RequireParseableURLs(true)
	return p
}

// IconSanitizer strips everything from a skill icon that could run script.
type IconSanitizer struct {
	policy *bluemonday.Policy
}

func NewIconSanitizer() *IconSanitizer {
	return &IconSanitizer{policy: newIconPolicy()}
}

func (s *IconSanitizer) Sanitize(icon string) string {
	return strings.TrimSpace(s.policy.Sanitize(icon))
}
