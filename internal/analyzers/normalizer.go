package analyzers

import (
	"regexp"
	"strings"
)

// normalizationRule rewrites a concrete endpoint shape to its canonical
// template.
type normalizationRule struct {
	pattern  *regexp.Regexp
	template string
}

// normalizationRules is evaluated in order and stops at the FIRST matching
// rule, so specific shapes must precede generic ones (the bare graph id
// rule would otherwise swallow /123/achievements).
var normalizationRules = []normalizationRule{
	{regexp.MustCompile(`(graph/v[0-9.]+)/[0-9]+/achievements$`), `${1}/<id>/achievements`},
	{regexp.MustCompile(`(graph/v[0-9.]+)/[0-9]+/friends$`), `${1}/<id>/friends`},
	{regexp.MustCompile(`(graph/v[0-9.]+)/[0-9]+/feed$`), `${1}/<id>/feed`},
	{regexp.MustCompile(`(graph/v[0-9.]+)/[0-9]+$`), `${1}/<id>`},
	{regexp.MustCompile(`(api/v[0-9.]+/users)/[0-9]+$`), `${1}/<id>`},
	{regexp.MustCompile(`(api/v[0-9.]+/posts)/[0-9]+$`), `${1}/<id>`},
	{regexp.MustCompile(`(recommendation/v[0-9.]+/games)/[A-Za-z0-9_-]+$`), `${1}/<slug>`},
	{regexp.MustCompile(`(search/v[0-9.]+/users)/[0-9]+$`), `${1}/<id>`},
}

// NormalizeURL reduces a request URL to its canonical endpoint shape:
// everything from the first "?" is dropped, one trailing "/" is stripped,
// then the first matching rule's template is applied. A URL matching no
// rule is returned as-is after the stripping steps.
func NormalizeURL(url string) string {
	if i := strings.Index(url, "?"); i >= 0 {
		url = url[:i]
	}
	url = strings.TrimSuffix(url, "/")

	for _, rule := range normalizationRules {
		if rule.pattern.MatchString(url) {
			return rule.pattern.ReplaceAllString(url, rule.template)
		}
	}
	return url
}
