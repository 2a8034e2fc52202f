package analyzers

import "strings"

// classificationRule maps a URL substring to a backend service tag.
type classificationRule struct {
	substring string
	service   string
}

// classificationRules is evaluated in order with every matching rule
// overwriting the previous result, so the LAST matching rule wins. A URL
// containing both "search" and "titan" therefore classifies as titan. This
// override order is the contract; do not convert to first-match.
var classificationRules = []classificationRule{
	{"api/", "jarvis"},
	{"graph/v", "pepper"},
	{"recommendation/v", "vision"},
	{"search", "pym"},
	{"titan", "titan"},
}

// ClassifyService returns the service tag for a URL, or "" when no rule
// matches.
func ClassifyService(url string) string {
	service := ""
	for _, rule := range classificationRules {
		if strings.Contains(url, rule.substring) {
			service = rule.service
		}
	}
	return service
}
