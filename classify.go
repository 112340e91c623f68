package assistant

import (
	"net/url"
	"strings"
)

// contentTypeRule pairs a predicate with the content type it assigns.
// Rules are evaluated in order against the lowercased title and URL; the
// first match wins. Keeping the rules in a table lets tests enumerate
// coverage directly.
type contentTypeRule struct {
	match       func(title, url string) bool
	contentType ContentType
}

func containsEither(title, url, needle string) bool {
	return strings.Contains(title, needle) || strings.Contains(url, needle)
}

// contentTypeRules is ordered from most to least specific.
var contentTypeRules = []contentTypeRule{
	{func(t, u string) bool { return containsEither(t, u, "tutorial") }, TypeTutorial},
	{func(t, u string) bool { return containsEither(t, u, "guide") }, TypeGuide},
	{func(t, u string) bool {
		return containsEither(t, u, "api") || strings.Contains(t, "reference")
	}, TypeAPI},
	{func(t, u string) bool {
		return strings.Contains(t, "how") && strings.Contains(t, "to")
	}, TypeHowTo},
	{func(t, u string) bool { return containsEither(t, u, "faq") }, TypeFAQ},
	{func(t, u string) bool { return containsEither(t, u, "example") }, TypeExample},
}

// ClassifyContent determines the content type of a page from its URL and
// title using case-insensitive substring matching. Pages matching no
// rule default to TypeDocumentation.
func ClassifyContent(rawURL, title string) ContentType {
	titleLower := strings.ToLower(title)
	urlLower := strings.ToLower(rawURL)

	for _, rule := range contentTypeRules {
		if rule.match(titleLower, urlLower) {
			return rule.contentType
		}
	}
	return TypeDocumentation
}

// sectionStoplist contains path segments that carry no section meaning
// on the crawled sites (Confluence display prefixes, SimTK project
// paths).
var sectionStoplist = map[string]bool{
	"display":  true,
	"projects": true,
	"opensim":  true,
}

// DeriveSection extracts a section name from a URL path: the first
// segment not in the stoplist, with "+" and "%20" decoded to spaces.
// URLs with no usable segment yield "General".
func DeriveSection(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "General"
	}

	for _, part := range strings.Split(u.EscapedPath(), "/") {
		if part == "" || sectionStoplist[strings.ToLower(part)] {
			continue
		}
		part = strings.ReplaceAll(part, "+", " ")
		part = strings.ReplaceAll(part, "%20", " ")
		return part
	}
	return "General"
}
