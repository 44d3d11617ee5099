package service

import (
	"fmt"
	"regexp"
)

// HighlightSearchTerms wraps case-insensitive occurrences of the query in
// <mark> tags, preserving the original casing of the matched text. An empty
// query returns the text unchanged.
func HighlightSearchTerms(text, query string) string {
	if query == "" || text == "" {
		return text
	}

	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(query))
	if err != nil {
		return text
	}

	return re.ReplaceAllStringFunc(text, func(match string) string {
		return fmt.Sprintf("<mark>%s</mark>", match)
	})
}
