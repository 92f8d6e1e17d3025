package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// SummaryText strips the markup TVmaze embeds in show summaries and returns plain text,
// cut to at most maxRunes runes (with an ellipsis) when maxRunes is positive.
func SummaryText(summary *string, maxRunes int) string {
	if summary == nil || *summary == "" {
		return ""
	}

	text := *summary
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(*summary))
	if err == nil {
		text = doc.Text()
	}
	text = strings.Join(strings.Fields(text), " ")

	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:maxRunes])) + "…"
}
