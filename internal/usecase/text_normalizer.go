package usecase

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// maxContentChars bounds the content window handed to the generation
// service. Anything past this adds prompt cost without extraction signal.
const maxContentChars = 15000

// whitespaceRunPattern collapses whitespace runs to single spaces
var whitespaceRunPattern = regexp.MustCompile(`\s+`)

// tagPattern matches any remaining markup tag
var tagPattern = regexp.MustCompile(`<[^>]+>`)

// NormalizeText strips script and style blocks (including their content)
// and all remaining markup from HTML, collapses whitespace, trims, and
// truncates to the content window. Pure function, safe on invalid HTML.
func NormalizeText(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	doc.Find("script, style").Remove()

	rendered, err := doc.Html()
	if err != nil {
		return ""
	}

	// Tags become spaces so adjacent elements in minified markup don't
	// fuse into a single word.
	text := tagPattern.ReplaceAllString(rendered, " ")
	text = html.UnescapeString(text)
	text = whitespaceRunPattern.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	if len(text) > maxContentChars {
		cut := maxContentChars
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = strings.TrimSpace(text[:cut])
	}

	return text
}
