package markdown

import (
	netHTML "html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// SummaryWordLimit caps derived summaries, roughly two or three sentences.
const SummaryWordLimit = 50

var stripTags = bluemonday.StrictPolicy()

// Summarize derives a plain-text summary from rendered HTML, for documents
// whose front matter carries no description. Tags are stripped and the text
// truncated at a word boundary.
func Summarize(content template.HTML, maxWords int) string {
	text := stripTags.Sanitize(string(content))
	// The strict policy escapes entities on the way out; undo that so the
	// summary is plain text and gets escaped exactly once at render time.
	text = netHTML.UnescapeString(text)

	words := strings.Fields(text)
	if len(words) <= maxWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:maxWords], " ") + " …"
}
