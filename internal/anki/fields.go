package anki

import (
	"fmt"
	"html"
	"strings"

	"github.com/phrasedeck/phrasedeck/internal/card"
)

// formatBreakdown renders the word-by-word analysis as HTML. An empty
// breakdown renders as an empty string so the template section collapses.
func formatBreakdown(breakdown card.WordBreakdown) string {
	if len(breakdown.Words) == 0 {
		return ""
	}

	var lines []string
	for _, w := range breakdown.Words {
		line := fmt.Sprintf("<b>%s</b>", html.EscapeString(w.Text))
		if w.POS != "" {
			line += fmt.Sprintf(" <span class='pos'>(%s)</span>", html.EscapeString(w.POS))
		}
		line += ": " + html.EscapeString(w.Definition)
		lines = append(lines, line)

		if w.NativeDefinition != "" {
			lines = append(lines, fmt.Sprintf("<div class='native-definition'>%s</div>",
				html.EscapeString(w.NativeDefinition)))
		}
	}
	return strings.Join(lines, "<br>")
}

// formatGrammarNotes renders grammar notes as a bulleted HTML list.
func formatGrammarNotes(notes []card.GrammarNote) string {
	if len(notes) == 0 {
		return ""
	}

	var lines []string
	for _, n := range notes {
		lines = append(lines, fmt.Sprintf("&bull; <strong>%s:</strong> %s",
			html.EscapeString(n.Title), html.EscapeString(n.Explanation)))
		for _, example := range n.Examples {
			lines = append(lines, fmt.Sprintf("<em>Example: %s</em>", html.EscapeString(example)))
		}
	}
	return strings.Join(lines, "<br>")
}
