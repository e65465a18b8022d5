package anki

import (
	"fmt"
	"time"

	"github.com/phrasedeck/phrasedeck/internal/deck"
)

// noteTypeConfig builds the note type (model) for a deck's language pair:
// seven fields, a single card template and the shared styling.
func noteTypeConfig(d deck.Deck) map[string]interface{} {
	return map[string]interface{}{
		"id":    modelID(d.Languages),
		"name":  fmt.Sprintf("phrasedeck sentence card (%s)", d.Languages),
		"type":  0,
		"mod":   time.Now().Unix(),
		"usn":   -1,
		"sortf": 0,
		"did":   d.ID,
		"req":   [][]interface{}{{0, "all", []int{0}}},
		"vers":  []int{},
		"tags":  []string{},
		"latexPre": `\documentclass[12pt]{article}
\special{papersize=3in,5in}
\usepackage[utf8]{inputenc}
\usepackage{amssymb,amsmath}
\pagestyle{empty}
\setlength{\parindent}{0in}
\begin{document}`,
		"latexPost": `\end{document}`,
		"flds": []map[string]interface{}{
			fieldConfig("Sentence", 0, 20),
			fieldConfig("Translation", 1, 20),
			fieldConfig("WordBreakdown", 2, 16),
			fieldConfig("Audio", 3, 20),
			fieldConfig("GrammarNotes", 4, 16),
			fieldConfig("Tags", 5, 14),
			fieldConfig("SentenceId", 6, 12),
		},
		"tmpls": []map[string]interface{}{
			{
				"name":  "Card 1",
				"ord":   0,
				"qfmt":  frontTemplate,
				"afmt":  backTemplate,
				"did":   nil,
				"bqfmt": "",
				"bafmt": "",
			},
		},
		"css": cardCSS,
	}
}

func fieldConfig(name string, ord, size int) map[string]interface{} {
	return map[string]interface{}{
		"name":   name,
		"ord":    ord,
		"sticky": false,
		"rtl":    false,
		"font":   "Arial",
		"size":   size,
		"media":  []string{},
	}
}

const frontTemplate = `<div class="card-container">
<div class="sentence">{{Sentence}}</div>
{{#Audio}}
<div class="audio">{{Audio}}</div>
{{/Audio}}
</div>`

const backTemplate = `{{FrontSide}}

<hr id="answer">

<div class="card-container">
<div class="translation">{{Translation}}</div>
{{#WordBreakdown}}
<div class="breakdown">
<div class="section-title">Word breakdown</div>
{{WordBreakdown}}
</div>
{{/WordBreakdown}}
{{#GrammarNotes}}
<div class="grammar">
<div class="section-title">Grammar notes</div>
{{GrammarNotes}}
</div>
{{/GrammarNotes}}
</div>`

const cardCSS = `.card {
  font-family: Arial, sans-serif;
  font-size: 18px;
  line-height: 1.6;
  text-align: center;
  color: #2c3e50;
  background-color: white;
}

.card-container {
  padding: 20px;
  max-width: 600px;
  margin: 0 auto;
}

.sentence {
  font-size: 28px;
  font-weight: 600;
  margin: 20px 0;
}

.translation {
  font-size: 22px;
  font-weight: 500;
  color: #27ae60;
  margin: 20px 0;
}

.audio {
  margin: 15px 0;
}

.breakdown, .grammar {
  margin-top: 20px;
  text-align: left;
  background: #f8f9fa;
  padding: 16px;
  border-radius: 8px;
  font-size: 15px;
}

.grammar {
  background: #fff9e6;
  border-left: 4px solid #f39c12;
}

.section-title {
  font-size: 14px;
  font-weight: 700;
  color: #495057;
  margin-bottom: 10px;
  text-transform: uppercase;
}

.breakdown b {
  color: #3498db;
}

.native-definition {
  font-style: italic;
  color: #555;
  padding-left: 15px;
  font-size: 0.95em;
}

hr#answer {
  margin: 30px 0;
  border: 0;
  border-top: 1px solid #ecf0f1;
}`
