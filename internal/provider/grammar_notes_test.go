package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGrammarNotes(t *testing.T) {
	data := `{"notes": [
		{"title": "Present tense", "explanation": "'mange' is the present of 'manger'", "examples": ["Tu manges"]},
		{"title": "", "explanation": "untitled but valid"}
	]}`

	notes, err := ParseGrammarNotes([]byte(data))
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "Present tense", notes[0].Title)
	assert.Equal(t, []string{"Tu manges"}, notes[0].Examples)
	assert.Equal(t, "Grammar note", notes[1].Title)
}

func TestParseGrammarNotesStringEntries(t *testing.T) {
	data := `{"notes": ["the verb is in the imperfect tense"]}`

	notes, err := ParseGrammarNotes([]byte(data))
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "the verb is in the imperfect tense", notes[0].Explanation)
}

func TestParseGrammarNotesEmpty(t *testing.T) {
	notes, err := ParseGrammarNotes([]byte(`{"notes": []}`))
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestParseGrammarNotesRejectsGarbage(t *testing.T) {
	_, err := ParseGrammarNotes([]byte(`["not", "an", "object"]`))
	assert.Error(t, err)

	_, err = ParseGrammarNotes([]byte(`{"notes": [42]}`))
	assert.Error(t, err)
}
