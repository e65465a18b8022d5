package deepl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/translate", r.URL.Path)
		assert.Equal(t, "DeepL-Auth-Key test-key", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "Je mange une pomme.", r.PostForm.Get("text"))
		assert.Equal(t, "FR", r.PostForm.Get("source_lang"))
		assert.Equal(t, "EN", r.PostForm.Get("target_lang"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"translations": [{"text": "I eat an apple.", "detected_source_language": "FR"}]}`))
	}))
	defer server.Close()

	translator := NewTranslator("test-key", server.URL)
	defer translator.Close()

	tr, err := translator.Translate(context.Background(), "Je mange une pomme.", "fr", "en")
	require.NoError(t, err)
	assert.Equal(t, "I eat an apple.", tr.Text)
	assert.Equal(t, "en", tr.TargetLanguage)
	assert.Equal(t, "deepl", tr.Provider)
}

func TestTranslateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "quota exceeded"}`, http.StatusForbidden)
	}))
	defer server.Close()

	translator := NewTranslator("test-key", server.URL)
	defer translator.Close()

	_, err := translator.Translate(context.Background(), "Bonjour", "fr", "en")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestTranslateEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"translations": []}`))
	}))
	defer server.Close()

	translator := NewTranslator("test-key", server.URL)
	defer translator.Close()

	_, err := translator.Translate(context.Background(), "Bonjour", "fr", "en")
	assert.Error(t, err)
}
