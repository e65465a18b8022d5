package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrasedeck/phrasedeck/internal/config"
	"github.com/phrasedeck/phrasedeck/internal/processor"
	"github.com/phrasedeck/phrasedeck/internal/testutil"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		Languages: config.LanguagesConfig{Source: "fr", Target: "en"},
		Storage: config.StorageConfig{
			MediaDirectory:  filepath.Join(dir, "media"),
			OutputDirectory: dir,
		},
		Deck:   config.DeckConfig{MaxInFlight: 2, Audio: true, Grammar: true},
		Server: config.ServerConfig{Address: ":0"},
	}

	logger := slog.New(slog.DiscardHandler)
	proc := processor.NewWithPorts(cfg, processor.Ports{
		Translator: &testutil.MockTranslator{},
		Dictionary: &testutil.MockDictionary{},
		Audio:      &testutil.MockAudio{},
		Grammar:    &testutil.MockGrammar{},
		Storage:    &testutil.MockStorage{},
	}, logger)

	return New(cfg, proc, logger)
}

func postJSON(t *testing.T, handler http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestServer(t).Router()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["version"])
}

func TestCreateCard(t *testing.T) {
	router := newTestServer(t).Router()

	rec := postJSON(t, router, "/api/v1/cards", CreateCardRequest{Sentence: "Je mange une pomme."})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp CardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Je mange une pomme.", resp.Sentence)
	assert.Equal(t, "fr", resp.Language)
	assert.NotEmpty(t, resp.Translation)
	assert.NotEmpty(t, resp.Words)
}

func TestCreateCardRejectsBlankSentence(t *testing.T) {
	router := newTestServer(t).Router()

	rec := postJSON(t, router, "/api/v1/cards", CreateCardRequest{Sentence: "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateCardRejectsMalformedBody(t *testing.T) {
	router := newTestServer(t).Router()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cards", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateDeckAndDownload(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()

	rec := postJSON(t, router, "/api/v1/decks", CreateDeckRequest{
		Name:      "French Practice",
		Sentences: []string{"Je mange une pomme.", "Il pleut."},
		Format:    "csv",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp CreateDeckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Requested)
	assert.Equal(t, 2, resp.Succeeded)
	assert.Empty(t, resp.Failures)
	assert.Equal(t, "French_Practice.csv", resp.File)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/decks/French%20Practice/download", nil)
	download := httptest.NewRecorder()
	router.ServeHTTP(download, req)
	assert.Equal(t, http.StatusOK, download.Code)
	assert.Contains(t, download.Header().Get("Content-Disposition"), "French_Practice.csv")
}

func TestCreateDeckValidation(t *testing.T) {
	router := newTestServer(t).Router()

	rec := postJSON(t, router, "/api/v1/decks", CreateDeckRequest{Sentences: []string{"x"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, router, "/api/v1/decks", CreateDeckRequest{Name: "Deck"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDownloadUnknownDeck(t *testing.T) {
	router := newTestServer(t).Router()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/decks/nope/download", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
