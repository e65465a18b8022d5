package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/phrasedeck/phrasedeck/internal"
	"github.com/phrasedeck/phrasedeck/internal/card"
	"github.com/phrasedeck/phrasedeck/internal/deck"
	"github.com/phrasedeck/phrasedeck/internal/processor"
)

// CreateCardRequest is the body of POST /api/v1/cards.
type CreateCardRequest struct {
	Sentence string `json:"sentence"`
}

// WordResponse is one analyzed word in a card response.
type WordResponse struct {
	Text             string `json:"text"`
	Lemma            string `json:"lemma,omitempty"`
	POS              string `json:"pos,omitempty"`
	Definition       string `json:"definition"`
	NativeDefinition string `json:"native_definition,omitempty"`
	Pronunciation    string `json:"pronunciation,omitempty"`
}

// GrammarNoteResponse is one grammar note in a card response.
type GrammarNoteResponse struct {
	Title       string   `json:"title"`
	Explanation string   `json:"explanation"`
	Examples    []string `json:"examples,omitempty"`
}

// CardResponse is the JSON rendition of a finished card.
type CardResponse struct {
	ID           string                `json:"id"`
	Sentence     string                `json:"sentence"`
	Language     string                `json:"language"`
	Translation  string                `json:"translation"`
	Words        []WordResponse        `json:"words"`
	AudioFile    string                `json:"audio_file,omitempty"`
	GrammarNotes []GrammarNoteResponse `json:"grammar_notes,omitempty"`
	Tags         []string              `json:"tags"`
}

// CreateDeckRequest is the body of POST /api/v1/decks.
type CreateDeckRequest struct {
	Name      string   `json:"name"`
	Sentences []string `json:"sentences"`
	Format    string   `json:"format,omitempty"`
}

// DeckFailureResponse reports one sentence that did not become a card.
type DeckFailureResponse struct {
	Index    int    `json:"index"`
	Sentence string `json:"sentence"`
	Error    string `json:"error"`
}

// CreateDeckResponse reports the outcome of a synchronous deck build.
type CreateDeckResponse struct {
	Name      string                `json:"name"`
	File      string                `json:"file"`
	Requested int                   `json:"requested"`
	Succeeded int                   `json:"succeeded"`
	Failures  []DeckFailureResponse `json:"failures,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": internal.Version,
	})
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := s.proc.BuildCard(r.Context(), req.Sentence)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "card build failed", "error", err)
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, cardResponse(c))
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	var req CreateDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "deck name is required")
		return
	}
	if len(req.Sentences) == 0 {
		respondError(w, http.StatusBadRequest, "at least one sentence is required")
		return
	}

	outputPath, report, err := s.proc.BuildDeck(r.Context(), req.Name, req.Sentences, req.Format)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "deck build failed", "deck", req.Name, "error", err)
		respondError(w, statusForError(err), err.Error())
		return
	}

	resp := CreateDeckResponse{
		Name:      req.Name,
		File:      filepath.Base(outputPath),
		Requested: report.Requested,
		Succeeded: report.Succeeded,
	}
	for _, failure := range report.Failures {
		resp.Failures = append(resp.Failures, DeckFailureResponse{
			Index:    failure.Index,
			Sentence: failure.Sentence,
			Error:    failure.Err.Error(),
		})
	}

	respondJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleDownloadDeck(w http.ResponseWriter, r *http.Request) {
	name := internal.SanitizeFilename(chi.URLParam(r, "name"))

	for _, ext := range []string{processor.FormatAPKG, processor.FormatCSV} {
		path := filepath.Join(s.cfg.Storage.OutputDirectory, name+"."+ext)
		if _, err := os.Stat(path); err == nil {
			w.Header().Set("Content-Disposition", "attachment; filename="+name+"."+ext)
			http.ServeFile(w, r, path)
			return
		}
	}

	respondError(w, http.StatusNotFound, "deck not found")
}

func cardResponse(c card.Card) CardResponse {
	resp := CardResponse{
		ID:          c.ID,
		Sentence:    c.Sentence.Text,
		Language:    c.Sentence.Language,
		Translation: c.Translation.Text,
		Tags:        c.Tags,
	}
	for _, w := range c.Breakdown.Words {
		resp.Words = append(resp.Words, WordResponse{
			Text:             w.Text,
			Lemma:            w.Lemma,
			POS:              w.POS,
			Definition:       w.Definition,
			NativeDefinition: w.NativeDefinition,
			Pronunciation:    w.Pronunciation,
		})
	}
	if c.Audio != nil {
		resp.AudioFile = c.Audio.Filename
	}
	for _, note := range c.GrammarNotes {
		resp.GrammarNotes = append(resp.GrammarNotes, GrammarNoteResponse{
			Title:       note.Title,
			Explanation: note.Explanation,
			Examples:    note.Examples,
		})
	}
	return resp
}

// statusForError keeps caller mistakes apart from upstream failures.
func statusForError(err error) int {
	switch {
	case errors.Is(err, card.ErrInvalidSentence):
		return http.StatusBadRequest
	case errors.Is(err, deck.ErrAllCardsFailed),
		errors.Is(err, card.ErrTranslationFailed),
		errors.Is(err, card.ErrAnalysisFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
