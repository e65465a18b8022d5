// Package processor wires configuration, providers, assemblers and
// exporters into the flashcard pipeline. It is the coordinator the CLI and
// the HTTP server drive: single cards, whole decks from sentence files, and
// the final Anki export.
package processor
