// Package batch loads sentence lists from input files for deck assembly.
package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultCSVColumn is the column sentences are read from when the caller
// does not name one.
const DefaultCSVColumn = "sentence"

// sentenceEnd splits article text on terminal punctuation followed by
// whitespace.
var sentenceEnd = regexp.MustCompile(`[.?!]\s+`)

// LoadSentences reads sentences from a .txt or .csv file. Text files hold
// either one sentence per line or a whole article; CSV files contribute the
// named column. Blank entries are dropped.
func LoadSentences(path, csvColumn string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open sentence file: %w", err)
	}

	switch filepath.Ext(path) {
	case ".csv":
		if csvColumn == "" {
			csvColumn = DefaultCSVColumn
		}
		return loadFromCSV(path, csvColumn)
	case ".txt":
		return loadFromText(path)
	default:
		return nil, fmt.Errorf("unsupported file type %q, use .txt or .csv", filepath.Ext(path))
	}
}

func loadFromCSV(path, column string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columnIndex := -1
	for i, name := range header {
		if strings.TrimPrefix(strings.TrimSpace(name), "\uFEFF") == column {
			columnIndex = i
			break
		}
	}
	if columnIndex == -1 {
		return nil, fmt.Errorf("column %q not found in %s, found: %v", column, path, header)
	}

	var sentences []string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			// A malformed row loses only itself, not the rows after it.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if columnIndex >= len(record) {
			continue
		}
		if sentence := strings.TrimSpace(record[columnIndex]); sentence != "" {
			sentences = append(sentences, sentence)
		}
	}
	return sentences, nil
}

// loadFromText handles both one-sentence-per-line files and whole articles.
// A file with more than one newline per hundred characters is treated as
// line-oriented; anything denser is split on sentence punctuation.
func loadFromText(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read text file: %w", err)
	}
	content := strings.TrimPrefix(string(data), "\uFEFF")

	lines := strings.Split(content, "\n")
	if float64(len(lines)) > float64(len(content))/100 {
		return collectNonBlank(lines), nil
	}

	return collectNonBlank(sentenceEnd.Split(content, -1)), nil
}

func collectNonBlank(parts []string) []string {
	var sentences []string
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}
