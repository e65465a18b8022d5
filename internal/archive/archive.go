// Package archive moves previous export outputs aside before a fresh run.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ArchiveOutputs moves the output directory into a timestamped archive next
// to it. The next export then starts from a clean directory while older
// decks and media stay recoverable.
func ArchiveOutputs(outputDir string) error {
	if _, err := os.Stat(outputDir); os.IsNotExist(err) {
		return fmt.Errorf("output directory does not exist: %s", outputDir)
	}

	parentDir := filepath.Dir(outputDir)
	archiveDir := filepath.Join(parentDir, "archive")

	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	archiveName := fmt.Sprintf("%s-%s", filepath.Base(outputDir), timestamp)
	archivePath := filepath.Join(archiveDir, archiveName)

	if _, err := os.Stat(archivePath); err == nil {
		// Same-second rerun, disambiguate with microseconds.
		timestamp = time.Now().Format("20060102-150405.000000")
		archiveName = fmt.Sprintf("%s-%s", filepath.Base(outputDir), timestamp)
		archivePath = filepath.Join(archiveDir, archiveName)
	}

	if err := os.Rename(outputDir, archivePath); err != nil {
		return fmt.Errorf("failed to archive output directory: %w", err)
	}

	fmt.Printf("Output directory archived to: %s\n", archivePath)
	return nil
}
