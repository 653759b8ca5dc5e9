package subtitle

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Serialize renders the entries back into SRT text for one target language.
//
// Each cue keeps its original id and time range verbatim, so serializing
// parse-derived entries reproduces those lines exactly. The speaker prefix is
// included only when the service assigned one.
func Serialize(entries []TranslatedEntry, lang Language) string {
	blocks := make([]string, 0, len(entries))
	for _, entry := range entries {
		text := entry.Translation(lang)
		if entry.Speaker != "" {
			text = fmt.Sprintf("[%s] %s", entry.Speaker, text)
		}
		blocks = append(blocks, fmt.Sprintf("%s\n%s\n%s", entry.ID, entry.TimeRange, text))
	}
	return strings.Join(blocks, "\n\n")
}

// ExportFileName returns the fixed per-language export name.
func ExportFileName(lang Language) string {
	return fmt.Sprintf("subtitle_%s.srt", lang)
}

// ExportMIMEType is recorded on export descriptors for download surfaces.
const ExportMIMEType = "text/srt"

// WriteFile writes one serialized track to disk.
func WriteFile(path string, entries []TranslatedEntry, lang Language) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	if _, err := writer.WriteString(Serialize(entries, lang)); err != nil {
		return fmt.Errorf("failed to write subtitle file: %w", err)
	}
	if _, err := writer.WriteString("\n"); err != nil {
		return fmt.Errorf("failed to write subtitle file: %w", err)
	}
	return nil
}
