package service

import (
	"fmt"
	"path/filepath"

	"github.com/Spring-Mustache/translate-srt/internal/subtitle"
)

// ExportFile describes one written export track.
type ExportFile struct {
	Path     string
	Language subtitle.Language
	MIMEType string
}

// Export writes one SRT file per target language into outputDir, from a
// snapshot of the store. It works on partial result sets too: results
// accumulated before a failed batch stay exportable.
func Export(store *ResultStore, outputDir string) ([]ExportFile, error) {
	entries := store.Snapshot()
	if len(entries) == 0 {
		return nil, NewError(ErrValidation, "no translated entries to export")
	}

	exports := make([]ExportFile, 0, len(subtitle.TargetLanguages))
	for _, lang := range subtitle.TargetLanguages {
		path := filepath.Join(outputDir, subtitle.ExportFileName(lang))
		if err := subtitle.WriteFile(path, entries, lang); err != nil {
			return nil, WrapError(err, ErrFileWrite, fmt.Sprintf("failed to export %s track", lang)).
				WithContext("path", path)
		}
		exports = append(exports, ExportFile{
			Path:     path,
			Language: lang,
			MIMEType: subtitle.ExportMIMEType,
		})
	}

	return exports, nil
}
