package subtitle

import (
	"strings"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
)

// Parse splits raw SRT text into entries.
//
// Line endings are normalized before splitting, blocks are separated by blank
// lines, and any block with fewer than three lines is dropped rather than
// reported. An empty result means the input held no usable cue; callers must
// treat that as invalid input, not as a successful parse.
func Parse(raw string) []Entry {
	normalized := normalize(raw)

	var entries []Entry
	for _, chunk := range strings.Split(normalized, "\n\n") {
		lines := strings.Split(strings.TrimSpace(chunk), "\n")
		if len(lines) < 3 {
			continue
		}
		entries = append(entries, Entry{
			ID:        strings.TrimSpace(lines[0]),
			TimeRange: strings.TrimSpace(lines[1]),
			Text:      strings.TrimSpace(strings.Join(lines[2:], "\n")),
		})
	}

	return entries
}

// normalize folds CRLF and bare CR line endings to LF and collapses runs of
// blank lines into a single block separator.
func normalize(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	for strings.Contains(s, "\n\n\n") {
		s = strings.ReplaceAll(s, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(s)
}

// DetectLanguage guesses the dominant source language of the parsed entries.
// Used to name the source language in the translation prompt.
func DetectLanguage(entries []Entry) language.Tag {
	if len(entries) == 0 {
		return language.Und
	}

	langMap := make(map[string]int)
	for _, entry := range entries {
		lang := whatlanggo.DetectLang(entry.Text).Iso6391()
		langMap[lang]++
	}

	var topLang string
	var topCount int
	for lang, count := range langMap {
		if count > topCount {
			topLang = lang
			topCount = count
		}
	}

	return language.All.Make(topLang)
}
