package translator

import (
	"context"
	"errors"

	"github.com/Spring-Mustache/translate-srt/internal/media"
	"github.com/Spring-Mustache/translate-srt/internal/subtitle"
)

// Translator sends one batch of cues to the translation service and returns
// the speaker-attributed, three-language result items.
type Translator interface {
	TranslateBatch(
		ctx context.Context,
		entries []subtitle.Entry,
		continuityHint string,
		payload *media.Payload,
	) ([]subtitle.TranslatedEntry, error)
}

// ErrMalformedResponse marks a response body that was missing or did not
// parse as the required structured array. Distinguished from transport-level
// failures so the scheduler can classify the abort.
var ErrMalformedResponse = errors.New("malformed translation response")

// Config holds the Gemini client settings.
type Config struct {
	APIKey      string
	APIURL      string
	Model       string
	Timeout     int // seconds, per-request; expiry counts as batch failure
	Temperature float64
	// SourceLanguage names the detected source language in the prompt.
	// Empty means the prompt leaves the source side open.
	SourceLanguage string
}

// Validate checks required client settings.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("GEMINI_API_KEY is required")
	}
	if c.Model == "" {
		return errors.New("model is required")
	}
	return nil
}
