package translator

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Spring-Mustache/translate-srt/internal/media"
	"github.com/Spring-Mustache/translate-srt/internal/subtitle"
	"github.com/Spring-Mustache/translate-srt/pkg/log"
)

const defaultAPIBase = "https://generativelanguage.googleapis.com/v1beta/models"

// GeminiTranslator talks to the Gemini generateContent endpoint with a
// structured-output schema and an optional inline media part.
type GeminiTranslator struct {
	config     *Config
	httpClient *http.Client
	baseURL    string
}

// NewGeminiTranslator creates a new Gemini-backed translator.
func NewGeminiTranslator(config *Config) (*GeminiTranslator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	baseURL := config.APIURL
	if baseURL == "" {
		baseURL = defaultAPIBase
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 300
	}

	return &GeminiTranslator{
		config:  config,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}, nil
}

// TranslateBatch sends one batch and parses the structured result.
//
// The same payload pointer is passed for every batch of a full-mode run; a
// nil payload means lite mode. Returned ids are reconciled against the input
// and mismatches are logged as data-quality warnings, never silently
// accepted.
func (g *GeminiTranslator) TranslateBatch(
	ctx context.Context,
	entries []subtitle.Entry,
	continuityHint string,
	payload *media.Payload,
) ([]subtitle.TranslatedEntry, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	items := make([]batchItem, len(entries))
	for i, entry := range entries {
		items[i] = batchItem{ID: entry.ID, TimeRange: entry.TimeRange, Text: entry.Text}
	}

	userMessage, err := buildUserMessage(items)
	if err != nil {
		return nil, err
	}

	// media part goes first so the model sees the video before the cues
	var parts []map[string]any
	if payload != nil {
		parts = append(parts, map[string]any{
			"inline_data": map[string]any{
				"mime_type": payload.MimeType,
				"data":      base64.StdEncoding.EncodeToString(payload.Data),
			},
		})
	}
	parts = append(parts, map[string]any{"text": userMessage})

	reqBody := map[string]any{
		"system_instruction": map[string]any{
			"parts": []map[string]any{
				{"text": buildSystemPrompt(g.config.SourceLanguage, continuityHint, payload != nil)},
			},
		},
		"contents": []map[string]any{
			{"parts": parts},
		},
		"generationConfig": map[string]any{
			"temperature":      g.config.Temperature,
			"responseMimeType": "application/json",
			"responseSchema":   responseSchema(),
		},
	}

	body, err := g.generateContent(ctx, reqBody)
	if err != nil {
		return nil, err
	}

	translated, err := parseBatchResponse(body)
	if err != nil {
		return nil, err
	}

	reconcile(entries, translated)
	return translated, nil
}

// generateContent performs the HTTP round trip and extracts the first
// candidate's text.
func (g *GeminiTranslator) generateContent(ctx context.Context, reqBody map[string]any) (string, error) {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent", g.baseURL, g.config.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.config.APIKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("translation API error (status %d): %s", resp.StatusCode, string(responseBody))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
			FinishReason string `json:"finishReason"`
		} `json:"candidates"`
		PromptFeedback struct {
			BlockReason string `json:"blockReason"`
		} `json:"promptFeedback"`
	}
	if err := json.Unmarshal(responseBody, &geminiResp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		if geminiResp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("translation blocked: %s", geminiResp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("%w: empty response", ErrMalformedResponse)
	}

	if fr := geminiResp.Candidates[0].FinishReason; fr != "" && fr != "STOP" {
		log.Warn("translation finished with reason %s", fr)
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}

// parseBatchResponse decodes the candidate text as the schema's array.
func parseBatchResponse(text string) ([]subtitle.TranslatedEntry, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty candidate text", ErrMalformedResponse)
	}

	var translated []subtitle.TranslatedEntry
	if err := json.Unmarshal([]byte(trimmed), &translated); err != nil {
		// some models wrap the array in prose; salvage the bracketed slice
		start := strings.Index(trimmed, "[")
		end := strings.LastIndex(trimmed, "]")
		if start < 0 || end <= start {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		if err2 := json.Unmarshal([]byte(trimmed[start:end+1]), &translated); err2 != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err2)
		}
	}

	return translated, nil
}

// reconcile compares returned ids with the batch's input ids and reports
// missing, extra, or reordered items as warnings.
func reconcile(entries []subtitle.Entry, translated []subtitle.TranslatedEntry) {
	if len(translated) != len(entries) {
		log.Warn("translation count mismatch: sent %d cues, got %d items", len(entries), len(translated))
	}

	expected := make(map[string]int, len(entries))
	for _, entry := range entries {
		expected[entry.ID]++
	}

	ordered := true
	for i, item := range translated {
		if count := expected[item.ID]; count > 0 {
			expected[item.ID] = count - 1
		} else {
			log.Warn("translation returned unknown cue id %q", item.ID)
		}
		if i < len(entries) && entries[i].ID != item.ID {
			ordered = false
		}
	}
	for id, count := range expected {
		if count > 0 {
			log.Warn("translation missing %d item(s) for cue id %q", count, id)
		}
	}
	if !ordered {
		log.Warn("translation items arrived out of input order")
	}
}
