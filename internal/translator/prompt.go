package translator

import (
	"encoding/json"
	"fmt"
	"strings"
)

// batchItem is the structured form of one cue inside the user message.
type batchItem struct {
	ID        string `json:"id"`
	TimeRange string `json:"timeRange"`
	Text      string `json:"text"`
}

// buildSystemPrompt describes the task: identify the speaking voice from
// whatever modality is available, keep names stable across batches via the
// continuity hint, and translate every cue into the three fixed targets.
func buildSystemPrompt(sourceLanguage, continuityHint string, mediaAttached bool) string {
	var prompt strings.Builder

	prompt.WriteString("You are a professional subtitle translation expert specializing in multilingual media localization.\n\n")

	prompt.WriteString("=== TASK ===\n")
	if sourceLanguage != "" {
		prompt.WriteString(fmt.Sprintf("The subtitle cues below are in %s.\n", sourceLanguage))
	}
	prompt.WriteString("For every cue:\n")
	prompt.WriteString("1. Identify the speaking character.")
	if mediaAttached {
		prompt.WriteString(" Use the attached video (voice, lip movement, on-screen context) to tell speakers apart.\n")
	} else {
		prompt.WriteString(" Infer the speaker from the dialogue context alone.\n")
	}
	prompt.WriteString("2. Translate the cue text into Vietnamese, English, and Simplified Chinese.\n")

	prompt.WriteString("\n=== SPEAKER NAMING ===\n")
	if continuityHint != "" {
		prompt.WriteString("Speakers already identified in earlier parts of this video: " + continuityHint + "\n")
		prompt.WriteString("Reuse these exact labels whenever the same character speaks again.\n")
	}
	prompt.WriteString("When a character's name is unknown, assign a generic role-plus-index label ")
	prompt.WriteString("(for example \"Nam 1\" for the first unnamed man, \"Nữ 2\" for the second unnamed woman) ")
	prompt.WriteString("and keep it consistent. Leave the speaker field empty only when no voice can be attributed.\n")

	prompt.WriteString("\n=== OUTPUT FORMAT ===\n")
	prompt.WriteString("Return a JSON array with exactly one object per input cue, in input order.\n")
	prompt.WriteString("Echo the id and timeRange fields of each cue unchanged.\n")
	prompt.WriteString("Every translation field must be a non-empty rendering of the cue for that language.\n")
	prompt.WriteString("Do not include any explanations, notes, or additional text.\n")

	return prompt.String()
}

// buildUserMessage serializes the batch's cues as structured data.
func buildUserMessage(items []batchItem) (string, error) {
	payload, err := json.Marshal(struct {
		Cues []batchItem `json:"cues"`
	}{Cues: items})
	if err != nil {
		return "", fmt.Errorf("failed to marshal batch cues: %w", err)
	}
	return "Translate the following subtitle cues:\n" + string(payload), nil
}

// responseSchema is the strict output contract: an array of objects with the
// six result fields, all required strings.
func responseSchema() map[string]any {
	fields := []string{"id", "timeRange", "speaker", "vietnamese", "english", "chinese"}
	properties := make(map[string]any, len(fields))
	for _, field := range fields {
		properties[field] = map[string]any{"type": "STRING"}
	}
	return map[string]any{
		"type": "ARRAY",
		"items": map[string]any{
			"type":       "OBJECT",
			"properties": properties,
			"required":   fields,
		},
	}
}
