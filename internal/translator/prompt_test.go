package translator

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSystemPrompt_ContinuityHint(t *testing.T) {
	t.Parallel()

	prompt := buildSystemPrompt("Korean", "Nam 1, Nữ 1", true)
	assert.Contains(t, prompt, "Korean")
	assert.Contains(t, prompt, "Nam 1, Nữ 1")
	assert.Contains(t, prompt, "Reuse these exact labels")
	assert.Contains(t, prompt, "attached video")
}

func TestBuildSystemPrompt_LiteModeNoHint(t *testing.T) {
	t.Parallel()

	prompt := buildSystemPrompt("", "", false)
	assert.NotContains(t, prompt, "Speakers already identified")
	assert.NotContains(t, prompt, "attached video")
	assert.Contains(t, prompt, "dialogue context alone")
	assert.Contains(t, prompt, "role-plus-index")
}

func TestBuildUserMessage(t *testing.T) {
	t.Parallel()

	msg, err := buildUserMessage([]batchItem{
		{ID: "1", TimeRange: "00:00:01,000 --> 00:00:02,000", Text: "Hello"},
	})
	require.NoError(t, err)

	payload := strings.TrimPrefix(msg, "Translate the following subtitle cues:\n")
	var decoded struct {
		Cues []batchItem `json:"cues"`
	}
	require.NoError(t, json.Unmarshal([]byte(payload), &decoded))
	require.Len(t, decoded.Cues, 1)
	assert.Equal(t, "1", decoded.Cues[0].ID)
	assert.Equal(t, "Hello", decoded.Cues[0].Text)
}

func TestResponseSchema_SixRequiredFields(t *testing.T) {
	t.Parallel()

	schema := responseSchema()
	assert.Equal(t, "ARRAY", schema["type"])

	items := schema["items"].(map[string]any)
	required := items["required"].([]string)
	assert.ElementsMatch(t,
		[]string{"id", "timeRange", "speaker", "vietnamese", "english", "chinese"},
		required)

	properties := items["properties"].(map[string]any)
	assert.Len(t, properties, 6)
}
