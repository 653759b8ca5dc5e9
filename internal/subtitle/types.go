package subtitle

// Entry represents a single cue as parsed from an SRT track.
// ID is the cue's original sequence label, preserved verbatim even when the
// input is malformed. TimeRange is the raw timecode line; the pipeline treats
// it as opaque apart from display splitting at the arrow separator.
type Entry struct {
	ID        string
	TimeRange string
	Text      string
}

// TranslatedEntry is the service's output for one Entry. Created once when a
// batch response is accepted and never mutated afterwards.
type TranslatedEntry struct {
	ID         string `json:"id"`
	TimeRange  string `json:"timeRange"`
	Speaker    string `json:"speaker"`
	Vietnamese string `json:"vietnamese"`
	English    string `json:"english"`
	Chinese    string `json:"chinese"`
}

// Language identifies one of the fixed translation targets.
type Language string

const (
	LangVietnamese Language = "vietnamese"
	LangEnglish    Language = "english"
	LangChinese    Language = "chinese"
)

// TargetLanguages lists the translation targets in export order.
var TargetLanguages = []Language{LangVietnamese, LangEnglish, LangChinese}

// Translation returns the rendering of the entry for the given target.
func (e TranslatedEntry) Translation(lang Language) string {
	switch lang {
	case LangVietnamese:
		return e.Vietnamese
	case LangEnglish:
		return e.English
	case LangChinese:
		return e.Chinese
	}
	return ""
}
