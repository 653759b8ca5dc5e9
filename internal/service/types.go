package service

import (
	"github.com/Spring-Mustache/translate-srt/internal/media"
	"github.com/Spring-Mustache/translate-srt/internal/translator"
)

// Phase is the lifecycle position of one translation run.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseReading     Phase = "reading"
	PhaseBatching    Phase = "batching"
	PhaseTranslating Phase = "translating"
	PhaseDone        Phase = "done"
	PhaseFailed      Phase = "failed"
)

// Terminal reports whether the phase ends a run.
func (p Phase) Terminal() bool {
	return p == PhaseDone || p == PhaseFailed
}

// RunState is the process-wide state of one run. It is mutated only by the
// Runner's sequential batch loop; observers get value snapshots.
type RunState struct {
	Phase           Phase
	ProgressPercent int // 0-100, monotonically non-decreasing within a run
	StatusMessage   string
	MediaMode       media.Mode
}

// RunRequest describes one translation run.
type RunRequest struct {
	SubtitlePath string
	// VideoPath is optional; empty means a text-only run.
	VideoPath string
	// Decide resolves the one-shot large-media choice. nil declines.
	Decide media.DecisionFunc
}

// RunResult summarizes a completed run.
type RunResult struct {
	Entries    int
	Batches    int
	Speakers   []string
	SourceLang string
}

// TranslatorFactory builds the per-run translation client once the source
// language has been detected.
type TranslatorFactory func(sourceLanguage string) (translator.Translator, error)

// StateListener observes run-state snapshots. Last write wins; listeners
// must not block the batch loop.
type StateListener func(RunState)
