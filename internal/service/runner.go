package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sync"
	"sync/atomic"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/Spring-Mustache/translate-srt/internal/media"
	"github.com/Spring-Mustache/translate-srt/internal/speaker"
	"github.com/Spring-Mustache/translate-srt/internal/subtitle"
	"github.com/Spring-Mustache/translate-srt/internal/translator"
	"github.com/Spring-Mustache/translate-srt/pkg/log"
)

// Runner drives the batch translation pipeline for one run at a time:
// validate input, resolve the media mode once, then issue one translation
// request per batch in strict sequential order. Both result ordering and
// speaker continuity depend on there never being more than one in-flight
// batch.
type Runner struct {
	newTranslator TranslatorFactory
	batchSize     int

	store    *ResultStore
	registry *speaker.Registry

	mu      sync.RWMutex
	state   RunState
	onState StateListener
	running atomic.Bool
}

// NewRunner creates a Runner. batchSize <= 0 falls back to 50 cues per
// request.
func NewRunner(factory TranslatorFactory, batchSize int) *Runner {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &Runner{
		newTranslator: factory,
		batchSize:     batchSize,
		store:         NewResultStore(),
		registry:      speaker.NewRegistry(),
		state:         RunState{Phase: PhaseIdle, MediaMode: media.ModeLite},
	}
}

// OnStateChange registers a listener for run-state snapshots.
func (r *Runner) OnStateChange(fn StateListener) {
	r.mu.Lock()
	r.onState = fn
	r.mu.Unlock()
}

// State returns a snapshot of the current run state.
func (r *Runner) State() RunState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Results exposes the result store for exporters and observers.
func (r *Runner) Results() *ResultStore {
	return r.store
}

// Speakers returns the labels recorded so far, in first-seen order.
func (r *Runner) Speakers() []string {
	return r.registry.Known()
}

// Run executes one end-to-end translation run.
//
// The processing guard is advisory: a second Run while one is active fails
// immediately without touching the in-flight run. On failure the already
// accumulated results stay in the store and remain exportable.
func (r *Runner) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	if !r.running.CompareAndSwap(false, true) {
		return nil, NewError(ErrValidation, "a translation run is already active")
	}
	defer r.running.Store(false)

	r.store.Reset()
	r.registry.Reset()
	r.setState(RunState{Phase: PhaseIdle, MediaMode: media.ModeLite})

	result, err := r.run(ctx, req)
	if err != nil {
		r.updateState(func(s *RunState) {
			s.Phase = PhaseFailed
			s.StatusMessage = err.Error()
		})
		return nil, err
	}
	return result, nil
}

func (r *Runner) run(ctx context.Context, req RunRequest) (*RunResult, error) {
	// phase: reading
	r.updateState(func(s *RunState) {
		s.Phase = PhaseReading
		s.StatusMessage = "reading subtitle file"
	})

	if req.SubtitlePath == "" {
		return nil, NewError(ErrValidation, "no subtitle file selected")
	}
	raw, err := os.ReadFile(req.SubtitlePath)
	if err != nil {
		return nil, WrapError(err, ErrValidation, "failed to read subtitle file").
			WithContext("path", req.SubtitlePath)
	}

	entries := subtitle.Parse(string(raw))
	if len(entries) == 0 {
		return nil, NewError(ErrValidation, "subtitle file contains no valid cues").
			WithContext("path", req.SubtitlePath)
	}

	sourceLang := subtitle.DetectLanguage(entries)
	sourceName := ""
	if sourceLang != language.Und {
		sourceName = display.English.Tags().Name(sourceLang)
	}
	log.Info("parsed %d cues from %s (detected source language: %s)",
		len(entries), req.SubtitlePath, sourceLang)

	// single decision point for the run's media mode, before batching begins
	mode, err := media.ResolveMode(req.VideoPath, req.Decide)
	if err != nil {
		return nil, WrapError(err, ErrEncoding, "failed to inspect video file").
			WithContext("path", req.VideoPath)
	}

	r.updateState(func(s *RunState) {
		s.Phase = PhaseBatching
		s.MediaMode = mode
		s.StatusMessage = fmt.Sprintf("partitioning %d cues", len(entries))
	})

	// the payload is encoded once and reused verbatim for every batch
	var payload *media.Payload
	if media.ShouldOfferMedia(mode, req.VideoPath != "") {
		payload, err = media.Encode(req.VideoPath)
		if err != nil {
			return nil, WrapError(err, ErrEncoding, "failed to encode video file").
				WithContext("path", req.VideoPath)
		}
	}

	client, err := r.newTranslator(sourceName)
	if err != nil {
		return nil, WrapError(err, ErrConfig, "failed to create translation client")
	}

	total := len(entries)
	batchCount := (total + r.batchSize - 1) / r.batchSize

	for i := 0; i < batchCount; i++ {
		start := i * r.batchSize
		end := min(start+r.batchSize, total)
		batch := entries[start:end]

		// continuity hint reflects all prior batches, never the current one
		hint := r.registry.Hint()

		r.updateState(func(s *RunState) {
			s.Phase = PhaseTranslating
			s.StatusMessage = fmt.Sprintf("translating batch %d/%d", i+1, batchCount)
		})

		items, err := client.TranslateBatch(ctx, batch, hint, payload)
		if err != nil {
			// a failed batch terminates the run: skipping would break the
			// ordering and speaker-continuity assumptions downstream
			return nil, classifyBatchError(err, i+1, batchCount)
		}

		for _, item := range items {
			r.registry.Record(item.Speaker)
		}
		r.store.Append(items)

		processed := min(end, total)
		percent := int(math.Round(float64(processed) / float64(total) * 100))
		// 100 is reserved for a fully translated run; a rounded-up tail
		// (e.g. 200/201) must not report completion early
		if percent >= 100 && processed < total {
			percent = 99
		}
		r.updateState(func(s *RunState) {
			s.ProgressPercent = percent
			s.StatusMessage = fmt.Sprintf("translated batch %d/%d", i+1, batchCount)
		})
	}

	r.updateState(func(s *RunState) {
		s.Phase = PhaseDone
		s.ProgressPercent = 100
		s.StatusMessage = fmt.Sprintf("translated %d cues in %d batches", total, batchCount)
	})

	return &RunResult{
		Entries:    total,
		Batches:    batchCount,
		Speakers:   r.registry.Known(),
		SourceLang: sourceLang.String(),
	}, nil
}

func classifyBatchError(err error, batch, batchCount int) *RunError {
	errorType := ErrRequest
	if errors.Is(err, translator.ErrMalformedResponse) {
		errorType = ErrMalformedResponse
	}
	return WrapError(err, errorType, fmt.Sprintf("batch %d/%d failed", batch, batchCount)).
		WithContext("batch", batch).
		WithContext("batches", batchCount)
}

func (r *Runner) setState(state RunState) {
	r.mu.Lock()
	r.state = state
	listener := r.onState
	r.mu.Unlock()

	if listener != nil {
		listener(state)
	}
}

func (r *Runner) updateState(mutate func(*RunState)) {
	r.mu.Lock()
	mutate(&r.state)
	snapshot := r.state
	listener := r.onState
	r.mu.Unlock()

	if listener != nil {
		listener(snapshot)
	}
}
