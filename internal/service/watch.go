package service

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"

	"github.com/Spring-Mustache/translate-srt/internal/config"
	"github.com/Spring-Mustache/translate-srt/internal/media"
	"github.com/Spring-Mustache/translate-srt/internal/persistence"
	"github.com/Spring-Mustache/translate-srt/internal/subtitle"
	"github.com/Spring-Mustache/translate-srt/pkg/file"
	"github.com/Spring-Mustache/translate-srt/pkg/log"
)

// WatchService periodically scans a media directory for subtitle tracks that
// have no exported translations yet and runs the pipeline over each one.
// Overlapping cron triggers collapse into a single scan, which also enforces
// the one-run-at-a-time rule.
type WatchService struct {
	cfg     config.Config
	cron    *cron.Cron
	runner  *Runner
	history *persistence.Store
}

func NewWatchService(
	cfg config.Config,
	c *cron.Cron,
	runner *Runner,
	history *persistence.Store,
) WatchService {
	return WatchService{
		cfg:     cfg,
		cron:    c,
		runner:  runner,
		history: history,
	}
}

var singleflightGroup singleflight.Group

// Schedule registers the scan on the service's cron.
func (s WatchService) Schedule(ctx context.Context) error {
	log.Info("watching %s (schedule %q)", s.cfg.Watch.MediaDir, s.cfg.Watch.CronExpr)

	runFunc := func() {
		_, _, _ = singleflightGroup.Do("scan", func() (any, error) {
			if err := s.Scan(ctx); err != nil {
				log.Error("scan of %s failed: %v", s.cfg.Watch.MediaDir, err)
			}
			return nil, nil
		})
	}
	_, err := s.cron.AddFunc(s.cfg.Watch.CronExpr, runFunc)
	return err
}

// Scan runs the pipeline over every pending subtitle under the media dir.
// Failures are logged per file; the scan moves on to the next candidate.
func (s WatchService) Scan(ctx context.Context) error {
	subs, err := file.FindByExt(s.cfg.Watch.MediaDir, ".srt")
	if err != nil {
		return err
	}

	pending := make([]string, 0, len(subs))
	for _, sub := range subs {
		if isExportTrack(sub) || hasExports(sub) {
			continue
		}
		pending = append(pending, sub)
	}
	log.Info("found %d pending subtitle file(s) in %s", len(pending), s.cfg.Watch.MediaDir)

	for _, sub := range pending {
		if err := s.translateOne(ctx, sub); err != nil {
			HandleError(err)
		}
	}
	return nil
}

func (s WatchService) translateOne(ctx context.Context, subtitlePath string) error {
	videoPath := findAdjacentVideo(subtitlePath)

	runID := uuid.NewString()
	now := time.Now().UTC()
	s.recordStart(ctx, runID, subtitlePath, videoPath, now)

	s.runner.OnStateChange(func(state RunState) {
		s.recordUpdate(ctx, runID, state)
	})
	defer s.runner.OnStateChange(nil)

	log.Info("translating %s (video: %q, run %s)", subtitlePath, videoPath, runID)

	// unattended scans never accept the large-media cost
	_, err := s.runner.Run(ctx, RunRequest{
		SubtitlePath: subtitlePath,
		VideoPath:    videoPath,
		Decide:       nil,
	})
	if err != nil {
		return err
	}

	if _, err := Export(s.runner.Results(), filepath.Dir(subtitlePath)); err != nil {
		return err
	}
	log.Info("exported translations next to %s", subtitlePath)
	return nil
}

func (s WatchService) recordStart(ctx context.Context, id, subtitlePath, videoPath string, now time.Time) {
	if s.history == nil {
		return
	}
	err := s.history.SaveRun(ctx, persistence.RunRecord{
		ID:           id,
		SubtitlePath: subtitlePath,
		VideoPath:    videoPath,
		Phase:        string(PhaseIdle),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		log.Warn("failed to record run %s: %v", id, err)
	}
}

func (s WatchService) recordUpdate(ctx context.Context, id string, state RunState) {
	if s.history == nil {
		return
	}
	errMsg := ""
	if state.Phase == PhaseFailed {
		errMsg = state.StatusMessage
	}
	if err := s.history.UpdateRun(ctx, id, string(state.Phase), state.ProgressPercent, errMsg); err != nil {
		log.Warn("failed to update run %s: %v", id, err)
	}
}

// isExportTrack recognizes this tool's own output files.
func isExportTrack(path string) bool {
	return strings.HasPrefix(filepath.Base(path), "subtitle_")
}

// hasExports reports whether translations were already written next to the
// subtitle file.
func hasExports(subtitlePath string) bool {
	dir := filepath.Dir(subtitlePath)
	for _, lang := range subtitle.TargetLanguages {
		if !file.Exists(filepath.Join(dir, subtitle.ExportFileName(lang))) {
			return false
		}
	}
	return true
}

// findAdjacentVideo looks for a video container next to the subtitle file
// sharing its base name. Empty when none is found; the run proceeds in lite
// mode.
func findAdjacentVideo(subtitlePath string) string {
	for _, ext := range media.VideoExtensions() {
		candidate := file.ReplaceExt(subtitlePath, ext)
		if file.Exists(candidate) {
			return candidate
		}
	}
	return ""
}
