package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/Spring-Mustache/translate-srt/internal/config"
	"github.com/Spring-Mustache/translate-srt/internal/media"
	"github.com/Spring-Mustache/translate-srt/internal/persistence"
	"github.com/Spring-Mustache/translate-srt/internal/service"
	"github.com/Spring-Mustache/translate-srt/internal/translator"
	"github.com/Spring-Mustache/translate-srt/pkg/log"
)

func main() {
	subPath := flag.String("sub", "", "subtitle file (.srt) to translate")
	videoPath := flag.String("video", "", "optional companion video file")
	outDir := flag.String("out", "", "export directory (default: the subtitle's directory)")
	watch := flag.Bool("watch", false, "scan MEDIA_DIR on a cron schedule instead of a one-shot run")
	acceptLargeMedia := flag.Bool("accept-large-media", false,
		"attach videos above the 50 MiB threshold instead of downgrading the run to lite mode")
	flag.Parse()

	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatal("failed to load configuration: %v", err)
	}
	log.InitLogger(log.ParseLevel(cfg.System.LogLevel))

	factory := func(sourceLanguage string) (translator.Translator, error) {
		return translator.NewGeminiTranslator(&translator.Config{
			APIKey:         cfg.Gemini.APIKey,
			APIURL:         cfg.Gemini.APIURL,
			Model:          cfg.Gemini.Model,
			Timeout:        cfg.Gemini.Timeout,
			Temperature:    cfg.Gemini.Temperature,
			SourceLanguage: sourceLanguage,
		})
	}
	runner := service.NewRunner(factory, cfg.Pipeline.BatchSize)

	ctx := context.Background()

	if *watch {
		runWatch(ctx, *cfg, runner)
		return
	}

	if *subPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	runOnce(ctx, runner, *subPath, *videoPath, *outDir, *acceptLargeMedia)
}

func runWatch(ctx context.Context, cfg config.Config, runner *service.Runner) {
	history, err := persistence.NewStore(cfg.Watch.RunDBPath)
	if err != nil {
		log.Fatal("failed to open run history: %v", err)
	}
	defer history.Close()

	c := cron.New()
	svc := service.NewWatchService(cfg, c, runner, history)
	if err := svc.Schedule(ctx); err != nil {
		log.Fatal("failed to schedule watch: %v", err)
	}
	c.Run()
}

func runOnce(
	ctx context.Context,
	runner *service.Runner,
	subPath, videoPath, outDir string,
	acceptLargeMedia bool,
) {
	var decide media.DecisionFunc
	if acceptLargeMedia {
		decide = func(path string, size int64) media.Mode { return media.ModeFull }
	}

	runner.OnStateChange(func(state service.RunState) {
		log.Info("[%s] %3d%% %s", state.Phase, state.ProgressPercent, state.StatusMessage)
	})

	result, err := runner.Run(ctx, service.RunRequest{
		SubtitlePath: subPath,
		VideoPath:    videoPath,
		Decide:       decide,
	})
	if err != nil {
		service.HandleError(err)
		os.Exit(1)
	}

	if outDir == "" {
		outDir = filepath.Dir(subPath)
	}
	exports, err := service.Export(runner.Results(), outDir)
	if err != nil {
		service.HandleError(err)
		os.Exit(1)
	}

	log.Info("translated %d cues in %d batches (source language: %s, %d speakers)",
		result.Entries, result.Batches, result.SourceLang, len(result.Speakers))
	for _, export := range exports {
		log.Info("wrote %s (%s)", export.Path, export.Language)
	}
}
