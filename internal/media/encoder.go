package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Spring-Mustache/translate-srt/pkg/log"
)

// ShouldOfferMedia reports whether a run attempts to attach media at all:
// only when a video was supplied and the run is not in lite mode.
func ShouldOfferMedia(mode Mode, videoPresent bool) bool {
	return videoPresent && mode != ModeLite
}

// ResolveMode settles the run's media mode before batching begins.
//
// No video means lite. A video under the threshold means full. Above the
// threshold the decision function gets one call; its answer is final for the
// remainder of the run.
func ResolveMode(videoPath string, decide DecisionFunc) (Mode, error) {
	if videoPath == "" {
		return ModeLite, nil
	}

	info, err := os.Stat(videoPath)
	if err != nil {
		return ModeLite, fmt.Errorf("failed to stat video file: %w", err)
	}

	return resolveModeForSize(videoPath, info.Size(), decide), nil
}

func resolveModeForSize(videoPath string, size int64, decide DecisionFunc) Mode {
	if size <= SizeThreshold {
		return ModeFull
	}

	if decide == nil {
		log.Warn("video %s is %d bytes, above the %d byte threshold; no decision hook attached, downgrading to lite mode",
			videoPath, size, SizeThreshold)
		return ModeLite
	}

	mode := decide(videoPath, size)
	log.Info("large-media decision for %s (%d bytes): %s", videoPath, size, mode)
	return mode
}

// Encode reads the video into a transportable binary-plus-mimetype payload.
func Encode(videoPath string) (*Payload, error) {
	data, err := os.ReadFile(videoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read video file %s: %w", videoPath, err)
	}

	return &Payload{
		MimeType: MIMETypeFor(videoPath),
		Data:     data,
	}, nil
}

// MIMETypeFor maps a video path to its container MIME type by extension.
func MIMETypeFor(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if mimeType, ok := videoMIMETypes[ext]; ok {
		return mimeType
	}
	return "application/octet-stream"
}
