package media

// Mode selects how much of the companion video a run sends to the
// translation service.
type Mode string

const (
	// ModeFull attaches the encoded video to every batch request.
	ModeFull Mode = "full"
	// ModeLite sends cue text only; no media leaves the host.
	ModeLite Mode = "lite"
)

// SizeThreshold is the video byte size above which a run must explicitly
// choose between full and lite mode before any batch is sent.
const SizeThreshold int64 = 50 * 1024 * 1024

// Payload is a transportable binary-plus-mimetype form of the video,
// reused verbatim for every batch of a full-mode run.
type Payload struct {
	MimeType string
	Data     []byte
}

// DecisionFunc resolves the one-shot large-media choice for a run. It is
// invoked at most once, before batching begins, and only when the video
// exceeds SizeThreshold. A nil DecisionFunc declines the cost and downgrades
// the run to lite mode.
type DecisionFunc func(path string, size int64) Mode

var videoMIMETypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".wmv":  "video/x-ms-wmv",
	".flv":  "video/x-flv",
	".ogv":  "video/ogg",
	".3gp":  "video/3gpp",
	".3g2":  "video/3gpp2",
	".ts":   "video/mp2t",
	".mpg":  "video/mpeg",
	".mpeg": "video/mpeg",
}

// VideoExtensions lists the container extensions the watch service probes
// for next to a subtitle file.
func VideoExtensions() []string {
	return []string{
		".mp4", ".mkv", ".webm", ".m4v", ".mov",
		".avi", ".wmv", ".flv", ".ogv", ".ts", ".mpg", ".mpeg",
	}
}
