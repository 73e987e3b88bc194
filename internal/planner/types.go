package planner

import "image"

// Kind is the compression profile selected for a file.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindImage
	KindVideo
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return "unrecognized"
	}
}

// FilePlan holds the per-file decisions produced by BuildPlan and consumed
// by the dispatcher and codec adapters.
type FilePlan struct {
	Rel  string // Path relative to the input root.
	Ext  string // Lowercase claimed extension, dot included.
	Kind Kind

	Image ImageProfile // Set when Kind == KindImage.
	Video VideoProfile // Set when Kind == KindVideo.
}

// ImageProfile carries the image re-encode settings.
type ImageProfile struct {
	MinDimension int // Downscale when the smaller side exceeds this.
	JPEGQuality  int
	// JPEGSubsampling is the chroma subsampling of JPEG candidates. The
	// zero value is 4:4:4.
	JPEGSubsampling image.YCbCrSubsampleRatio
}

// VideoProfile carries the ffmpeg re-encode settings.
type VideoProfile struct {
	Codec     string   // e.g. "libx265"
	CRF       int
	LogParams []string // Codec-private log suppression, e.g. -x265-params log-level=error.
	Container string   // Forced output extension, dot included.
}
