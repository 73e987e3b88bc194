package planner

import (
	"github.com/backmassage/mediacompress/internal/config"
	"github.com/backmassage/mediacompress/internal/naming"
)

// Claimed extensions handled by each profile. Anything else is copied
// through untouched.
var (
	imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}
	videoExtensions = map[string]bool{".mp4": true, ".mov": true, ".3gp": true}
)

// VideoContainer is the extension every video candidate is written with.
const VideoContainer = ".mp4"

// Classify maps a lowercase extension to a Kind.
func Classify(ext string) Kind {
	switch {
	case imageExtensions[ext]:
		return KindImage
	case videoExtensions[ext]:
		return KindVideo
	default:
		return KindUnrecognized
	}
}

// BuildPlan classifies rel by its lowercase extension and fills in the
// matching profile from cfg.
func BuildPlan(cfg *config.Config, rel string) *FilePlan {
	plan := &FilePlan{Rel: rel, Ext: naming.LowerExt(rel)}
	plan.Kind = Classify(plan.Ext)

	switch plan.Kind {
	case KindImage:
		// Validate has already rejected unknown values; those fall back to 4:4:4.
		sub, _ := config.ParseSubsampling(cfg.JPEGSubsampling)
		plan.Image = ImageProfile{
			MinDimension:    cfg.MinImageDimension,
			JPEGQuality:     cfg.JPEGQuality,
			JPEGSubsampling: sub,
		}
	case KindVideo:
		plan.Video = VideoProfile{
			Codec:     cfg.VideoCodec,
			CRF:       cfg.VideoCRF,
			LogParams: CodecLogParams(cfg.VideoCodec),
			Container: VideoContainer,
		}
	}
	return plan
}

// CodecLogParams returns the encoder-private flags that quiet x264/x265
// info output. Other encoders get none.
func CodecLogParams(codec string) []string {
	switch codec {
	case "libx265":
		return []string{"-x265-params", "log-level=error"}
	case "libx264":
		return []string{"-x264-params", "log-level=error"}
	default:
		return nil
	}
}
