package probe

// FormatInfo holds container-level metadata from ffprobe's format section.
type FormatInfo struct {
	Duration float64 // Seconds; 0 when unknown.
}

// VideoStream holds the parsed properties of a single video stream.
type VideoStream struct {
	Index         int
	Codec         string
	Duration      float64
	IsAttachedPic bool
}

// Result is the parsed output of a single ffprobe JSON call. PrimaryVideo
// is the first non-attached-pic video stream (nil if none).
type Result struct {
	Format       FormatInfo
	PrimaryVideo *VideoStream
}

// HasVideo reports whether the file carries a real video stream.
func (r *Result) HasVideo() bool {
	return r.PrimaryVideo != nil
}

// Duration returns the container duration, falling back to the primary
// video stream's duration when the container does not report one.
func (r *Result) Duration() float64 {
	if r.Format.Duration > 0 {
		return r.Format.Duration
	}
	if r.PrimaryVideo != nil {
		return r.PrimaryVideo.Duration
	}
	return 0
}
