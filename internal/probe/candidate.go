package probe

import (
	"errors"
	"fmt"
)

// DurationTolerance is how much shorter than its source, in seconds, a
// candidate may be before it is treated as truncated.
const DurationTolerance = 1.0

var (
	// ErrNoVideo means the candidate has no decodable video stream.
	ErrNoVideo = errors.New("candidate has no video stream")
	// ErrTruncated means the candidate is shorter than its source.
	ErrTruncated = errors.New("candidate is shorter than its source")
)

// CheckCandidate compares an encoded candidate against its source. A
// source without a known duration only requires the candidate to carry
// video.
func CheckCandidate(source, candidate *Result) error {
	if !candidate.HasVideo() {
		return ErrNoVideo
	}
	src, cand := source.Duration(), candidate.Duration()
	if src > 0 && src-cand > DurationTolerance {
		return fmt.Errorf("%w: %.2fs vs %.2fs", ErrTruncated, cand, src)
	}
	return nil
}
