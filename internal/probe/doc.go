// Package probe provides ffprobe-based media inspection. The video codec
// adapter uses it to confirm that an encoded candidate is a complete,
// decodable rendition of its source before the candidate may replace it.
//
//   - Result, FormatInfo, VideoStream (types.go)
//   - Prober, FFProbe, ParseJSON (prober.go)
//   - CheckCandidate (candidate.go)
package probe
