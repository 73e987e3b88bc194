package probe

import (
	"context"
	"errors"
	"os/exec"
	"testing"
)

// Realistic ffprobe JSON for a phone recording with:
//   - 1 attached pic (cover art, should be skipped as primary video)
//   - 1 HEVC video stream (1920x1080)
//   - 1 AAC stereo audio stream
const samplePhone = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "mjpeg",
      "codec_type": "video",
      "width": 600,
      "height": 900,
      "disposition": { "default": 0, "attached_pic": 1 }
    },
    {
      "index": 1,
      "codec_name": "hevc",
      "codec_type": "video",
      "width": 1920,
      "height": 1080,
      "duration": "12.512000",
      "disposition": { "default": 1, "attached_pic": 0 }
    },
    {
      "index": 2,
      "codec_name": "aac",
      "codec_type": "audio",
      "channels": 2,
      "disposition": { "default": 1 }
    }
  ],
  "format": {
    "filename": "/media/phone/IMG_0042.MOV",
    "nb_streams": 3,
    "format_name": "mov,mp4,m4a,3gp,3g2,mj2",
    "duration": "12.520000",
    "size": "48211963",
    "bit_rate": "30806047",
    "tags": { "com.apple.quicktime.make": "Apple" }
  }
}`

// Stream-only duration, no format duration.
const sampleMinimal = `{
  "streams": [
    { "index": 0, "codec_name": "h264", "codec_type": "video", "width": 1280, "height": 720, "duration": "4.0" }
  ],
  "format": { "filename": "clip.3gp", "nb_streams": 1 }
}`

func TestParseJSON_PhoneRecording(t *testing.T) {
	pr, err := ParseJSON([]byte(samplePhone))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}

	if pr.PrimaryVideo == nil {
		t.Fatal("PrimaryVideo is nil")
	}
	if pr.PrimaryVideo.Index != 1 || pr.PrimaryVideo.Codec != "hevc" {
		t.Errorf("primary video: got index %d codec %q", pr.PrimaryVideo.Index, pr.PrimaryVideo.Codec)
	}
	if pr.PrimaryVideo.IsAttachedPic {
		t.Error("primary video must not be the attached pic")
	}
	if got := pr.Duration(); got != 12.52 {
		t.Errorf("duration: got %v, want 12.52", got)
	}
}

func TestParseJSON_MinimalFile(t *testing.T) {
	pr, err := ParseJSON([]byte(sampleMinimal))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if pr.PrimaryVideo == nil {
		t.Fatal("PrimaryVideo is nil")
	}
	if got := pr.Duration(); got != 4.0 {
		t.Errorf("duration fallback to stream: got %v, want 4", got)
	}
	if pr.PrimaryVideo.Codec != "h264" {
		t.Errorf("codec: got %q, want h264", pr.PrimaryVideo.Codec)
	}
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	_, err := ParseJSON([]byte(`{invalid`))
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestAttachedPicSkipped(t *testing.T) {
	j := `{
		"streams": [
			{ "index": 0, "codec_name": "mjpeg", "codec_type": "video", "disposition": { "attached_pic": 1 } },
			{ "index": 1, "codec_name": "aac", "codec_type": "audio", "channels": 2 }
		],
		"format": { "filename": "audio_only.m4a", "nb_streams": 2, "duration": "30.0" }
	}`
	pr, err := ParseJSON([]byte(j))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if pr.HasVideo() {
		t.Error("HasVideo should be false when only stream is attached_pic")
	}
}

func TestCheckCandidate(t *testing.T) {
	video := func(d float64) *Result {
		return &Result{Format: FormatInfo{Duration: d}, PrimaryVideo: &VideoStream{Codec: "hevc"}}
	}
	tests := []struct {
		name      string
		source    *Result
		candidate *Result
		wantErr   error
	}{
		{"identical duration", video(12.5), video(12.5), nil},
		{"within tolerance", video(12.5), video(11.6), nil},
		{"longer is fine", video(12.5), video(13.0), nil},
		{"truncated", video(12.5), video(3.0), ErrTruncated},
		{"no video", video(12.5), &Result{Format: FormatInfo{Duration: 12.5}}, ErrNoVideo},
		{"unknown source duration", video(0), video(1), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCandidate(tt.source, tt.candidate)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFFProbe_MissingFile(t *testing.T) {
	if _, err := exec.LookPath(Binary); err != nil {
		t.Skip("ffprobe not available")
	}
	_, err := FFProbe{}.Probe(context.Background(), "/nonexistent/clip.mp4")
	if err == nil {
		t.Error("expected error probing a missing file")
	}
}
