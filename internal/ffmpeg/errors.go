package ffmpeg

import (
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// Pre-compiled patterns for classifying ffmpeg stderr. Checked in order;
// the first match names the failure.
var classifiers = []struct {
	re     *regexp.Regexp
	reason string
}{
	{regexp.MustCompile(`(?i)Unknown encoder|Encoder not found|Unrecognized option '(x26[45])-params'`), "encoder not available"},
	{regexp.MustCompile(`(?i)already exists`), "candidate already exists"},
	{regexp.MustCompile(`(?i)No space left on device`), "no space left on device"},
	{regexp.MustCompile(`(?i)Permission denied`), "permission denied"},
	{regexp.MustCompile(`(?i)Invalid data found when processing input|moov atom not found|could not find codec parameters`), "input is not decodable"},
	{regexp.MustCompile(`(?i)Could not find tag for codec|not currently supported in container|codec not currently supported`), "stream not supported by mp4 container"},
	{regexp.MustCompile(`(?i)Error (initializing|while opening) (output stream|encoder)`), "encoder failed to initialize"},
}

// tailLines is how many trailing stderr lines a Failure keeps.
const tailLines = 3

// Failure describes a failed ffmpeg run.
type Failure struct {
	Reason string // Short category, e.g. "encoder not available".
	Tail   string // Last stderr lines joined with " | ".
	Err    error  // Underlying process error.
}

func (f *Failure) Error() string {
	msg := "ffmpeg failed: " + f.Reason
	if f.Tail != "" {
		msg += " (" + f.Tail + ")"
	}
	return msg
}

func (f *Failure) Unwrap() error { return f.Err }

// Classify turns a failed run into a [Failure]. It returns nil when err is
// nil. Unmatched stderr is reported with the process exit code as reason.
func Classify(stderr string, err error) *Failure {
	if err == nil {
		return nil
	}
	f := &Failure{Err: err, Tail: tail(stderr, tailLines)}
	for _, c := range classifiers {
		if c.re.MatchString(stderr) {
			f.Reason = c.reason
			return f
		}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		f.Reason = fmt.Sprintf("exit status %d", exitErr.ExitCode())
	} else {
		f.Reason = err.Error()
	}
	return f
}

// tail returns the last n non-empty lines of s joined with " | ".
func tail(s string, n int) string {
	var lines []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, " | ")
}
