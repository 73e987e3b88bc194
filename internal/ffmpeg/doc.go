// Package ffmpeg builds and executes the ffmpeg commands used by the video
// codec adapter and the --check diagnostics.
//
//   - BuildTranscode: the single-pass re-encode argument list (builder.go)
//   - Runner, ExecRunner: process execution with stderr capture (executor.go)
//   - Classify: reduce a failed run's stderr to a one-line reason (errors.go)
package ffmpeg
