package ffmpeg

import (
	"bytes"
	"context"
	"io"
	"os/exec"
)

// Result holds the outcome of a single ffmpeg invocation.
type Result struct {
	Stderr string
	Err    error
}

// Runner executes a command line whose first element is the binary. The
// video codec adapter depends on this interface so tests can substitute a
// fake encoder.
type Runner interface {
	Run(ctx context.Context, args []string) Result
}

// ExecRunner runs commands as child processes. Canceling ctx kills the
// process. When Tee is set, stderr is also copied there in real time;
// otherwise it is only captured for classification.
type ExecRunner struct {
	Tee io.Writer
}

// Run implements [Runner].
func (r ExecRunner) Run(ctx context.Context, args []string) Result {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	if r.Tee != nil {
		cmd.Stderr = io.MultiWriter(&stderrBuf, r.Tee)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	return Result{
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}
