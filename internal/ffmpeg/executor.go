package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
)

// ExecResult holds the outcome of a single ffmpeg invocation.
type ExecResult struct {
	Stderr string
	Err    error
}

// Failed reports whether the invocation did not exit cleanly.
func (r ExecResult) Failed() bool { return r.Err != nil }

// ExitCode returns the process exit status, or -1 when the process never
// ran or was killed.
func (r ExecResult) ExitCode() int {
	if r.Err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(r.Err, &ee) {
		return ee.ExitCode()
	}
	return -1
}

// ExecOptions tunes Execute.
type ExecOptions struct {
	// Tee, when non-nil, receives stderr in real time as well as the
	// captured copy (verbose mode).
	Tee io.Writer
}

// Execute runs args[0] with args[1:]. stderr is always captured for
// failure classification.
func Execute(ctx context.Context, args []string, opts ExecOptions) ExecResult {
	if len(args) == 0 {
		return ExecResult{Err: errors.New("ffmpeg: empty command")}
	}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	if opts.Tee != nil {
		cmd.Stderr = io.MultiWriter(&stderrBuf, opts.Tee)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	return ExecResult{
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}
