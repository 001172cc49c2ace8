package ffmpeg

import (
	"regexp"
	"strings"
)

// Failure is the category of an ffmpeg error, derived from stderr.
type Failure int

const (
	FailureUnknown Failure = iota
	FailureMissingInput
	FailureInvalidData
	FailureEncoderMissing
	FailurePermission
	FailureDiskFull
)

// Hint returns a short human-readable explanation for the category.
func (f Failure) Hint() string {
	switch f {
	case FailureMissingInput:
		return "input file not found"
	case FailureInvalidData:
		return "input is not a readable video (corrupt or unsupported)"
	case FailureEncoderMissing:
		return "encoder not available in this ffmpeg build"
	case FailurePermission:
		return "permission denied"
	case FailureDiskFull:
		return "no space left on device"
	default:
		return "ffmpeg failed"
	}
}

// Pre-compiled regexes for classifying ffmpeg stderr. Checked in order; the
// first match wins.
var classifiers = []struct {
	re *regexp.Regexp
	f  Failure
}{
	{regexp.MustCompile(`No space left on device`), FailureDiskFull},
	{regexp.MustCompile(`(?i)Permission denied`), FailurePermission},
	{regexp.MustCompile(`No such file or directory`), FailureMissingInput},
	{regexp.MustCompile(`(?i)Unknown encoder|Encoder \S+ not found|Error while opening encoder`), FailureEncoderMissing},
	{regexp.MustCompile(`(?i)Invalid data found when processing input|moov atom not found|` +
		`could not find codec parameters|EBML header parsing failed`), FailureInvalidData},
}

// Classify maps stderr to a Failure category.
func Classify(stderr string) Failure {
	for _, c := range classifiers {
		if c.re.MatchString(stderr) {
			return c.f
		}
	}
	return FailureUnknown
}

// TailLines returns the last n non-empty lines of stderr.
func TailLines(stderr string, n int) []string {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return nil
	}
	lines := strings.Split(stderr, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
