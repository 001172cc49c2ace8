// Package check provides system diagnostics (the check command) and
// pre-run dependency validation (CheckDeps) for ffmpeg, ffprobe and the two
// encoders the video batch needs.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/matthew-beep/assetprep/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool or encoder is missing.
var (
	ErrFfmpegNotFound = errors.New("ffmpeg not found on PATH")
	ErrEncoderFailed  = errors.New("video encoder test encode failed")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck reports availability of ffmpeg, ffprobe, and the video and
// poster encoders. It returns false when the video batch could not run.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	if !checkFfmpeg(cfg, log) {
		return false
	}
	checkFfprobe(cfg, log)

	ok := true
	log.Info("Testing %s...", cfg.VideoCodec)
	if runSilent(cfg.FFmpegPath, encodeTestArgs(cfg.VideoCodec)...) {
		log.Success("%s works", cfg.VideoCodec)
	} else {
		log.Error("%s test encode failed", cfg.VideoCodec)
		ok = false
	}

	log.Info("Testing JPEG poster encoder...")
	if runSilent(cfg.FFmpegPath, posterTestArgs()...) {
		log.Success("mjpeg works")
	} else {
		log.Error("mjpeg test encode failed")
		ok = false
	}
	return ok
}

// checkFfmpeg verifies ffmpeg resolves and logs its version string.
func checkFfmpeg(cfg *config.Config, log Logger) bool {
	if _, err := exec.LookPath(cfg.FFmpegPath); err != nil {
		log.Error("ffmpeg not found (%s)", cfg.FFmpegPath)
		return false
	}
	out, err := exec.Command(cfg.FFmpegPath, "-version").Output()
	if err != nil {
		log.Warn("ffmpeg found but -version failed: %v", err)
		return true
	}
	log.Success("ffmpeg: %s", firstLine(string(out)))
	return true
}

// checkFfprobe is informational: without ffprobe only the per-file stats
// line is lost.
func checkFfprobe(cfg *config.Config, log Logger) {
	if _, err := exec.LookPath(cfg.FFprobePath); err != nil {
		log.Warn("ffprobe not found; per-file video stats disabled")
		return
	}
	log.Success("ffprobe: %s", cfg.FFprobePath)
}

// CheckDeps is the pre-run validation for the video batch: ffmpeg must
// resolve and a tiny encode with the configured codec must succeed.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.FFmpegPath); err != nil {
		return ErrFfmpegNotFound
	}
	if !runSilent(cfg.FFmpegPath, encodeTestArgs(cfg.VideoCodec)...) {
		return ErrEncoderFailed
	}
	return nil
}

// --- internal helpers ---

// encodeTestArgs returns the ffmpeg arguments for a minimal test encode.
// Shared by RunCheck and CheckDeps to avoid duplicating the argument list.
func encodeTestArgs(codec string) []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
		"-vcodec", codec,
		"-f", "null", "-",
	}
}

func posterTestArgs() []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=64x64:d=0.1",
		"-vframes", "1", "-q:v", "2",
		"-f", "mjpeg", "-",
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx > 0 {
		s = s[:idx]
	}
	return s
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
