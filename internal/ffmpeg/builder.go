// Package ffmpeg builds the two ffmpeg command lines used per input video
// (web-optimized re-encode and first-frame poster), runs them, and
// classifies failures from stderr.
package ffmpeg

import (
	"strconv"

	"github.com/matthew-beep/assetprep/internal/config"
)

// preamble is shared by every invocation: quiet banner, never read stdin,
// overwrite outputs.
func preamble(cfg *config.Config) []string {
	bin := cfg.FFmpegPath
	if bin == "" {
		bin = "ffmpeg"
	}
	args := make([]string, 0, 24)
	args = append(args, bin, "-hide_banner", "-nostdin", "-y")

	// Loglevel: info when verbose, otherwise error.
	if cfg.Verbose {
		args = append(args, "-loglevel", "info")
	} else {
		args = append(args, "-loglevel", "error")
	}
	return args
}

// BuildOptimize returns the re-encode command:
//
//	ffmpeg ... -i <in> -vcodec libx264 -crf 28 -preset slow -an <out>
//
// Codec, CRF and preset come from cfg; -an is dropped when audio is kept.
func BuildOptimize(cfg *config.Config, in, out string) []string {
	args := preamble(cfg)
	args = append(args,
		"-i", in,
		"-vcodec", cfg.VideoCodec,
		"-crf", strconv.Itoa(cfg.CRF),
		"-preset", cfg.Preset,
	)
	if cfg.StripAudio {
		args = append(args, "-an")
	}
	return append(args, out)
}

// BuildPoster returns the single-frame JPEG command:
//
//	ffmpeg ... -i <in> -ss 0 -vframes 1 -q:v 2 <out>
func BuildPoster(cfg *config.Config, in, out string) []string {
	seek := cfg.PosterSeek
	if seek == "" {
		seek = "0"
	}
	args := preamble(cfg)
	return append(args,
		"-i", in,
		"-ss", seek,
		"-vframes", "1",
		"-q:v", strconv.Itoa(cfg.PosterQuality),
		out,
	)
}
