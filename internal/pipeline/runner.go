// Package pipeline orchestrates video discovery, per-file processing, and
// batch summary reporting.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matthew-beep/assetprep/internal/config"
	"github.com/matthew-beep/assetprep/internal/display"
	"github.com/matthew-beep/assetprep/internal/ffmpeg"
	"github.com/matthew-beep/assetprep/internal/naming"
	"github.com/matthew-beep/assetprep/internal/planner"
	"github.com/matthew-beep/assetprep/internal/probe"
)

// ErrEmptyInput rejects zero-byte inputs before ffmpeg is started, so the
// savings percentage never divides by zero.
var ErrEmptyInput = errors.New("empty input file")

// Logger is the subset of logging.Logger the runner needs.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// Progress receives one Add per finished file. *progressbar.ProgressBar
// satisfies it.
type Progress interface {
	Describe(description string)
	Add(n int) error
	Finish() error
}

// Options carries the optional collaborators of Run.
type Options struct {
	// NewProgress, when set, is called once with the number of discovered
	// files. A nil return disables progress.
	NewProgress func(total int) Progress

	// FFmpegStderr, when set, receives ffmpeg's stderr live.
	FFmpegStderr io.Writer
}

// Run is the top-level batch entry point. It discovers videos, processes
// each one sequentially, and returns aggregate stats. Only a discovery
// failure is returned as an error; per-file failures are counted.
func Run(ctx context.Context, cfg *config.Config, log Logger, opts Options) (RunStats, error) {
	var stats RunStats

	files, err := Discover(cfg.VideoDir, cfg.VideoExts)
	if err != nil {
		return stats, fmt.Errorf("discover %s: %w", cfg.VideoDir, err)
	}
	if len(files) == 0 {
		log.Info("No new videos found in this folder!")
		return stats, nil
	}

	stats.Total = len(files)
	r := &runner{
		cfg:      cfg,
		log:      log,
		opts:     opts,
		outRoot:  cfg.ResolveOutputDir(),
		resolver: naming.NewCollisionResolver(),
		probeOK:  cfg.ShowFileStats && probe.Available(cfg.FFprobePath),
		stats:    &stats,
	}

	logBatchHeader(cfg, log, &stats, r.outRoot)

	var bar Progress
	if opts.NewProgress != nil {
		bar = opts.NewProgress(stats.Total)
	}

	for i, path := range files {
		stats.Current = i + 1

		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}

		if bar != nil {
			bar.Describe(filepath.Base(path))
		}
		r.processFile(ctx, path)
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	logSummary(cfg, log, &stats)
	return stats, nil
}

type runner struct {
	cfg      *config.Config
	log      Logger
	opts     Options
	outRoot  string
	resolver *naming.CollisionResolver
	probeOK  bool
	stats    *RunStats
}

// processFile handles one video: validate → name → plan → optimize → poster.
func (r *runner) processFile(ctx context.Context, path string) {
	cfg, log, stats := r.cfg, r.log, r.stats
	basename := filepath.Base(path)

	// --- Validate ---
	fi, err := os.Stat(path)
	if err != nil {
		log.Error("Error with %s: %v", basename, err)
		stats.Failed++
		return
	}
	if fi.Size() == 0 {
		log.Error("Error with %s: %v", basename, ErrEmptyInput)
		stats.Failed++
		return
	}

	// --- Resolve outputs ---
	outs := naming.OutputPaths(path, r.outRoot, cfg.OptimizedDir, cfg.PostersDir)
	if owner, ok := r.resolver.Claim(path, outs); !ok {
		log.Warn("Skipping: %s (outputs already claimed by %s)", basename, filepath.Base(owner))
		stats.Skipped++
		return
	}

	// --- Plan ---
	plan := planner.BuildPlan(cfg, path, outs)
	if plan.Action == planner.ActionSkip {
		log.Info("Skipping: %s (%s)", basename, plan.SkipReason)
		stats.Skipped++
		return
	}

	log.Info("[%d/%d] Processing: %s", stats.Current, stats.Total, basename)
	if r.probeOK {
		r.logFileStats(ctx, path)
	}

	// --- Dry-run ---
	if cfg.DryRun {
		if plan.NeedVideo {
			log.Success("[DRY] Would optimize -> %s", outs.Video)
		}
		if plan.NeedPoster {
			log.Success("[DRY] Would extract poster -> %s", outs.Poster)
		}
		stats.Processed++
		return
	}

	// --- Execute ---
	if plan.NeedVideo {
		log.Debug("  -> %s", outs.Video)
		if !r.runStep(ctx, basename, outs.Video, ffmpeg.BuildOptimize(cfg, path, outs.Video)) {
			return
		}
	}
	if plan.NeedPoster {
		log.Debug("  -> %s", outs.Poster)
		if !r.runStep(ctx, basename, outs.Poster, ffmpeg.BuildPoster(cfg, path, outs.Poster)) {
			return
		}
	}

	// --- Update stats ---
	stats.Processed++
	outInfo, err := os.Stat(outs.Video)
	if err != nil {
		log.Warn("Cannot read optimized size: %v", err)
		return
	}
	stats.TotalInputBytes += fi.Size()
	stats.TotalOutputBytes += outInfo.Size()

	pct, err := display.SavingsPercent(fi.Size(), outInfo.Size())
	if err != nil {
		log.Success("Success!")
		return
	}
	if pct >= 0 {
		log.Success("Success! (%.1f%% smaller)", pct)
	} else {
		log.Warn("Success, but output is %.1f%% larger than the input", -pct)
	}
}

// runStep runs one ffmpeg command producing out. On failure the partial
// output is removed, the failure is counted, and false is returned.
func (r *runner) runStep(ctx context.Context, basename, out string, args []string) bool {
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		r.log.Error("Error with %s: cannot create output directory: %v", basename, err)
		r.stats.Failed++
		return false
	}

	r.log.Debug("  $ %v", args)
	res := ffmpeg.Execute(ctx, args, ffmpeg.ExecOptions{Tee: r.opts.FFmpegStderr})
	if !res.Failed() {
		return true
	}

	os.Remove(out)
	r.stats.Failed++
	if ctx.Err() != nil {
		r.log.Warn("Interrupted while processing %s", basename)
		return false
	}
	hint := ffmpeg.Classify(res.Stderr).Hint()
	if code := res.ExitCode(); code > 0 {
		r.log.Error("Error with %s: %s (ffmpeg exit code %d)", basename, hint, code)
	} else {
		r.log.Error("Error with %s: %s (%v)", basename, hint, res.Err)
	}
	for _, l := range ffmpeg.TailLines(res.Stderr, 20) {
		r.log.Error("  %s", l)
	}
	return false
}

func (r *runner) logFileStats(ctx context.Context, path string) {
	pr, err := probe.Probe(ctx, r.cfg.FFprobePath, path)
	if err != nil {
		r.log.Warn("  Cannot probe file: %v", err)
		return
	}
	codec := "unknown"
	if pr.PrimaryVideo != nil && pr.PrimaryVideo.Codec != "" {
		codec = pr.PrimaryVideo.Codec
	}
	r.log.Info("  Video: %s | %s | %s | %s",
		pr.Resolution(),
		display.FormatBitrateLabel(pr.VideoBitRate()/1000),
		codec,
		display.FormatDuration(pr.Format.Duration))
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log Logger, stats *RunStats, outRoot string) {
	log.Info("Found %d videos in %s", stats.Total, cfg.VideoDir)
	audio := "stripped"
	if !cfg.StripAudio {
		audio = "kept"
	}
	log.Info("Video: %s, CRF %d, preset %s, audio %s", cfg.VideoCodec, cfg.CRF, cfg.Preset, audio)
	log.Info("Poster: frame at %ss, JPEG q:v %d", cfg.PosterSeek, cfg.PosterQuality)
	log.Info("Output: %s, %s",
		filepath.Join(outRoot, cfg.OptimizedDir),
		filepath.Join(outRoot, cfg.PostersDir))
	if !cfg.SkipExisting {
		log.Info("Force: existing outputs are regenerated")
	}
	if cfg.DryRun {
		log.Info("Dry run: nothing will be written")
	}
}

func logSummary(cfg *config.Config, log Logger, stats *RunStats) {
	log.Info("==============================")
	log.Info("Done: %d processed, %d skipped, %d failed", stats.Processed, stats.Skipped, stats.Failed)

	switch {
	case cfg.DryRun:
		log.Info("  Total space saved: n/a (dry run)")
	case stats.TotalInputBytes > 0:
		saved := stats.SpaceSaved()
		if saved >= 0 {
			log.Success("  Total space saved: %s (input %s -> output %s)",
				display.FormatBytes(saved),
				display.FormatBytes(stats.TotalInputBytes),
				display.FormatBytes(stats.TotalOutputBytes))
		} else {
			log.Warn("  Total space saved: -%s (overall output is larger)",
				display.FormatBytes(-saved))
		}
	}

	if stats.Failed == 0 {
		log.Success("All videos up to date!")
	} else {
		log.Warn("Finished with %d failed file(s)", stats.Failed)
	}
}
