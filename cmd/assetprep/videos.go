package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/matthew-beep/assetprep/internal/check"
	"github.com/matthew-beep/assetprep/internal/config"
	"github.com/matthew-beep/assetprep/internal/display"
	"github.com/matthew-beep/assetprep/internal/pipeline"
	"github.com/matthew-beep/assetprep/internal/term"
)

func newVideosCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "videos [dir]",
		Short: "Re-encode videos for the web and extract poster frames",
		Long: `For every .mp4, .mov and .webm directly inside [dir] (default: the current
directory), writes optimized/<name>.mp4 (H.264, CRF 28, preset slow, no audio)
and posters/<name>_first_frame.jpg. Videos whose two outputs already exist
are skipped unless --force is given.`,
		Example: `  # Optimize the current folder
  assetprep videos

  # Preview what would run
  assetprep videos public/background --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}
			cfg := &a.cfg
			if len(args) == 1 {
				cfg.VideoDir = config.NormalizeDirArg(args[0])
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, err := a.logger(false)
			if err != nil {
				return err
			}
			defer log.Close()

			display.PrintBanner(os.Stdout)
			if cfg.DryRun {
				log.Warn("DRY RUN")
			}

			// Ensure ffmpeg and the encoder work; fail fast otherwise.
			if !cfg.DryRun {
				if err := check.CheckDeps(cfg); err != nil {
					log.Error("%v", err)
					return err
				}
			}

			opts := pipeline.Options{}
			if cfg.Verbose {
				opts.FFmpegStderr = os.Stderr
			} else if cfg.ShowProgress && term.IsTerminal(os.Stderr) {
				opts.NewProgress = newProgressBar
			}

			stats, err := pipeline.Run(cmd.Context(), cfg, log, opts)
			if err != nil {
				log.Error("%v", err)
				return err
			}
			if !stats.OK() {
				return fmt.Errorf("%d of %d videos failed", stats.Failed, stats.Total)
			}
			return nil
		},
	}

	config.BindVideoFlags(cmd.Flags(), &a.cfg, &a.neg)
	return cmd
}

func newProgressBar(total int) pipeline.Progress {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(term.Enabled()),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
