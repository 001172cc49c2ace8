package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/matthew-beep/assetprep/internal/check"
	"github.com/matthew-beep/assetprep/internal/display"
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify ffmpeg, ffprobe and the video and poster encoders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			log, err := a.logger(false)
			if err != nil {
				return err
			}
			defer log.Close()

			display.PrintBanner(os.Stdout)
			if !check.RunCheck(&a.cfg, log) {
				return errors.New("system check failed")
			}
			return nil
		},
	}

	// ffmpeg/ffprobe/codec overrides matter for the check too.
	fs := cmd.Flags()
	fs.StringVar(&a.cfg.FFmpegPath, "ffmpeg", a.cfg.FFmpegPath, "ffmpeg binary")
	fs.StringVar(&a.cfg.FFprobePath, "ffprobe", a.cfg.FFprobePath, "ffprobe binary")
	fs.StringVar(&a.cfg.VideoCodec, "codec", a.cfg.VideoCodec, "Video encoder to test")
	return cmd
}
