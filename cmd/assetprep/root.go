package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matthew-beep/assetprep/internal/config"
	"github.com/matthew-beep/assetprep/internal/logging"
	"github.com/matthew-beep/assetprep/internal/term"
)

// app holds the configuration shared by every subcommand. Flags bind
// directly into cfg; load layers the YAML file and environment underneath.
type app struct {
	cfg config.Config
	neg config.Negated
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "assetprep",
		Short: "Prepare sprite sheets and background videos for the web",
		Long: `assetprep inspects and optimizes the static media of a web app.

  sprites  reports width, height and frame count of every PNG in a folder
  videos   re-encodes videos to small MP4s and extracts a poster frame
  check    verifies ffmpeg and the encoders the video batch needs`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			return nil
		},
	}

	config.BindGlobalFlags(cmd.PersistentFlags(), &a.cfg, &a.neg)

	cmd.AddCommand(
		newSpritesCmd(a),
		newVideosCmd(a),
		newCheckCmd(a),
	)
	return cmd
}

// load finalizes a.cfg for cmd: file and environment layers, then the
// flags the user set, then validation.
func (a *app) load(cmd *cobra.Command) error {
	return config.Load(cmd.Flags(), &a.cfg, &a.neg, os.LookupEnv)
}

// logger builds the leveled logger. When stdout carries data (a manifest),
// log lines go to stderr so the two never interleave.
func (a *app) logger(stdoutIsData bool) (*logging.Logger, error) {
	if stdoutIsData {
		term.Configure(a.cfg.ColorMode, os.Stderr)
		return logging.NewLoggerTo(&a.cfg, os.Stderr, os.Stderr)
	}
	return logging.NewLogger(&a.cfg)
}
