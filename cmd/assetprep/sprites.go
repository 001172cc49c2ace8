package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matthew-beep/assetprep/internal/config"
	"github.com/matthew-beep/assetprep/internal/sprites"
)

func newSpritesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sprites <folder>",
		Short: "Report PNG sprite sheet dimensions and frame counts",
		Long: `Reads the IHDR header of every .png directly inside <folder> and prints
width, height and frames (width / height) per file.

A relative <folder> is resolved against the directory holding the assetprep
executable, not the working directory. Use --base to override.`,
		Example: `  # Text manifest, one line per sheet
  assetprep sprites assets

  # Ordered JSON written atomically to a file
  assetprep sprites assets --format json --output sprites.json`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one <folder>\nusage: %s", cmd.UseLine())
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}
			cfg := &a.cfg
			cfg.SpritesFolder = args[0]
			if cfg.SpritesBase == "" {
				base, err := executableDir()
				if err != nil {
					return fmt.Errorf("locate executable: %w", err)
				}
				cfg.SpritesBase = base
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			toStdout := cfg.ManifestOutput == ""
			log, err := a.logger(toStdout)
			if err != nil {
				return err
			}
			defer log.Close()

			sheet := sprites.ScanFolder(cfg.SpritesBase, cfg.SpritesFolder, log)

			if toStdout {
				return sprites.WriteManifest(cmd.OutOrStdout(), sheet, cfg.ManifestFormat)
			}
			if err := sprites.Save(cfg.ManifestOutput, sheet, cfg.ManifestFormat); err != nil {
				return fmt.Errorf("write %s: %w", cfg.ManifestOutput, err)
			}
			if sheet.Len() == 0 && cfg.ManifestFormat == config.FormatText {
				log.Warn("%s", sprites.EmptyMessage)
			}
			log.Success("Wrote %d entries to %s", sheet.Len(), cfg.ManifestOutput)
			return nil
		},
	}

	config.BindSpriteFlags(cmd.Flags(), &a.cfg)
	return cmd
}

// executableDir returns the directory of the running binary with symlinks
// resolved.
func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
