package config

// This file binds CLI flags onto a Config through pflag (cobra's flag layer).
// Flags are grouped into global (display/logging), sprite and video sets.
// Negated flags (e.g. --force, --no-color) are captured separately and
// applied after parsing so Config defaults hold unless the flag is set.

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Negated holds boolean flags that invert a default after parsing.
type Negated struct {
	force      bool
	noColor    bool
	forceColor bool
	keepAudio  bool
	noStats    bool
	noProgress bool
}

// BindGlobalFlags registers --config, --log, --color-mode, --color,
// --no-color and -v. --no-color beats --color, and both beat --color-mode.
func BindGlobalFlags(fs *pflag.FlagSet, cfg *Config, n *Negated) {
	fs.StringVar(&cfg.ConfigFile, "config", "", "YAML config file (default: ./"+DefaultConfigFile+" when present)")
	fs.StringVarP(&cfg.LogFile, "log", "l", "", "Append logs to file")
	fs.Var(&colorModeValue{&cfg.ColorMode}, "color-mode", "Color output: auto | always | never")
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")
}

// BindSpriteFlags registers the sprites command flags.
func BindSpriteFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.SpritesBase, "base", "", "Resolve the folder against this directory (default: the executable's directory)")
	fs.VarP(&formatValue{&cfg.ManifestFormat}, "format", "f", "Output format: text | json | yaml | parquet")
	fs.StringVarP(&cfg.ManifestOutput, "output", "o", "", "Write the manifest to a file instead of stdout")
}

// BindVideoFlags registers the videos command flags.
func BindVideoFlags(fs *pflag.FlagSet, cfg *Config, n *Negated) {
	fs.StringVar(&cfg.OutputDir, "out", "", "Root for the optimized/ and posters/ folders (default: the video dir)")
	fs.StringVar(&cfg.OptimizedDir, "optimized-dir", cfg.OptimizedDir, "Folder name for re-encoded videos")
	fs.StringVar(&cfg.PostersDir, "posters-dir", cfg.PostersDir, "Folder name for poster frames")
	fs.StringSliceVar(&cfg.VideoExts, "ext", cfg.VideoExts, "Video extensions to pick up")
	fs.StringVar(&cfg.FFmpegPath, "ffmpeg", cfg.FFmpegPath, "ffmpeg binary")
	fs.StringVar(&cfg.FFprobePath, "ffprobe", cfg.FFprobePath, "ffprobe binary (per-file stats)")
	fs.StringVar(&cfg.VideoCodec, "codec", cfg.VideoCodec, "Video encoder")
	fs.IntVar(&cfg.CRF, "crf", cfg.CRF, "Constant rate factor (0-51)")
	fs.StringVarP(&cfg.Preset, "preset", "p", cfg.Preset, "Encoder preset (e.g. slow, medium)")
	fs.StringVar(&cfg.PosterSeek, "poster-seek", cfg.PosterSeek, "Timestamp of the poster frame")
	fs.IntVar(&cfg.PosterQuality, "poster-quality", cfg.PosterQuality, "Poster JPEG quality (1 best - 31 worst)")
	fs.BoolVar(&n.keepAudio, "keep-audio", false, "Keep the audio track (default: strip)")
	fs.BoolVarP(&cfg.DryRun, "dry-run", "d", false, "Preview only; do not run ffmpeg")
	fs.BoolVar(&n.force, "force", false, "Regenerate outputs that already exist")
	fs.BoolVar(&n.noStats, "no-stats", false, "Hide per-file source stats")
	fs.BoolVar(&n.noProgress, "no-progress", false, "Do not draw a progress bar")
}

// ApplyNegated copies negated flag values into cfg (e.g. force -> SkipExisting=false).
func ApplyNegated(cfg *Config, n *Negated) {
	if n.force {
		cfg.SkipExisting = false
	}
	if n.keepAudio {
		cfg.StripAudio = false
	}
	if n.noStats {
		cfg.ShowFileStats = false
	}
	if n.noProgress {
		cfg.ShowProgress = false
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// Load layers the YAML file and the environment under the flags already
// parsed into cfg: defaults < file < env < explicitly set flags. Flags the
// user set are captured first and re-applied on top.
func Load(fs *pflag.FlagSet, cfg *Config, n *Negated, lookup func(string) (string, bool)) error {
	type saved struct {
		scalar string
		slice  []string
		isList bool
	}
	changed := make(map[string]saved)
	fs.Visit(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			changed[f.Name] = saved{slice: sv.GetSlice(), isList: true}
			return
		}
		changed[f.Name] = saved{scalar: f.Value.String()}
	})

	// Positional args are set by the caller after Load returns.
	base := DefaultConfig()
	base.ConfigFile = cfg.ConfigFile

	path, optional := cfg.ConfigFile, false
	if path == "" {
		path, optional = DefaultConfigFile, true
	}
	if err := LoadFile(path, &base, optional); err != nil {
		return err
	}
	if err := ApplyEnv(&base, lookup); err != nil {
		return err
	}
	*cfg = base

	for name, v := range changed {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if v.isList {
			if err := f.Value.(pflag.SliceValue).Replace(v.slice); err != nil {
				return fmt.Errorf("--%s: %w", name, err)
			}
			continue
		}
		if err := f.Value.Set(v.scalar); err != nil {
			return fmt.Errorf("--%s: %w", name, err)
		}
	}
	ApplyNegated(cfg, n)
	return nil
}

// pflag.Value adapters so enum types can be bound with fs.Var.

type colorModeValue struct{ p *ColorMode }

func (c *colorModeValue) String() string { return string(*c.p) }
func (c *colorModeValue) Type() string   { return "mode" }
func (c *colorModeValue) Set(s string) error {
	switch m := ColorMode(strings.ToLower(s)); m {
	case ColorAuto, ColorAlways, ColorNever:
		*c.p = m
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}

type formatValue struct{ p *ManifestFormat }

func (f *formatValue) String() string { return string(*f.p) }
func (f *formatValue) Type() string   { return "format" }
func (f *formatValue) Set(s string) error {
	switch m := ManifestFormat(strings.ToLower(s)); m {
	case FormatText, FormatJSON, FormatYAML, FormatParquet:
		*f.p = m
	default:
		return fmt.Errorf("invalid format %q (use 'text', 'json', 'yaml' or 'parquet')", s)
	}
	return nil
}
