// Package config holds runtime configuration: defaults, the optional YAML
// file, ASSETPREP_* environment overrides, CLI flag binding, and validation.
// Defaults target web delivery (CRF 28 slow x264, q:v 2
// posters, optimized/ and posters/ subfolders).
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// --- Enum types for validated string fields ---

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// ManifestFormat selects how sprite scan results are rendered.
type ManifestFormat string

const (
	FormatText    ManifestFormat = "text" // One "<name>: {...}" line per file (default).
	FormatJSON    ManifestFormat = "json"
	FormatYAML    ManifestFormat = "yaml"
	FormatParquet ManifestFormat = "parquet" // Requires an output file.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then [LoadFile], [ApplyEnv] and finally the CLI flags bound by
// [BindGlobalFlags] and friends.
type Config struct {
	// Sprite scanner.
	SpritesBase    string         // Base the folder argument is resolved against. Default: executable dir.
	SpritesFolder  string         // Positional arg.
	ManifestFormat ManifestFormat // Default: "text".
	ManifestOutput string         // Optional file; stdout when empty.

	// Video batch paths.
	VideoDir     string   // Default: ".".
	OutputDir    string   // Root for OptimizedDir/PostersDir. Default: VideoDir.
	OptimizedDir string   // Default: "optimized".
	PostersDir   string   // Default: "posters".
	VideoExts    []string // Default: .mp4 .mov .webm.

	// ffmpeg settings.
	FFmpegPath    string // Default: "ffmpeg" (resolved on PATH).
	FFprobePath   string // Default: "ffprobe".
	VideoCodec    string // Default: "libx264".
	CRF           int    // Default: 28.
	Preset        string // Default: "slow".
	StripAudio    bool   // Default: true (-an).
	PosterSeek    string // Default: "0".
	PosterQuality int    // Default: 2 (-q:v, 1 best .. 31 worst).

	// Behavior flags.
	DryRun        bool
	SkipExisting  bool // Default: true. Cleared by --force.
	ShowFileStats bool // Default: true. Needs ffprobe; silently off without it.
	ShowProgress  bool // Default: true. Only drawn when stderr is a TTY.

	// Display and logging.
	Verbose    bool
	ColorMode  ColorMode // Default: "auto".
	LogFile    string    // Optional log file path.
	ConfigFile string    // Optional YAML file; DefaultConfigFile is tried when empty.
}

// DefaultConfigFile is loaded from the working directory when present and
// no --config flag was given.
const DefaultConfigFile = "assetprep.yaml"

// DefaultConfig returns a Config populated with the built-in defaults.
func DefaultConfig() Config {
	return Config{
		ManifestFormat: FormatText,
		VideoDir:       ".",
		OptimizedDir:   "optimized",
		PostersDir:     "posters",
		VideoExts:      []string{".mp4", ".mov", ".webm"},
		FFmpegPath:     "ffmpeg",
		FFprobePath:    "ffprobe",
		VideoCodec:     "libx264",
		CRF:            28,
		Preset:         "slow",
		StripAudio:     true,
		PosterSeek:     "0",
		PosterQuality:  2,
		SkipExisting:   true,
		ShowFileStats:  true,
		ShowProgress:   true,
		ColorMode:      ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and numeric ranges, and canonicalizes the
// video extension list to lowercase with a leading dot.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	switch c.ManifestFormat {
	case FormatText, FormatJSON, FormatYAML:
		// valid
	case FormatParquet:
		if c.ManifestOutput == "" {
			return errors.New("parquet format needs --output <file>")
		}
	default:
		return errors.New("invalid format (use 'text', 'json', 'yaml' or 'parquet')")
	}

	if c.CRF < 0 || c.CRF > 51 {
		return fmt.Errorf("crf must be between 0 and 51 (got %d)", c.CRF)
	}
	if c.PosterQuality < 1 || c.PosterQuality > 31 {
		return fmt.Errorf("poster quality must be between 1 and 31 (got %d)", c.PosterQuality)
	}
	if strings.TrimSpace(c.Preset) == "" {
		return errors.New("preset must not be empty")
	}
	if strings.TrimSpace(c.VideoCodec) == "" {
		return errors.New("video codec must not be empty")
	}
	if strings.TrimSpace(c.FFmpegPath) == "" {
		return errors.New("ffmpeg path must not be empty")
	}

	for _, d := range []struct{ name, val string }{
		{"optimized dir", c.OptimizedDir},
		{"posters dir", c.PostersDir},
	} {
		if err := validateSubdir(d.name, d.val); err != nil {
			return err
		}
	}
	if c.OptimizedDir == c.PostersDir {
		return errors.New("optimized dir and posters dir must differ")
	}

	exts, err := normalizeExts(c.VideoExts)
	if err != nil {
		return err
	}
	c.VideoExts = exts
	return nil
}

// validateSubdir requires a single relative path element.
func validateSubdir(name, dir string) error {
	if dir == "" {
		return fmt.Errorf("%s must not be empty", name)
	}
	if filepath.IsAbs(dir) || dir == "." || dir == ".." || strings.ContainsAny(dir, `/\`) {
		return fmt.Errorf("%s must be a plain folder name (got %q)", name, dir)
	}
	return nil
}

// normalizeExts lowercases, adds the leading dot, and drops duplicates.
// Accepted forms: "mp4", ".MP4", " .mov ".
func normalizeExts(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, e := range raw {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	if len(out) == 0 {
		return nil, errors.New("at least one video extension is required")
	}
	return out, nil
}

// ResolveOutputDir returns OutputDir, falling back to VideoDir.
func (c *Config) ResolveOutputDir() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return c.VideoDir
}
