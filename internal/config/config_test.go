package config

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/pflag"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/srv/public/sprites", "/srv/public/sprites"},
		{"single trailing slash", "/srv/public/sprites/", "/srv/public/sprites"},
		{"multiple trailing slashes", "sprites///", "sprites"},
		{"root path", "/", "/"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDirArg(tt.in); got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDefaultConfig_MatchesScripts(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.CRF != 28 || cfg.Preset != "slow" || cfg.VideoCodec != "libx264" {
		t.Errorf("encode defaults = %d/%s/%s, want 28/slow/libx264", cfg.CRF, cfg.Preset, cfg.VideoCodec)
	}
	if cfg.PosterQuality != 2 || cfg.PosterSeek != "0" {
		t.Errorf("poster defaults = q%d ss%s, want q2 ss0", cfg.PosterQuality, cfg.PosterSeek)
	}
	if cfg.OptimizedDir != "optimized" || cfg.PostersDir != "posters" {
		t.Errorf("dirs = %s/%s", cfg.OptimizedDir, cfg.PostersDir)
	}
	if !cfg.StripAudio || !cfg.SkipExisting {
		t.Error("StripAudio and SkipExisting should default to true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"crf upper bound", func(c *Config) { c.CRF = 51 }, false},
		{"crf too high", func(c *Config) { c.CRF = 52 }, true},
		{"crf negative", func(c *Config) { c.CRF = -1 }, true},
		{"poster quality zero", func(c *Config) { c.PosterQuality = 0 }, true},
		{"poster quality 31", func(c *Config) { c.PosterQuality = 31 }, false},
		{"empty preset", func(c *Config) { c.Preset = " " }, true},
		{"unknown color", func(c *Config) { c.ColorMode = "rainbow" }, true},
		{"unknown format", func(c *Config) { c.ManifestFormat = "xml" }, true},
		{"parquet without output", func(c *Config) { c.ManifestFormat = FormatParquet }, true},
		{"parquet with output", func(c *Config) {
			c.ManifestFormat = FormatParquet
			c.ManifestOutput = "sheets.parquet"
		}, false},
		{"nested optimized dir", func(c *Config) { c.OptimizedDir = "out/optimized" }, true},
		{"absolute posters dir", func(c *Config) { c.PostersDir = "/tmp/posters" }, true},
		{"same subdirs", func(c *Config) { c.PostersDir = "optimized" }, true},
		{"no extensions", func(c *Config) { c.VideoExts = []string{" ", ""} }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_NormalizesExtensions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VideoExts = []string{"MP4", ".Mov", " webm ", ".mp4"}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	want := []string{".mp4", ".mov", ".webm"}
	if !reflect.DeepEqual(cfg.VideoExts, want) {
		t.Errorf("VideoExts = %v, want %v", cfg.VideoExts, want)
	}
}

func TestResolveOutputDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VideoDir = "background"
	if got := cfg.ResolveOutputDir(); got != "background" {
		t.Errorf("got %q, want video dir", got)
	}
	cfg.OutputDir = "dist"
	if got := cfg.ResolveOutputDir(); got != "dist" {
		t.Errorf("got %q, want dist", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assetprep.yaml")
	data := `
sprites:
  base: /srv/public/sprites
  format: yaml
videos:
  crf: 23
  preset: medium
  extensions: [mp4, mkv]
  strip_audio: false
ffmpeg: /opt/ffmpeg/bin/ffmpeg
color: never
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := LoadFile(path, &cfg, false); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.SpritesBase != "/srv/public/sprites" || cfg.ManifestFormat != FormatYAML {
		t.Errorf("sprites section not applied: %+v", cfg)
	}
	if cfg.CRF != 23 || cfg.Preset != "medium" || cfg.StripAudio {
		t.Errorf("videos section not applied: crf=%d preset=%s strip=%v", cfg.CRF, cfg.Preset, cfg.StripAudio)
	}
	if !reflect.DeepEqual(cfg.VideoExts, []string{"mp4", "mkv"}) {
		t.Errorf("extensions = %v", cfg.VideoExts)
	}
	if cfg.FFmpegPath != "/opt/ffmpeg/bin/ffmpeg" || cfg.ColorMode != ColorNever {
		t.Errorf("top-level keys not applied: %s %s", cfg.FFmpegPath, cfg.ColorMode)
	}
	// Keys absent from the file keep their defaults.
	if cfg.PosterQuality != 2 || cfg.OptimizedDir != "optimized" {
		t.Errorf("absent keys changed: q=%d dir=%s", cfg.PosterQuality, cfg.OptimizedDir)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")
	cfg := DefaultConfig()
	if err := LoadFile(path, &cfg, true); err != nil {
		t.Errorf("optional missing file should be ignored: %v", err)
	}
	if err := LoadFile(path, &cfg, false); err == nil {
		t.Error("explicit missing file should fail")
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("videos: [unclosed"), 0o644)
	cfg := DefaultConfig()
	if err := LoadFile(path, &cfg, false); err == nil {
		t.Error("expected parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"ASSETPREP_BASE":    "/opt/app/public",
		"ASSETPREP_FFMPEG":  "/usr/local/bin/ffmpeg",
		"ASSETPREP_CRF":     "30",
		"ASSETPREP_COLOR":   "ALWAYS",
		"ASSETPREP_VERBOSE": "true",
		"ASSETPREP_PRESET":  "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := DefaultConfig()
	if err := ApplyEnv(&cfg, lookup); err != nil {
		t.Fatal(err)
	}
	if cfg.SpritesBase != "/opt/app/public" || cfg.FFmpegPath != "/usr/local/bin/ffmpeg" {
		t.Errorf("string overrides: %+v", cfg)
	}
	if cfg.CRF != 30 || cfg.ColorMode != ColorAlways || !cfg.Verbose {
		t.Errorf("typed overrides: crf=%d color=%s verbose=%v", cfg.CRF, cfg.ColorMode, cfg.Verbose)
	}
	if cfg.Preset != "slow" {
		t.Errorf("empty variable should not override, got %q", cfg.Preset)
	}
}

func TestApplyEnv_BadNumber(t *testing.T) {
	lookup := func(k string) (string, bool) {
		if k == "ASSETPREP_CRF" {
			return "high", true
		}
		return "", false
	}
	cfg := DefaultConfig()
	if err := ApplyEnv(&cfg, lookup); err == nil {
		t.Error("expected error for non-numeric CRF")
	}
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	os.WriteFile(path, []byte("videos:\n  crf: 20\n  preset: fast\n  poster_quality: 5\n"), 0o644)

	cfg := DefaultConfig()
	var n Negated
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindGlobalFlags(fs, &cfg, &n)
	BindVideoFlags(fs, &cfg, &n)
	if err := fs.Parse([]string{"--config", path, "--crf", "35", "--ext", "mkv,mp4", "--force", "--no-color"}); err != nil {
		t.Fatal(err)
	}

	env := func(k string) (string, bool) {
		if k == "ASSETPREP_PRESET" {
			return "veryslow", true
		}
		return "", false
	}
	if err := Load(fs, &cfg, &n, env); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.CRF != 35 {
		t.Errorf("flag should beat file: CRF = %d", cfg.CRF)
	}
	if cfg.Preset != "veryslow" {
		t.Errorf("env should beat file: Preset = %q", cfg.Preset)
	}
	if cfg.PosterQuality != 5 {
		t.Errorf("file should beat default: PosterQuality = %d", cfg.PosterQuality)
	}
	if !reflect.DeepEqual(cfg.VideoExts, []string{"mkv", "mp4"}) {
		t.Errorf("slice flag lost: %v", cfg.VideoExts)
	}
	if cfg.SkipExisting || cfg.ColorMode != ColorNever {
		t.Errorf("negated flags not applied: skip=%v color=%s", cfg.SkipExisting, cfg.ColorMode)
	}
	if cfg.ConfigFile != path {
		t.Errorf("ConfigFile = %q", cfg.ConfigFile)
	}
}

func TestLoad_ColorFlags(t *testing.T) {
	t.Chdir(t.TempDir())
	noEnv := func(string) (string, bool) { return "", false }

	tests := []struct {
		args []string
		want ColorMode
	}{
		{nil, ColorAuto},
		{[]string{"--color-mode", "never"}, ColorNever},
		{[]string{"--color-mode", "always"}, ColorAlways},
		{[]string{"--color"}, ColorAlways},
		{[]string{"--no-color"}, ColorNever},
		{[]string{"--color", "--no-color"}, ColorNever},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		var n Negated
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		BindGlobalFlags(fs, &cfg, &n)
		if err := fs.Parse(tt.args); err != nil {
			t.Fatalf("%v: %v", tt.args, err)
		}
		if err := Load(fs, &cfg, &n, noEnv); err != nil {
			t.Fatalf("%v: Load: %v", tt.args, err)
		}
		if cfg.ColorMode != tt.want {
			t.Errorf("%v: ColorMode = %s, want %s", tt.args, cfg.ColorMode, tt.want)
		}
	}

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg := DefaultConfig()
	BindGlobalFlags(fs, &cfg, &Negated{})
	if err := fs.Parse([]string{"--color-mode", "rainbow"}); err == nil {
		t.Error("--color-mode rainbow: expected error")
	}
}
