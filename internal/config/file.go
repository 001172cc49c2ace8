package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the YAML layout. Pointer fields distinguish "absent"
// from a zero value so the file only overrides what it names.
type fileConfig struct {
	Sprites struct {
		Base   *string `yaml:"base"`
		Format *string `yaml:"format"`
		Output *string `yaml:"output"`
	} `yaml:"sprites"`

	Videos struct {
		Dir          *string  `yaml:"dir"`
		Out          *string  `yaml:"out"`
		OptimizedDir *string  `yaml:"optimized_dir"`
		PostersDir   *string  `yaml:"posters_dir"`
		Extensions   []string `yaml:"extensions"`
		Codec        *string  `yaml:"codec"`
		CRF          *int     `yaml:"crf"`
		Preset       *string  `yaml:"preset"`
		StripAudio   *bool    `yaml:"strip_audio"`
		PosterSeek   *string  `yaml:"poster_seek"`
		PosterQ      *int     `yaml:"poster_quality"`
		SkipExisting *bool    `yaml:"skip_existing"`
		FileStats    *bool    `yaml:"file_stats"`
		Progress     *bool    `yaml:"progress"`
	} `yaml:"videos"`

	FFmpeg  *string `yaml:"ffmpeg"`
	FFprobe *string `yaml:"ffprobe"`
	Color   *string `yaml:"color"`
	Log     *string `yaml:"log"`
	Verbose *bool   `yaml:"verbose"`
}

// LoadFile applies the YAML file at path to cfg. When optional is true a
// missing file is not an error (used for DefaultConfigFile).
func LoadFile(path string, cfg *Config, optional bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	fc.apply(cfg)
	return nil
}

func (fc *fileConfig) apply(cfg *Config) {
	setString(&cfg.SpritesBase, fc.Sprites.Base)
	if fc.Sprites.Format != nil {
		cfg.ManifestFormat = ManifestFormat(*fc.Sprites.Format)
	}
	setString(&cfg.ManifestOutput, fc.Sprites.Output)

	v := &fc.Videos
	setString(&cfg.VideoDir, v.Dir)
	setString(&cfg.OutputDir, v.Out)
	setString(&cfg.OptimizedDir, v.OptimizedDir)
	setString(&cfg.PostersDir, v.PostersDir)
	if len(v.Extensions) > 0 {
		cfg.VideoExts = append([]string(nil), v.Extensions...)
	}
	setString(&cfg.VideoCodec, v.Codec)
	setInt(&cfg.CRF, v.CRF)
	setString(&cfg.Preset, v.Preset)
	setBool(&cfg.StripAudio, v.StripAudio)
	setString(&cfg.PosterSeek, v.PosterSeek)
	setInt(&cfg.PosterQuality, v.PosterQ)
	setBool(&cfg.SkipExisting, v.SkipExisting)
	setBool(&cfg.ShowFileStats, v.FileStats)
	setBool(&cfg.ShowProgress, v.Progress)

	setString(&cfg.FFmpegPath, fc.FFmpeg)
	setString(&cfg.FFprobePath, fc.FFprobe)
	if fc.Color != nil {
		cfg.ColorMode = ColorMode(*fc.Color)
	}
	setString(&cfg.LogFile, fc.Log)
	setBool(&cfg.Verbose, fc.Verbose)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
