package config

import (
	"fmt"
	"strconv"
	"strings"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "ASSETPREP_"

// ApplyEnv copies ASSETPREP_* variables into cfg. lookup is os.LookupEnv in
// production; tests pass a map-backed function. Variables loaded from a
// .env file by godotenv are visible here as ordinary environment.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	str("BASE", &cfg.SpritesBase)
	str("FFMPEG", &cfg.FFmpegPath)
	str("FFPROBE", &cfg.FFprobePath)
	str("PRESET", &cfg.Preset)
	str("CODEC", &cfg.VideoCodec)
	str("LOG", &cfg.LogFile)

	if v, ok := lookup(EnvPrefix + "COLOR"); ok && v != "" {
		cfg.ColorMode = ColorMode(strings.ToLower(v))
	}
	if v, ok := lookup(EnvPrefix + "CRF"); ok && v != "" {
		n, err := parseInt(v, EnvPrefix+"CRF")
		if err != nil {
			return err
		}
		cfg.CRF = n
	}
	if v, ok := lookup(EnvPrefix + "VERBOSE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sVERBOSE must be true or false (got %q)", EnvPrefix, v)
		}
		cfg.Verbose = b
	}
	return nil
}

// parseInt parses a string as an integer; returns a clear error on failure.
func parseInt(s, name string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number (got %q)", name, s)
	}
	return n, nil
}
