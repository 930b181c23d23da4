// config.go - Runtime configuration with environment fallbacks

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

const (
	DEFAULT_BACKEND = "oto"
	DEFAULT_LISTEN  = ":8080"
	ENV_PREFIX      = "SFXSYNTH_"
)

// Config holds the settings shared by every command. Flags override the
// SFXSYNTH_* environment, which overrides the defaults.
type Config struct {
	Backend    string
	SampleRate int
	Volume     int
	Muted      bool
	Verbose    bool
	Listen     string
	NoiseSeed  uint64 // 0 picks a random seed per phrase
}

func DefaultConfig() Config {
	return Config{
		Backend:    DEFAULT_BACKEND,
		SampleRate: AUDIO_SAMPLE_RATE,
		Volume:     AUDIO_MAX_VOLUME,
		Listen:     DEFAULT_LISTEN,
	}
}

// ApplyEnv overlays SFXSYNTH_BACKEND, _SAMPLE_RATE, _VOLUME, _MUTED,
// _VERBOSE, _LISTEN and _NOISE_SEED.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(ENV_PREFIX + "BACKEND"); ok && v != "" {
		c.Backend = v
	}
	if v, ok := lookup(ENV_PREFIX + "LISTEN"); ok && v != "" {
		c.Listen = v
	}
	ints := []struct {
		name string
		dst  *int
	}{
		{"SAMPLE_RATE", &c.SampleRate},
		{"VOLUME", &c.Volume},
	}
	for _, f := range ints {
		v, ok := lookup(ENV_PREFIX + f.name)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %w", ENV_PREFIX, f.name, err)
		}
		*f.dst = n
	}
	bools := []struct {
		name string
		dst  *bool
	}{
		{"MUTED", &c.Muted},
		{"VERBOSE", &c.Verbose},
	}
	for _, f := range bools {
		v, ok := lookup(ENV_PREFIX + f.name)
		if !ok || v == "" {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %w", ENV_PREFIX, f.name, err)
		}
		*f.dst = b
	}
	if v, ok := lookup(ENV_PREFIX + "NOISE_SEED"); ok && v != "" {
		seed, err := strconv.ParseUint(strings.TrimSpace(v), 0, 64)
		if err != nil {
			return fmt.Errorf("%sNOISE_SEED: %w", ENV_PREFIX, err)
		}
		c.NoiseSeed = seed
	}
	return nil
}

// Validate checks ranges and returns the parsed backend.
func (c Config) Validate() (int, error) {
	backend, err := ParseAudioBackend(c.Backend)
	if err != nil {
		return 0, err
	}
	if c.SampleRate < 8000 || c.SampleRate > 192000 {
		return 0, fmt.Errorf("sample rate %d out of range 8000-192000", c.SampleRate)
	}
	if c.Volume < 0 || c.Volume > AUDIO_MAX_VOLUME {
		return 0, fmt.Errorf("volume %d out of range 0-%d", c.Volume, AUDIO_MAX_VOLUME)
	}
	return backend, nil
}

// SynthOptions returns the synthesizer options implied by the config.
func (c Config) SynthOptions() []SynthOption {
	if c.NoiseSeed == 0 {
		return nil
	}
	return []SynthOption{WithNoiseSeed(c.NoiseSeed)}
}

// NewLogger builds the text logger used throughout the process.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
