// config_test.go - Tests for configuration loading

package main

import (
	"bytes"
	"strings"
	"testing"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(envMap(map[string]string{
		"SFXSYNTH_BACKEND":     "headless",
		"SFXSYNTH_SAMPLE_RATE": " 22050 ",
		"SFXSYNTH_VOLUME":      "128",
		"SFXSYNTH_MUTED":       "true",
		"SFXSYNTH_VERBOSE":     "1",
		"SFXSYNTH_LISTEN":      "127.0.0.1:9000",
		"SFXSYNTH_NOISE_SEED":  "0x10",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	want := Config{
		Backend:    "headless",
		SampleRate: 22050,
		Volume:     128,
		Muted:      true,
		Verbose:    true,
		Listen:     "127.0.0.1:9000",
		NoiseSeed:  16,
	}
	if cfg != want {
		t.Errorf("config %+v, want %+v", cfg, want)
	}
}

func TestConfig_ApplyEnvKeepsDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(envMap(map[string]string{"SFXSYNTH_BACKEND": ""})); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("empty environment changed config: %+v", cfg)
	}
}

func TestConfig_ApplyEnvErrors(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"SFXSYNTH_SAMPLE_RATE", "fast"},
		{"SFXSYNTH_VOLUME", "1.5"},
		{"SFXSYNTH_MUTED", "maybe"},
		{"SFXSYNTH_NOISE_SEED", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.ApplyEnv(envMap(map[string]string{tt.key: tt.value}))
			if err == nil || !strings.Contains(err.Error(), tt.key) {
				t.Errorf("err = %v, want one naming %s", err, tt.key)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		backend int
		wantErr bool
	}{
		{"defaults", func(*Config) {}, AUDIO_BACKEND_OTO, false},
		{"headless", func(c *Config) { c.Backend = "Headless" }, AUDIO_BACKEND_HEADLESS, false},
		{"unknown_backend", func(c *Config) { c.Backend = "jack" }, 0, true},
		{"rate_low", func(c *Config) { c.SampleRate = 4000 }, 0, true},
		{"rate_high", func(c *Config) { c.SampleRate = 384000 }, 0, true},
		{"volume_high", func(c *Config) { c.Volume = 256 }, 0, true},
		{"volume_low", func(c *Config) { c.Volume = -1 }, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			backend, err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && backend != tt.backend {
				t.Errorf("backend %d, want %d", backend, tt.backend)
			}
		})
	}
}

func TestConfig_SynthOptionsAndLogger(t *testing.T) {
	cfg := DefaultConfig()
	if opts := cfg.SynthOptions(); len(opts) != 0 {
		t.Errorf("unseeded config gave %d options", len(opts))
	}
	cfg.NoiseSeed = 42
	if opts := cfg.SynthOptions(); len(opts) != 1 {
		t.Errorf("seeded config gave %d options", len(opts))
	}

	var buf bytes.Buffer
	cfg.NewLogger(&buf).Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug logged without verbose: %q", buf.String())
	}
	cfg.Verbose = true
	cfg.NewLogger(&buf).Debug("shown", "k", 1)
	if !strings.Contains(buf.String(), "msg=shown") {
		t.Errorf("verbose logger output %q", buf.String())
	}
}
