// audio_backend_test.go - Tests for backend selection and the headless pump

package main

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestParseAudioBackend(t *testing.T) {
	tests := []struct {
		name    string
		want    int
		wantErr bool
	}{
		{"oto", AUDIO_BACKEND_OTO, false},
		{"EBITEN", AUDIO_BACKEND_EBITEN, false},
		{" portaudio ", AUDIO_BACKEND_PORTAUDIO, false},
		{"alsa", AUDIO_BACKEND_ALSA, false},
		{"headless", AUDIO_BACKEND_HEADLESS, false},
		{"pulse", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseAudioBackend(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAudioBackend(%q) err = %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAudioBackend(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
	if AudioBackendName(AUDIO_BACKEND_HEADLESS) != "headless" {
		t.Errorf("AudioBackendName(headless) = %q", AudioBackendName(AUDIO_BACKEND_HEADLESS))
	}
}

type countingSource struct {
	frames atomic.Int64
}

func (c *countingSource) Render(out []float32) {
	c.frames.Add(int64(len(out)))
}

func TestHeadlessPlayer_Pumps(t *testing.T) {
	src := &countingSource{}
	var blocks atomic.Int64
	hp := NewHeadlessPlayer(8000, src, func([]float32) { blocks.Add(1) })
	if hp.IsStarted() {
		t.Fatalf("player started before Start")
	}
	hp.Start()
	hp.Start()
	deadline := time.Now().Add(2 * time.Second)
	for src.frames.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(HEADLESS_TICK)
	}
	hp.Close()
	hp.Close()
	if src.frames.Load() == 0 || blocks.Load() == 0 {
		t.Fatalf("headless pump rendered nothing")
	}
	if hp.IsStarted() {
		t.Errorf("player still started after Close")
	}
	if n := src.frames.Load(); n%80 != 0 {
		t.Errorf("rendered %d frames, want whole 10ms blocks at 8 kHz", n)
	}
}

func TestCheckDeviceRate(t *testing.T) {
	if err := checkDeviceRate(AUDIO_SAMPLE_RATE, AUDIO_SAMPLE_RATE); err != nil {
		t.Errorf("matching rate rejected: %v", err)
	}
	err := checkDeviceRate(48000, AUDIO_SAMPLE_RATE)
	if err == nil || !strings.Contains(err.Error(), "48000Hz") {
		t.Errorf("mismatched rate: err = %v", err)
	}
}

func TestOpenSession_Headless(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = "headless"
	cfg.Volume = 64
	cfg.Muted = true
	session, err := openSession(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), AudioOptions{})
	if err != nil {
		t.Fatalf("openSession: %v", err)
	}
	defer session.Close()
	if !session.output.IsStarted() {
		t.Errorf("output not started")
	}
	if !session.board.IsMuted() {
		t.Errorf("muted config not applied")
	}

	start := session.ctx.CurrentTime()
	deadline := time.Now().Add(2 * time.Second)
	for session.ctx.CurrentTime() == start && time.Now().Before(deadline) {
		time.Sleep(HEADLESS_TICK)
	}
	if session.ctx.CurrentTime() == start {
		t.Errorf("headless session clock did not advance")
	}
}

func TestOpenSession_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SampleRate = 1
	if _, err := openSession(cfg, slog.New(slog.DiscardHandler), AudioOptions{}); err == nil {
		t.Errorf("openSession accepted an invalid rate")
	}
}

func TestPrintFeatures(t *testing.T) {
	var buf bytes.Buffer
	printFeatures(&buf)
	out := buf.String()
	if !strings.HasPrefix(out, "sfxsynth ") {
		t.Errorf("output %q", out)
	}
	for _, f := range compiledFeatures {
		if !strings.Contains(out, "  "+f+"\n") {
			t.Errorf("feature %s missing from %q", f, out)
		}
	}
}
