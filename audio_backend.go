// audio_backend.go - Audio output backend selection

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
	"strings"
)

const (
	AUDIO_BACKEND_OTO = iota
	AUDIO_BACKEND_EBITEN
	AUDIO_BACKEND_PORTAUDIO
	AUDIO_BACKEND_ALSA
	AUDIO_BACKEND_HEADLESS
)

var audioBackendNames = map[string]int{
	"oto":       AUDIO_BACKEND_OTO,
	"ebiten":    AUDIO_BACKEND_EBITEN,
	"portaudio": AUDIO_BACKEND_PORTAUDIO,
	"alsa":      AUDIO_BACKEND_ALSA,
	"headless":  AUDIO_BACKEND_HEADLESS,
}

// SampleSource produces mono float samples on demand. AudioContext is the
// only implementation outside tests.
type SampleSource interface {
	Render(out []float32)
}

// AudioOutput is a running device pulling from a SampleSource.
type AudioOutput interface {
	Start()
	Stop()
	Close()
	IsStarted() bool
}

// checkDeviceRate rejects a process-wide device opened at another rate;
// mixing into it would play at the wrong pitch.
func checkDeviceRate(open, want int) error {
	if open != want {
		return fmt.Errorf("device already open at %dHz, want %dHz", open, want)
	}
	return nil
}

// ParseAudioBackend maps a backend name to its AUDIO_BACKEND_* constant.
func ParseAudioBackend(name string) (int, error) {
	if b, ok := audioBackendNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return b, nil
	}
	return 0, fmt.Errorf("unknown audio backend %q", name)
}

// AudioBackendName returns the flag name of a backend constant.
func AudioBackendName(backend int) string {
	for name, b := range audioBackendNames {
		if b == backend {
			return name
		}
	}
	return fmt.Sprintf("backend(%d)", backend)
}

// NewAudioOutput opens backend at sampleRate and connects it to source. The
// output is returned stopped.
func NewAudioOutput(backend int, sampleRate int, source SampleSource) (AudioOutput, error) {
	switch backend {
	case AUDIO_BACKEND_OTO:
		p, err := NewOtoPlayer(sampleRate, source)
		if err != nil {
			return nil, fmt.Errorf("oto: %w", err)
		}
		return p, nil
	case AUDIO_BACKEND_EBITEN:
		p, err := NewEbitenPlayer(sampleRate, source)
		if err != nil {
			return nil, fmt.Errorf("ebiten: %w", err)
		}
		return p, nil
	case AUDIO_BACKEND_PORTAUDIO:
		p, err := NewPortAudioPlayer(sampleRate, source)
		if err != nil {
			return nil, fmt.Errorf("portaudio: %w", err)
		}
		return p, nil
	case AUDIO_BACKEND_ALSA:
		p, err := NewALSAPlayer(sampleRate, source)
		if err != nil {
			return nil, fmt.Errorf("alsa: %w", err)
		}
		return p, nil
	case AUDIO_BACKEND_HEADLESS:
		return NewHeadlessPlayer(sampleRate, source, nil), nil
	}
	return nil, fmt.Errorf("unknown audio backend %d", backend)
}
