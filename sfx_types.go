// sfx_types.go - Decoded sound expression records

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

import "fmt"

// Waveform selects the toneprint used by the synthesizer oscillator.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveSawtooth
	WaveTriangle
	WaveSquare
	WaveNoise
)

var waveformNames = [...]string{"sine", "sawtooth", "triangle", "square", "noise"}

func (w Waveform) String() string {
	if w < 0 || int(w) >= len(waveformNames) {
		return fmt.Sprintf("wave(%d)", int(w))
	}
	return waveformNames[w]
}

func (w Waveform) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// EffectKind is the closed set of per-record effects. The synthesizer
// dispatches on it with a switch on the per-sample path.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectLinear
	EffectCurve
	EffectExponentialRising
	EffectExponentialFalling
	EffectLogarithmic
	EffectArpeggioAscending
	EffectArpeggioDescending
	EffectVolumeRamp
	EffectFrequencyVibrato
	EffectVolumeVibrato
	EffectWarble
)

var effectKindNames = [...]string{
	"none", "linear", "curve", "exp-rising", "exp-falling", "log",
	"arpeggio-up", "arpeggio-down", "volume-ramp",
	"frequency-vibrato", "volume-vibrato", "warble",
}

func (k EffectKind) String() string {
	if k < 0 || int(k) >= len(effectKindNames) {
		return fmt.Sprintf("effect(%d)", int(k))
	}
	return effectKindNames[k]
}

func (k EffectKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsArpeggio reports whether the effect steps through a progression.
func (k EffectKind) IsArpeggio() bool {
	return k == EffectArpeggioAscending || k == EffectArpeggioDescending
}

// ToneEffect is one decoded effect slot. Step counters are run-time state
// and live in the synthesizer, not here.
type ToneEffect struct {
	Kind        EffectKind   `json:"kind"`
	Steps       int          `json:"steps"`
	Parameter   float64      `json:"parameter"`
	Progression *Progression `json:"progression,omitempty"`
}

// SoundEffect is a single 72 character record after decoding and jitter.
type SoundEffect struct {
	Frequency float64                      `json:"frequency"`
	Volume    float64                      `json:"volume"`
	Duration  float64                      `json:"duration_ms"`
	Tone      Waveform                     `json:"tone"`
	Effects   [SFX_TONE_EFFECTS]ToneEffect `json:"effects"`

	// Integer fields after jitter, kept for re-encoding only.
	raw sfxRecordFields
}

// sfxRecordFields holds the decimal fields of one record.
type sfxRecordFields struct {
	wave, volume, frequency, duration, shape int
	endFrequency, endVolume, steps           int
	fxChoice, fxParam, fxSteps               int
}

// Shape returns the frequency shaping effect slot.
func (fx SoundEffect) Shape() ToneEffect { return fx.Effects[SFX_EFFECT_SHAPE] }

// VolumeRamp returns the volume ramp slot.
func (fx SoundEffect) VolumeRamp() ToneEffect { return fx.Effects[SFX_EFFECT_VOLUME] }

// Modulation returns the secondary modulation slot.
func (fx SoundEffect) Modulation() ToneEffect { return fx.Effects[SFX_EFFECT_FX] }

func (fx SoundEffect) String() string {
	shape := fx.Shape()
	s := fmt.Sprintf("%s %4.0fHz vol=%.3f %4.0fms shape=%s", fx.Tone, fx.Frequency, fx.Volume, fx.Duration, shape.Kind)
	if shape.Progression != nil {
		s += "(" + shape.Progression.Name + ")"
	} else if shape.Kind != EffectNone {
		s += fmt.Sprintf("->%.0fHz", shape.Parameter)
	}
	s += fmt.Sprintf(" endvol=%.3f", fx.VolumeRamp().Parameter)
	if mod := fx.Modulation(); mod.Kind != EffectNone {
		s += fmt.Sprintf(" %s(%.0f x%d)", mod.Kind, mod.Parameter, mod.Steps)
	}
	return s
}
