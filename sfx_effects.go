// sfx_effects.go - Toneprints and per-step effect functions

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
	"math"
	"math/rand/v2"
)

// tonePrint returns one sample of the waveform at position (0..1024) in the
// 0..1023 domain. Noise ignores position.
func tonePrint(wave Waveform, position float64, rng *rand.Rand) float64 {
	pos := int(position) & (SFX_TONE_WIDTH - 1)
	switch wave {
	case WaveSine:
		return float64(sineTone[pos])
	case WaveSawtooth:
		return float64(pos)
	case WaveTriangle:
		if pos < SFX_TONE_WIDTH/2 {
			return float64(pos * 2)
		}
		return float64((SFX_SAMPLE_RANGE - pos) * 2)
	case WaveSquare:
		if pos < SFX_TONE_WIDTH/2 {
			return SFX_SAMPLE_RANGE
		}
		return 0
	case WaveNoise:
		return float64(rng.IntN(SFX_SAMPLE_RANGE + 1))
	}
	return SFX_SILENCE
}

// applyEffect runs one effect step against the synthesizer's instantaneous
// frequency and volume. fx is the record being played, step the effect's
// current step and steps its (already clamped to >= 1) step count.
func (s *ToneSynthesizer) applyEffect(fx *SoundEffect, e *ToneEffect, step, steps int) {
	p := e.Parameter
	f0 := fx.Frequency
	switch e.Kind {
	case EffectNone:
	case EffectLinear:
		s.frequency = f0 + (p-f0)/float64(steps)*float64(step)
	case EffectCurve:
		s.frequency = math.Sin(float64(step)*sfxCurveRate)*(p-f0) + f0
	case EffectExponentialRising:
		s.frequency = f0 + math.Sin(sfxDegreeToRad*float64(step))*p
	case EffectExponentialFalling:
		s.frequency = f0 + math.Cos(sfxDegreeToRad*float64(step))*p
	case EffectLogarithmic:
		s.frequency = f0 + math.Log10(float64(max(step, 1)))*(p-f0)/sfxLogDivisor
	case EffectArpeggioAscending:
		s.frequency = FrequencyFromProgression(f0, e.Progression, step)
	case EffectArpeggioDescending:
		s.frequency = FrequencyFromProgression(f0, e.Progression, steps-step-1)
	case EffectVolumeRamp:
		if steps > 1 {
			s.volume = fx.Volume + float64(step)*(p-fx.Volume)/float64(steps-1)
		}
	case EffectFrequencyVibrato:
		if step == 0 {
			return
		}
		if step%2 == 0 {
			s.frequency += p
		} else {
			s.frequency -= p
		}
	case EffectVolumeVibrato:
		if step == 0 {
			return
		}
		if step%2 == 0 {
			s.volume += p / sfxVolumeVibDiv
		} else {
			s.volume -= p / sfxVolumeVibDiv
		}
		s.volume = min(max(s.volume, 0), 1)
	case EffectWarble:
		s.frequency = math.Sin(float64(step))*(p-f0) + f0
	}
}
