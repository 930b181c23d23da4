// sfx_synth.go - Pull based sound expression synthesizer

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

// ToneSynthesizer renders decoded sound effects into fixed size blocks of
// 0..1023 samples. It is not safe for concurrent use; the owner confines it
// to one execution context (see AudioContext.Run).
type ToneSynthesizer struct {
	// Hot path state, touched every sample
	position  float64 // toneprint position, 0..SFX_TONE_WIDTH
	frequency float64 // instantaneous frequency (Hz)
	volume    float64 // instantaneous volume (0.0-1.0)

	samplesToWrite int
	samplesWritten int

	step           [SFX_TONE_EFFECTS]int
	steps          [SFX_TONE_EFFECTS]int
	samplesPerStep [SFX_TONE_EFFECTS]int

	// Phrase state
	effects []SoundEffect
	current int // index into effects, -1 before the first record
	active  bool

	startPosition float64
	sampleRate    int
	bufferSize    int
	rng           *rand.Rand
	onDone        func()
}

// SynthOption configures a ToneSynthesizer.
type SynthOption func(*ToneSynthesizer)

// WithNoiseSeed makes the noise toneprint deterministic.
func WithNoiseSeed(seed uint64) SynthOption {
	return func(s *ToneSynthesizer) {
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	}
}

// WithBufferSize overrides the number of samples returned by Pull.
func WithBufferSize(n int) SynthOption {
	return func(s *ToneSynthesizer) {
		if n > 0 {
			s.bufferSize = n
		}
	}
}

// NewToneSynthesizer creates an idle synthesizer. position is the toneprint
// position every phrase starts from; onDone runs once each time a phrase
// plays out to the end.
func NewToneSynthesizer(position float64, onDone func(), opts ...SynthOption) *ToneSynthesizer {
	s := &ToneSynthesizer{
		startPosition: math.Max(position, 0),
		sampleRate:    SFX_SAMPLE_RATE,
		bufferSize:    SFX_BUFFER_SIZE,
		current:       -1,
		onDone:        onDone,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

// SampleRate returns the rate Pull renders at.
func (s *ToneSynthesizer) SampleRate() int {
	return s.sampleRate
}

// Play starts effects from the first record, abandoning any phrase in
// progress. The slice is read, never modified.
func (s *ToneSynthesizer) Play(effects []SoundEffect) {
	s.effects = effects
	s.current = -1
	s.samplesToWrite = 0
	s.samplesWritten = 0
	s.position = s.startPosition
	s.active = true
}

// Stop silences the synthesizer without running the completion callback.
func (s *ToneSynthesizer) Stop() {
	s.active = false
	s.effects = nil
	s.current = -1
}

// IsActive reports whether a phrase is still rendering.
func (s *ToneSynthesizer) IsActive() bool {
	return s.active
}

// Pull renders the next block. Once the phrase completes the remainder of
// the block, and every later block, is silence.
func (s *ToneSynthesizer) Pull() []uint16 {
	out := make([]uint16, s.bufferSize)
	i := 0
	for i < len(out) && s.active {
		if s.samplesWritten == s.samplesToWrite {
			if !s.nextSoundEffect() {
				s.finish()
				break
			}
			continue
		}

		fx := &s.effects[s.current]
		for e := 0; e < SFX_TONE_EFFECTS; e++ {
			for s.step[e] < s.steps[e] && s.stepEnd(e) == s.samplesWritten {
				s.applyEffect(fx, &fx.Effects[e], s.step[e], s.steps[e])
				s.step[e]++
			}
		}

		skip := SFX_TONE_WIDTH_F * math.Max(s.frequency, 0) / float64(s.sampleRate)
		gain := SFX_SAMPLE_RANGE * s.volume / SFX_TONE_WIDTH_F
		offset := SFX_SILENCE - SFX_SILENCE*gain

		v := tonePrint(fx.Tone, s.position, s.rng)*gain + offset
		out[i] = uint16(min(max(math.Round(v), 0), SFX_SAMPLE_RANGE))
		i++
		s.samplesWritten++

		s.position += skip
		for s.position >= SFX_TONE_WIDTH_F {
			s.position -= SFX_TONE_WIDTH_F
		}
	}
	for ; i < len(out); i++ {
		out[i] = SFX_SILENCE
	}
	return out
}

// stepEnd is the sample index at which effect e's current step fires. The
// division remainder lands on the last step, which runs to the end of the
// record.
func (s *ToneSynthesizer) stepEnd(e int) int {
	return s.samplesPerStep[e] * s.step[e]
}

// nextSoundEffect loads the following record. It returns false when the
// phrase has no records left.
func (s *ToneSynthesizer) nextSoundEffect() bool {
	s.current++
	if s.current >= len(s.effects) {
		return false
	}
	fx := &s.effects[s.current]
	s.samplesToWrite = SampleCount(fx.Duration, s.sampleRate)
	s.samplesWritten = 0
	s.frequency = fx.Frequency
	s.volume = fx.Volume
	for e := 0; e < SFX_TONE_EFFECTS; e++ {
		s.step[e] = 0
		s.steps[e] = max(fx.Effects[e].Steps, 1)
		s.samplesPerStep[e] = s.samplesToWrite / s.steps[e]
	}
	return true
}

func (s *ToneSynthesizer) finish() {
	s.active = false
	s.effects = nil
	s.current = -1
	s.samplesToWrite = 0
	s.samplesWritten = 0
	if s.onDone != nil {
		s.onDone()
	}
}

// SampleCount converts a playout time in milliseconds to whole samples.
func SampleCount(ms float64, sampleRate int) int {
	return int(float64(sampleRate) * math.Abs(ms) / 1000)
}

// TotalDuration returns the summed duration of effects in milliseconds.
func TotalDuration(effects []SoundEffect) float64 {
	var total float64
	for _, fx := range effects {
		total += fx.Duration
	}
	return total
}
