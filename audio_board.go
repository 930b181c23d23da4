// audio_board.go - Board audio facade: expressions, tone oscillator and PCM channels

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
	"log/slog"
)

const (
	BOARD_DEFAULT_FREQUENCY = 440.0
	BOARD_PCM_MAX           = 255.0
)

// AudioOptions wires the producers behind the default and speech channels.
// Both callbacks run inside AudioContext.Run and should write through the
// channel returned by Default or Speech, not through the locking BoardAudio
// methods.
type AudioOptions struct {
	DefaultAudioCallback func()
	SpeechAudioCallback  func()

	// OnExpressionDone, when set, runs inside AudioContext.Run each time a
	// phrase has been fully synthesized.
	OnExpressionDone func()

	Logger    *slog.Logger
	SynthOpts []SynthOption
}

// BoardAudio is the audio surface a simulated board drives: sound
// expressions, the legacy tone oscillator and two PCM channels, all mixed
// on one AudioContext.
type BoardAudio struct {
	ctx    *AudioContext
	logger *slog.Logger

	frequency    float64
	muted        bool
	oscillatorOn bool

	defaultCh       *BufferedAudio
	speech          *BufferedAudio
	soundExpression *BufferedAudio

	currentSoundExpressionCallback func()
	onExpressionDone               func()
	synthOpts                      []SynthOption
	closed                         bool
}

// NewBoardAudio attaches a board to ctx. The context stays owned by the
// caller and must outlive the board.
func NewBoardAudio(ctx *AudioContext, opts AudioOptions) *BoardAudio {
	b := &BoardAudio{
		ctx:              ctx,
		logger:           opts.Logger,
		frequency:        BOARD_DEFAULT_FREQUENCY,
		onExpressionDone: opts.OnExpressionDone,
		synthOpts:        opts.SynthOpts,
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	rate := ctx.SampleRate()
	b.defaultCh = NewBufferedAudio(ctx, rate, opts.DefaultAudioCallback)
	b.speech = NewBufferedAudio(ctx, rate, opts.SpeechAudioCallback)
	b.soundExpression = NewBufferedAudio(ctx, SFX_SAMPLE_RATE, func() {
		if b.currentSoundExpressionCallback != nil {
			b.currentSoundExpressionCallback()
		}
	})
	return b
}

// Context returns the device the board plays on.
func (b *BoardAudio) Context() *AudioContext {
	return b.ctx
}

// Default returns the default PCM channel. Outside a channel callback wrap
// calls in Context().Run.
func (b *BoardAudio) Default() *BufferedAudio {
	return b.defaultCh
}

// Speech returns the speech PCM channel. Outside a channel callback wrap
// calls in Context().Run.
func (b *BoardAudio) Speech() *BufferedAudio {
	return b.speech
}

// DecodeExpression decodes a built-in name or descriptor. Invalid input is
// logged and yields nil.
func (b *BoardAudio) DecodeExpression(expr string) []SoundEffect {
	effects, err := DecodeExpression(expr)
	if err != nil {
		b.logger.Warn("rejected sound expression", "expression", expr, "error", err)
		return nil
	}
	return effects
}

// PlaySoundExpression decodes expr and plays it, replacing any phrase in
// progress. Invalid descriptors are logged and not played.
func (b *BoardAudio) PlaySoundExpression(expr string) error {
	effects, err := DecodeExpression(expr)
	if err != nil {
		b.logger.Warn("rejected sound expression", "expression", expr, "error", err)
		return err
	}
	b.PlayExpression(effects)
	return nil
}

// PlayExpression plays already decoded effects.
func (b *BoardAudio) PlayExpression(effects []SoundEffect) {
	b.ctx.Run(func() {
		b.playLocked(effects)
	})
}

func (b *BoardAudio) playLocked(effects []SoundEffect) {
	if b.closed {
		return
	}
	synth := NewToneSynthesizer(0, b.expressionDone, b.synthOpts...)
	synth.Play(effects)

	callback := func() {
		source := synth.Pull()
		target := NewAudioBuffer(len(source), synth.SampleRate())
		for i, s := range source {
			target.Data[i] = (float32(s) - SFX_SILENCE) / SFX_SILENCE
		}
		b.soundExpression.WriteData(target)
	}
	b.currentSoundExpressionCallback = callback
	callback()
}

func (b *BoardAudio) expressionDone() {
	b.currentSoundExpressionCallback = nil
	if b.onExpressionDone != nil {
		b.onExpressionDone()
	}
}

// StopExpression stops feeding the current phrase. Blocks already queued
// play out. Safe to call when idle.
func (b *BoardAudio) StopExpression() {
	b.ctx.Run(func() {
		b.currentSoundExpressionCallback = nil
	})
}

// IsExpressionActive reports whether a phrase is still being synthesized.
func (b *BoardAudio) IsExpressionActive() bool {
	var active bool
	b.ctx.Run(func() {
		active = b.currentSoundExpressionCallback != nil
	})
	return active
}

// ExpressionDrained reports whether the phrase has finished and its last
// block has played. Nothing is left to play once the context is closed.
func (b *BoardAudio) ExpressionDrained() bool {
	var drained bool
	b.ctx.Run(func() {
		drained = b.ctx.IsClosed() ||
			b.currentSoundExpressionCallback == nil && b.soundExpression.Pending() == 0
	})
	return drained
}

// SetVolume sets the master volume, 0..255.
func (b *BoardAudio) SetVolume(volume int) {
	b.ctx.SetVolume(volume)
}

// Mute silences all output. The state is kept across playback.
func (b *BoardAudio) Mute() {
	b.ctx.Run(func() {
		b.muted = true
		b.ctx.SetMuted(true)
	})
}

// Unmute restores output.
func (b *BoardAudio) Unmute() {
	b.ctx.Run(func() {
		b.muted = false
		b.ctx.SetMuted(false)
	})
}

// IsMuted reports the mute state.
func (b *BoardAudio) IsMuted() bool {
	var muted bool
	b.ctx.Run(func() {
		muted = b.muted
	})
	return muted
}

// SetPeriodUs sets the tone oscillator period. Zero selects the CODAL
// default pitch.
func (b *BoardAudio) SetPeriodUs(periodUs int) {
	b.ctx.Run(func() {
		if periodUs == 0 {
			b.frequency = SFX_DEFAULT_PERIOD_HZ
		} else {
			b.frequency = 1_000_000 / float64(periodUs)
		}
		if b.oscillatorOn {
			b.ctx.SetOscillator(b.frequency, true)
		}
	})
}

// Frequency returns the tone oscillator frequency in Hz.
func (b *BoardAudio) Frequency() float64 {
	var f float64
	b.ctx.Run(func() {
		f = b.frequency
	})
	return f
}

// SetAmplitudeU10 starts the tone oscillator at full scale for any non-zero
// amplitude and stops it for zero.
func (b *BoardAudio) SetAmplitudeU10(amplitude int) {
	b.ctx.Run(func() {
		b.stopOscillatorLocked()
		if amplitude != 0 && !b.closed {
			b.oscillatorOn = true
			b.ctx.SetOscillator(b.frequency, true)
		}
	})
}

func (b *BoardAudio) stopOscillatorLocked() {
	if b.oscillatorOn {
		b.ctx.SetOscillator(b.frequency, false)
		b.oscillatorOn = false
	}
}

// WriteDefaultData queues unsigned 8-bit samples on the default channel.
func (b *BoardAudio) WriteDefaultData(samples []byte) {
	b.ctx.Run(func() {
		b.defaultCh.WriteData(PCMBufferFromU8(samples, b.defaultCh.SampleRate()))
	})
}

// WriteSpeechData queues unsigned 8-bit samples on the speech channel.
func (b *BoardAudio) WriteSpeechData(samples []byte) {
	b.ctx.Run(func() {
		b.speech.WriteData(PCMBufferFromU8(samples, b.speech.SampleRate()))
	})
}

// PCMBufferFromU8 converts unsigned 8-bit samples to a float buffer.
func PCMBufferFromU8(samples []byte, sampleRate int) *AudioBuffer {
	buf := NewAudioBuffer(len(samples), sampleRate)
	for i, v := range samples {
		buf.Data[i] = float32(v)/BOARD_PCM_MAX*2 - 1
	}
	return buf
}

// Close stops the board: the oscillator is switched off and every channel
// is disposed. Idempotent.
func (b *BoardAudio) Close() {
	b.ctx.Run(func() {
		if b.closed {
			return
		}
		b.closed = true
		b.stopOscillatorLocked()
		b.currentSoundExpressionCallback = nil
		b.speech.Dispose()
		b.soundExpression.Dispose()
		b.defaultCh.Dispose()
	})
}
