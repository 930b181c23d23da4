// sfx_parser.go - Sound expression descriptor parser

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
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
)

// ErrInvalidDescriptor is matched by every decode failure via errors.Is.
var ErrInvalidDescriptor = errors.New("sfx: invalid descriptor")

// FormatError reports a descriptor whose overall layout is wrong.
type FormatError struct {
	Length int    // total descriptor length
	Offset int    // offending offset, -1 when the length itself is wrong
	Reason string // human readable cause
}

func (e *FormatError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("sfx: bad descriptor length %d: %s", e.Length, e.Reason)
	}
	return fmt.Sprintf("sfx: bad descriptor at offset %d: %s", e.Offset, e.Reason)
}

func (e *FormatError) Is(target error) bool { return target == ErrInvalidDescriptor }

// FieldError reports a record field that did not decode to a usable value.
type FieldError struct {
	Record int
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("sfx: record %d field %s=%q: %s", e.Record, e.Field, e.Value, e.Reason)
}

func (e *FieldError) Is(target error) bool { return target == ErrInvalidDescriptor }

// JitterFunc returns a uniformly distributed offset in [-radius, radius].
type JitterFunc func(radius int) int

// NoJitter disables randomisation; decoding becomes deterministic.
func NoJitter(radius int) int { return 0 }

func defaultJitter(radius int) int {
	if radius == 0 {
		return 0
	}
	return rand.IntN(radius*2+1) - radius
}

// applyJitter folds v+offset back to non-negative. A negative input poisons
// the field.
func applyJitter(value, radius int, jitter JitterFunc) int {
	if value < 0 || radius < 0 {
		return SFX_INVALID_FIELD
	}
	v := value + jitter(radius)
	if v < 0 {
		v = -v
	}
	return v
}

// ParseSoundEffects decodes a descriptor of one or more comma joined records.
// Any layout or field error rejects the whole descriptor.
func ParseSoundEffects(descriptor string) ([]SoundEffect, error) {
	return ParseSoundEffectsWithJitter(descriptor, defaultJitter)
}

// ParseSoundEffectsWithJitter is ParseSoundEffects with an explicit jitter
// source.
func ParseSoundEffectsWithJitter(descriptor string, jitter JitterFunc) ([]SoundEffect, error) {
	if jitter == nil {
		jitter = defaultJitter
	}
	stride := SFX_RECORD_LEN + 1
	count := (len(descriptor) + 1) / stride
	if count == 0 || len(descriptor) != count*stride-1 {
		return nil, &FormatError{
			Length: len(descriptor),
			Offset: -1,
			Reason: fmt.Sprintf("want %d*n-1 characters", stride),
		}
	}

	effects := make([]SoundEffect, 0, count)
	for i := 0; i < count; i++ {
		start := i * stride
		if start > 0 && descriptor[start-1] != SFX_SEPARATOR {
			return nil, &FormatError{
				Length: len(descriptor),
				Offset: start - 1,
				Reason: fmt.Sprintf("expected %q, found %q", SFX_SEPARATOR, descriptor[start-1]),
			}
		}
		fx, err := parseSoundRecord(i, descriptor[start:start+SFX_RECORD_LEN], jitter)
		if err != nil {
			return nil, err
		}
		effects = append(effects, fx)
	}
	return effects, nil
}

// recordReader slices fixed width fields out of one record and remembers the
// first failure.
type recordReader struct {
	index int
	chars string
	err   error
}

func (r *recordReader) field(name string, offset, width int) int {
	if r.err != nil {
		return SFX_INVALID_FIELD
	}
	raw := r.chars[offset : offset+width]
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		r.err = &FieldError{Record: r.index, Field: name, Value: raw, Reason: "not an unsigned decimal"}
		return SFX_INVALID_FIELD
	}
	return int(v)
}

func (r *recordReader) jittered(name string, value, offset int, jitter JitterFunc) int {
	radius := r.field(name+"_random", offset, 4)
	if r.err != nil {
		return SFX_INVALID_FIELD
	}
	v := applyJitter(value, radius, jitter)
	if v == SFX_INVALID_FIELD {
		r.err = &FieldError{
			Record: r.index,
			Field:  name,
			Value:  strconv.Itoa(value),
			Reason: "negative after jitter",
		}
	}
	return v
}

func parseSoundRecord(index int, chars string, jitter JitterFunc) (SoundEffect, error) {
	r := &recordReader{index: index, chars: chars}

	f := sfxRecordFields{
		wave:         r.field("wave", SFX_OFF_WAVE, 1),
		volume:       r.field("volume", SFX_OFF_VOLUME, 4),
		frequency:    r.field("frequency", SFX_OFF_FREQUENCY, 4),
		duration:     r.field("duration", SFX_OFF_DURATION, 4),
		shape:        r.field("shape", SFX_OFF_SHAPE, 2),
		endFrequency: r.field("end_frequency", SFX_OFF_END_FREQUENCY, 4),
		endVolume:    r.field("end_volume", SFX_OFF_END_VOLUME, 4),
		steps:        r.field("steps", SFX_OFF_STEPS, 4),
		fxChoice:     r.field("fx", SFX_OFF_FX_CHOICE, 2),
		fxParam:      r.field("fx_param", SFX_OFF_FX_PARAM, 4),
		fxSteps:      r.field("fx_steps", SFX_OFF_FX_STEPS, 4),
	}
	// Offsets 15 and 22 are never read.

	f.frequency = r.jittered("frequency", f.frequency, SFX_OFF_RND_FREQ, jitter)
	f.endFrequency = r.jittered("end_frequency", f.endFrequency, SFX_OFF_RND_END_FREQ, jitter)
	f.volume = r.jittered("volume", f.volume, SFX_OFF_RND_VOLUME, jitter)
	f.endVolume = r.jittered("end_volume", f.endVolume, SFX_OFF_RND_END_VOL, jitter)
	f.duration = r.jittered("duration", f.duration, SFX_OFF_RND_DURATION, jitter)
	f.fxParam = r.jittered("fx_param", f.fxParam, SFX_OFF_RND_FX_PARAM, jitter)
	f.fxSteps = r.jittered("fx_steps", f.fxSteps, SFX_OFF_RND_FX_STEPS, jitter)
	if r.err != nil {
		return SoundEffect{}, r.err
	}

	if f.wave > int(WaveNoise) {
		return SoundEffect{}, &FieldError{
			Record: index,
			Field:  "wave",
			Value:  chars[SFX_OFF_WAVE : SFX_OFF_WAVE+1],
			Reason: "unknown waveform",
		}
	}

	return buildSoundEffect(f), nil
}

// buildSoundEffect maps validated integer fields onto the three effect slots.
func buildSoundEffect(f sfxRecordFields) SoundEffect {
	fx := SoundEffect{
		Frequency: float64(f.frequency),
		Duration:  float64(f.duration),
		Tone:      Waveform(f.wave),
		raw:       f,
	}

	shape := ToneEffect{Kind: EffectNone, Steps: f.steps}
	switch {
	case f.shape == SFX_SHAPE_LINEAR:
		shape.Kind = EffectLinear
	case f.shape == SFX_SHAPE_CURVE:
		shape.Kind = EffectCurve
	case f.shape == SFX_SHAPE_EXP_RISING:
		shape.Kind = EffectExponentialRising
	case f.shape == SFX_SHAPE_EXP_FALLING:
		shape.Kind = EffectExponentialFalling
	case f.shape == SFX_SHAPE_LOG:
		shape.Kind = EffectLogarithmic
	case f.shape >= SFX_SHAPE_ARPEGGIO_FIRST && f.shape <= SFX_SHAPE_ARPEGGIO_LAST:
		rel := f.shape - SFX_SHAPE_ARPEGGIO_FIRST
		shape.Kind = EffectArpeggioAscending
		if rel%2 == 1 {
			shape.Kind = EffectArpeggioDescending
		}
		shape.Progression = arpeggioProgressions[rel/2]
	}
	if shape.Kind != EffectNone && !shape.Kind.IsArpeggio() {
		shape.Parameter = float64(f.endFrequency)
	}
	fx.Effects[SFX_EFFECT_SHAPE] = shape

	fx.Volume = normalizeVolume(f.volume)
	fx.Effects[SFX_EFFECT_VOLUME] = ToneEffect{
		Kind:      EffectVolumeRamp,
		Steps:     SFX_VOLUME_RAMP_STEPS,
		Parameter: normalizeVolume(f.endVolume),
	}

	// Modulation cadence follows the record duration, not the raw count.
	mod := ToneEffect{Kind: EffectNone}
	switch f.fxChoice {
	case SFX_FX_FREQUENCY_VIBRATO:
		mod.Kind = EffectFrequencyVibrato
	case SFX_FX_VOLUME_VIBRATO:
		mod.Kind = EffectVolumeVibrato
	case SFX_FX_WARBLE:
		mod.Kind = EffectWarble
	}
	if mod.Kind != EffectNone {
		mod.Steps = int(math.Round(fx.Duration / SFX_FX_STEP_SCALE * float64(f.fxSteps)))
		mod.Parameter = float64(f.fxParam)
	}
	fx.Effects[SFX_EFFECT_FX] = mod

	return fx
}

func normalizeVolume(raw int) float64 {
	return float64(min(max(raw, 0), SFX_MAX_VOLUME_RAW)) / float64(SFX_MAX_VOLUME_RAW)
}

// Descriptor re-encodes the record with zero jitter fields. Values that
// jitter pushed past their field width saturate at the widest value.
func (fx SoundEffect) Descriptor() string {
	f := fx.raw
	f.volume = min(f.volume, 9999)
	f.frequency = min(f.frequency, 9999)
	f.duration = min(f.duration, 9999)
	f.endFrequency = min(f.endFrequency, 9999)
	f.endVolume = min(f.endVolume, 9999)
	f.fxParam = min(f.fxParam, 9999)
	f.fxSteps = min(f.fxSteps, 9999)
	var b strings.Builder
	b.Grow(SFX_RECORD_LEN)
	fmt.Fprintf(&b, "%01d%04d%04d%04d%02d", f.wave, f.volume, f.frequency, f.duration, f.shape)
	fmt.Fprintf(&b, "%03d%04d%04d%04d%04d", 440, f.endFrequency, 888, f.endVolume, f.steps)
	fmt.Fprintf(&b, "%02d%04d%04d", f.fxChoice, f.fxParam, f.fxSteps)
	b.WriteString(strings.Repeat("0", 7*4))
	return b.String()
}

// EncodeSoundEffects joins the records back into a descriptor.
func EncodeSoundEffects(effects []SoundEffect) string {
	parts := make([]string, len(effects))
	for i, fx := range effects {
		parts[i] = fx.Descriptor()
	}
	return strings.Join(parts, string(SFX_SEPARATOR))
}
