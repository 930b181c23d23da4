// audio_context.go - Audio device timeline and mixer

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
	"sync"
)

const (
	AUDIO_SAMPLE_RATE    = 44100 // Device rate; the expression synth is the fastest source
	AUDIO_RENDER_QUANTUM = 128   // Frames mixed between end-event dispatches
	AUDIO_MAX_VOLUME     = 255
)

const (
	MAX_SAMPLE = 1.0
	MIN_SAMPLE = -1.0
)

// frameSnap absorbs float error when a start time lands on a frame boundary.
const frameSnap = 1e-6

// frameJoin is how far apart, in frames, two buffers may be and still count
// as back to back.
const frameJoin = 1e-3

// AudioBuffer is a block of mono samples in [-1, 1] at its own rate.
type AudioBuffer struct {
	SampleRate int
	Data       []float32
}

// NewAudioBuffer allocates a silent buffer.
func NewAudioBuffer(length, sampleRate int) *AudioBuffer {
	return &AudioBuffer{SampleRate: sampleRate, Data: make([]float32, max(length, 0))}
}

// Length returns the number of samples.
func (b *AudioBuffer) Length() int {
	return len(b.Data)
}

// Duration returns the playout time in seconds.
func (b *AudioBuffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(len(b.Data)) / float64(b.SampleRate)
}

type scheduledSource struct {
	buf        *AudioBuffer
	startFrame float64 // device frame of the first sample
	endFrame   float64 // device frame just past the last sample
	step       float64 // source samples per device frame
	onEnded    func()

	tail   float32 // first sample of the buffer queued right behind
	joined bool
}

// legacyOscillator is the single continuous sine used by SetPeriodUs and
// SetAmplitudeU10.
type legacyOscillator struct {
	enabled   bool
	frequency float32
	phase     float32 // cycles, 0..1
}

// AudioContext is the owned audio device: a real-time clock, a mixer for
// scheduled buffers and the master gain stages. Backends drive it through
// Render.
//
// Two locks: control is the exclusive execution context that buffer end
// events and board operations run under; mutex guards the timeline. Lock
// order is control then mutex, never the reverse.
type AudioContext struct {
	control sync.Mutex
	mutex   sync.Mutex

	sampleRate int
	frame      int64
	sources    []*scheduledSource
	volume     float32
	muted      bool
	osc        legacyOscillator
	closed     bool
}

// NewAudioContext creates an open device running at sampleRate.
func NewAudioContext(sampleRate int) *AudioContext {
	if sampleRate <= 0 {
		sampleRate = AUDIO_SAMPLE_RATE
	}
	return &AudioContext{
		sampleRate: sampleRate,
		volume:     1.0,
	}
}

// SampleRate returns the device rate.
func (c *AudioContext) SampleRate() int {
	return c.sampleRate
}

// CurrentTime returns the time in seconds of the next frame to be rendered.
func (c *AudioContext) CurrentTime() float64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return float64(c.frame) / float64(c.sampleRate)
}

// Run executes fn in the context's exclusive execution context.
func (c *AudioContext) Run(fn func()) {
	c.control.Lock()
	defer c.control.Unlock()
	fn()
}

// StartBuffer schedules buf to begin at when (seconds). A start the clock
// has already passed is moved to the next frame to render, so no sample is
// skipped. It returns the effective start. onEnded runs, inside Run, after
// the last sample has been rendered or when the context is closed first.
// Returns false once the context is closed.
func (c *AudioContext) StartBuffer(buf *AudioBuffer, when float64, onEnded func()) (float64, bool) {
	if buf == nil || buf.SampleRate <= 0 {
		return 0, false
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.closed {
		return 0, false
	}

	start := snapFrame(when * float64(c.sampleRate))
	if now := float64(c.frame); start < now {
		start = now
		when = now / float64(c.sampleRate)
	}
	step := float64(buf.SampleRate) / float64(c.sampleRate)
	c.sources = append(c.sources, &scheduledSource{
		buf:        buf,
		startFrame: start,
		endFrame:   snapFrame(start + float64(buf.Length())/step),
		step:       step,
		onEnded:    onEnded,
	})
	return when, true
}

// JoinBuffers lets the last sample of prev interpolate into the first
// sample of next when next starts exactly where prev ends at the same rate.
// Both must still be scheduled.
func (c *AudioContext) JoinBuffers(prev, next *AudioBuffer) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	a, b := c.findSource(prev), c.findSource(next)
	if a == nil || b == nil || b.buf.Length() == 0 || a.step != b.step {
		return
	}
	if math.Abs(a.endFrame-b.startFrame) < frameJoin {
		a.tail = b.buf.Data[0]
		a.joined = true
	}
}

func (c *AudioContext) findSource(buf *AudioBuffer) *scheduledSource {
	for i := len(c.sources) - 1; i >= 0; i-- {
		if c.sources[i].buf == buf {
			return c.sources[i]
		}
	}
	return nil
}

func snapFrame(f float64) float64 {
	if r := math.Round(f); math.Abs(f-r) < frameSnap {
		return r
	}
	return f
}

// PendingSources returns the number of buffers scheduled or playing.
func (c *AudioContext) PendingSources() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.sources)
}

// SetVolume sets the master gain from a 0..255 level.
func (c *AudioContext) SetVolume(level int) {
	level = min(max(level, 0), AUDIO_MAX_VOLUME)
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.volume = float32(level) / AUDIO_MAX_VOLUME
}

// SetMuted switches the mute gain stage.
func (c *AudioContext) SetMuted(muted bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.muted = muted
}

// SetOscillator configures the legacy sine oscillator.
func (c *AudioContext) SetOscillator(frequency float64, enabled bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.osc.frequency = float32(frequency)
	if enabled && !c.osc.enabled {
		c.osc.phase = 0
	}
	c.osc.enabled = enabled
}

// Render fills out with the next len(out) frames and advances the clock.
// End events are dispatched between render quanta so refills land before
// the following buffer runs dry.
func (c *AudioContext) Render(out []float32) {
	for off := 0; off < len(out); off += AUDIO_RENDER_QUANTUM {
		end := min(off+AUDIO_RENDER_QUANTUM, len(out))
		ended := c.renderQuantum(out[off:end])
		if len(ended) > 0 {
			c.Run(func() {
				for _, fn := range ended {
					fn()
				}
			})
		}
	}
}

func (c *AudioContext) renderQuantum(out []float32) []func() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for i := range out {
		out[i] = 0
	}
	if c.closed {
		return nil
	}

	base := c.frame
	quantumEnd := float64(base + int64(len(out)))
	var ended []func()
	kept := c.sources[:0]
	for _, src := range c.sources {
		if src.startFrame < quantumEnd {
			mixSource(out, src, base)
		}
		if quantumEnd >= src.endFrame {
			if src.onEnded != nil {
				ended = append(ended, src.onEnded)
			}
			continue
		}
		kept = append(kept, src)
	}
	for i := len(kept); i < len(c.sources); i++ {
		c.sources[i] = nil
	}
	c.sources = kept

	if c.osc.enabled && c.osc.frequency > 0 {
		inc := c.osc.frequency / float32(c.sampleRate)
		for i := range out {
			out[i] += oscSine(c.osc.phase)
			c.osc.phase += inc
			for c.osc.phase >= 1 {
				c.osc.phase--
			}
		}
	}

	gain := c.volume
	if c.muted {
		gain = 0
	}
	for i := range out {
		out[i] = float32(math.Max(math.Min(float64(out[i]*gain), MAX_SAMPLE), MIN_SAMPLE))
	}

	c.frame += int64(len(out))
	return ended
}

// mixSource adds src into out, resampling linearly when the buffer rate
// differs from the device rate. Past the last sample it interpolates into
// the joined buffer, if any.
func mixSource(out []float32, src *scheduledSource, base int64) {
	data := src.buf.Data
	for i := range out {
		pos := (float64(base+int64(i)) - src.startFrame) * src.step
		if pos < 0 {
			continue
		}
		idx := int(pos)
		if idx >= len(data) {
			break
		}
		v := data[idx]
		if frac := float32(pos - float64(idx)); frac > 0 {
			next := v
			if idx+1 < len(data) {
				next = data[idx+1]
			} else if src.joined {
				next = src.tail
			}
			v += frac * (next - v)
		}
		out[i] += v
	}
}

// Close stops the device. Pending buffers are dropped and their end events
// fire at once so producers see nothing left in flight. Later StartBuffer
// calls are refused. Close must not be called from inside Run.
func (c *AudioContext) Close() {
	c.mutex.Lock()
	c.closed = true
	dropped := c.sources
	c.sources = nil
	c.osc.enabled = false
	c.mutex.Unlock()

	var ended []func()
	for _, src := range dropped {
		if src.onEnded != nil {
			ended = append(ended, src.onEnded)
		}
	}
	if len(ended) > 0 {
		c.Run(func() {
			for _, fn := range ended {
				fn()
			}
		})
	}
}

// IsClosed reports whether Close has been called.
func (c *AudioContext) IsClosed() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.closed
}
