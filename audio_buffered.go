// audio_buffered.go - Gapless buffered playback channel

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

// Timeline is the device surface a BufferedAudio schedules onto.
// StartBuffer returns the time the buffer will really start, which is later
// than when if the clock has already passed it.
type Timeline interface {
	CurrentTime() float64
	StartBuffer(buf *AudioBuffer, when float64, onEnded func()) (float64, bool)
}

// bufferJoiner is implemented by timelines that resample; it lets the end of
// prev interpolate into the start of next.
type bufferJoiner interface {
	JoinBuffers(prev, next *AudioBuffer)
}

// BufferedAudio queues buffers back to back on a Timeline and asks for more
// data through its callback each time one finishes playing.
//
// The watermark (end of the last queued buffer) is kept as a base time plus
// a sample count so long runs of small buffers do not accumulate rounding
// error. Callers serialize access; in the board that is AudioContext.Run.
type BufferedAudio struct {
	timeline   Timeline
	callback   func()
	sampleRate int

	started  bool
	baseTime float64 // seconds
	queued   int64   // samples at sampleRate written since baseTime
	inFlight int     // buffers scheduled whose end event has not fired
	last     *AudioBuffer
	disposed bool
}

// NewBufferedAudio creates a channel that refills through callback.
func NewBufferedAudio(timeline Timeline, sampleRate int, callback func()) *BufferedAudio {
	if callback == nil {
		callback = func() {}
	}
	return &BufferedAudio{
		timeline:   timeline,
		callback:   callback,
		sampleRate: sampleRate,
	}
}

// Init resets the watermark and sets the rate used by CreateBuffer.
func (b *BufferedAudio) Init(sampleRate int) {
	b.sampleRate = sampleRate
	b.started = false
	b.baseTime = 0
	b.queued = 0
	b.last = nil
}

// SetSampleRate changes the rate used by CreateBuffer without resetting the
// watermark.
func (b *BufferedAudio) SetSampleRate(sampleRate int) {
	b.sampleRate = sampleRate
}

// SampleRate returns the rate used by CreateBuffer.
func (b *BufferedAudio) SampleRate() int {
	return b.sampleRate
}

// CreateBuffer allocates a silent buffer at the channel's rate.
func (b *BufferedAudio) CreateBuffer(length int) *AudioBuffer {
	return NewAudioBuffer(length, b.sampleRate)
}

// NextStartTime returns the watermark in seconds, or -1 before the first
// write.
func (b *BufferedAudio) NextStartTime() float64 {
	if !b.started {
		return -1
	}
	return b.watermark(b.sampleRate)
}

func (b *BufferedAudio) watermark(rate int) float64 {
	if rate <= 0 {
		return b.baseTime
	}
	return b.baseTime + float64(b.queued)/float64(rate)
}

// WriteData schedules buf at the watermark. When the watermark has fallen
// behind the clock (first write, or the producer starved) playback restarts
// at the current time and the callback runs once synchronously so a second
// buffer is queued behind this one.
func (b *BufferedAudio) WriteData(buf *AudioBuffer) {
	if b.disposed || buf == nil || buf.SampleRate <= 0 {
		return
	}

	if b.started && buf.SampleRate != b.sampleRate {
		b.baseTime = b.watermark(b.sampleRate)
		b.queued = 0
		b.last = nil
	}
	b.sampleRate = buf.SampleRate

	now := b.timeline.CurrentTime()
	start := b.watermark(b.sampleRate)
	first := !b.started || start < now
	if first {
		start = now
	}
	at, ok := b.timeline.StartBuffer(buf, start, b.ended)
	if !ok {
		return
	}
	if first || at != start {
		// restart, or the clock passed start while it was being scheduled
		b.started = true
		b.baseTime = at
		b.queued = 0
	} else if j, ok := b.timeline.(bufferJoiner); ok && b.last != nil {
		j.JoinBuffers(b.last, buf)
	}
	b.queued += int64(buf.Length())
	b.inFlight++
	b.last = buf

	if first {
		b.callback()
	}
}

func (b *BufferedAudio) ended() {
	b.inFlight--
	b.callback()
}

// Pending returns the number of written buffers that have not finished
// playing.
func (b *BufferedAudio) Pending() int {
	return b.inFlight
}

// Dispose detaches the callback. Buffers already queued still play out but
// their end events no longer reach the producer, and later writes are
// ignored.
func (b *BufferedAudio) Dispose() {
	b.disposed = true
	b.callback = func() {}
}
