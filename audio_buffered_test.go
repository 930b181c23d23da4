// audio_buffered_test.go - Tests for gapless buffered scheduling

package main

import (
	"math"
	"testing"
)

type scheduledStart struct {
	when    float64
	buf     *AudioBuffer
	onEnded func()
}

// fakeTimeline records StartBuffer calls against a manually set clock.
// Starts earlier than floor are moved to it, as when the device renders
// between CurrentTime and StartBuffer.
type fakeTimeline struct {
	now    float64
	floor  float64
	starts []scheduledStart
	closed bool
}

func (f *fakeTimeline) CurrentTime() float64 { return f.now }

func (f *fakeTimeline) StartBuffer(buf *AudioBuffer, when float64, onEnded func()) (float64, bool) {
	if f.closed {
		return 0, false
	}
	when = max(when, f.floor)
	f.starts = append(f.starts, scheduledStart{when: when, buf: buf, onEnded: onEnded})
	return when, true
}

// endNext fires the end event of the earliest unfinished start and moves
// the clock to its end.
func (f *fakeTimeline) endNext(done *int) bool {
	if *done >= len(f.starts) {
		return false
	}
	s := f.starts[*done]
	*done++
	f.now = s.when + s.buf.Duration()
	s.onEnded()
	return true
}

func TestBufferedAudio_BootstrapQueuesSecondBlock(t *testing.T) {
	tl := &fakeTimeline{}
	calls := 0
	var b *BufferedAudio
	b = NewBufferedAudio(tl, SFX_SAMPLE_RATE, func() {
		calls++
		b.WriteData(b.CreateBuffer(SFX_BUFFER_SIZE))
	})

	b.WriteData(b.CreateBuffer(SFX_BUFFER_SIZE))
	if calls != 1 {
		t.Fatalf("callback ran %d times on bootstrap, want 1", calls)
	}
	if len(tl.starts) != 2 {
		t.Fatalf("%d blocks scheduled, want 2", len(tl.starts))
	}
	if tl.starts[0].when != 0 {
		t.Errorf("first block at %v, want 0", tl.starts[0].when)
	}
	want := float64(SFX_BUFFER_SIZE) / SFX_SAMPLE_RATE
	if tl.starts[1].when != want {
		t.Errorf("second block at %v, want %v", tl.starts[1].when, want)
	}
	if b.Pending() != 2 {
		t.Errorf("Pending = %d, want 2", b.Pending())
	}
}

func TestBufferedAudio_ExactStartTimes(t *testing.T) {
	const blocks = 1000
	tl := &fakeTimeline{}
	written := 0
	var b *BufferedAudio
	write := func() {
		if written < blocks {
			written++
			b.WriteData(b.CreateBuffer(SFX_BUFFER_SIZE))
		}
	}
	b = NewBufferedAudio(tl, SFX_SAMPLE_RATE, write)
	write()

	done := 0
	for tl.endNext(&done) {
	}
	if len(tl.starts) != blocks {
		t.Fatalf("%d blocks scheduled, want %d", len(tl.starts), blocks)
	}
	for k, s := range tl.starts {
		want := float64(k*SFX_BUFFER_SIZE) / SFX_SAMPLE_RATE
		if math.Abs(s.when-want) > 1e-12 {
			t.Fatalf("block %d at %v, want %v", k, s.when, want)
		}
		if k > 0 {
			prev := tl.starts[k-1]
			if gap := s.when - (prev.when + prev.buf.Duration()); math.Abs(gap) > 1e-12 {
				t.Fatalf("block %d gap %v", k, gap)
			}
		}
	}
	last := tl.starts[blocks-1].when
	if want := float64((blocks-1)*SFX_BUFFER_SIZE) / SFX_SAMPLE_RATE; last != want {
		t.Errorf("last block at %v, want exactly %v", last, want)
	}
	if b.Pending() != 0 {
		t.Errorf("Pending = %d after all ended", b.Pending())
	}
}

func TestBufferedAudio_StarvationRestartsAtNow(t *testing.T) {
	tl := &fakeTimeline{}
	calls := 0
	b := NewBufferedAudio(tl, 8000, func() { calls++ })

	b.WriteData(b.CreateBuffer(800)) // 0.1s
	if calls != 1 {
		t.Fatalf("bootstrap callback calls = %d", calls)
	}
	b.WriteData(b.CreateBuffer(800))
	if tl.starts[1].when != 0.1 {
		t.Fatalf("second block at %v, want 0.1", tl.starts[1].when)
	}

	tl.now = 1.0
	b.WriteData(b.CreateBuffer(800))
	if tl.starts[2].when != 1.0 {
		t.Errorf("starved block at %v, want 1.0", tl.starts[2].when)
	}
	if calls != 2 {
		t.Errorf("starvation should run the callback once more, calls = %d", calls)
	}
	if got := b.NextStartTime(); math.Abs(got-1.1) > 1e-12 {
		t.Errorf("NextStartTime = %v, want 1.1", got)
	}
}

func TestBufferedAudio_NoBootstrapWhenAhead(t *testing.T) {
	tl := &fakeTimeline{}
	calls := 0
	b := NewBufferedAudio(tl, 8000, func() { calls++ })
	b.WriteData(b.CreateBuffer(800))
	b.WriteData(b.CreateBuffer(800))
	tl.now = 0.05
	b.WriteData(b.CreateBuffer(800))
	if calls != 1 {
		t.Errorf("callback calls = %d, want only the bootstrap", calls)
	}
	if tl.starts[2].when != 0.2 {
		t.Errorf("third block at %v, want 0.2", tl.starts[2].when)
	}
}

func TestBufferedAudio_Dispose(t *testing.T) {
	tl := &fakeTimeline{}
	calls := 0
	b := NewBufferedAudio(tl, 8000, func() { calls++ })
	b.WriteData(b.CreateBuffer(80))
	b.Dispose()

	done := 0
	tl.endNext(&done)
	if calls != 1 {
		t.Errorf("end event after Dispose reached the callback, calls = %d", calls)
	}
	b.WriteData(b.CreateBuffer(80))
	if len(tl.starts) != 1 {
		t.Errorf("WriteData after Dispose scheduled a block")
	}
}

func TestBufferedAudio_RateChangeRebases(t *testing.T) {
	tl := &fakeTimeline{}
	b := NewBufferedAudio(tl, 44100, nil)
	b.WriteData(NewAudioBuffer(441, 44100)) // 0.01s
	b.WriteData(NewAudioBuffer(441, 22050)) // 0.02s
	b.WriteData(NewAudioBuffer(441, 22050))

	want := []float64{0, 0.01, 0.03}
	for i, w := range want {
		if math.Abs(tl.starts[i].when-w) > 1e-12 {
			t.Errorf("block %d at %v, want %v", i, tl.starts[i].when, w)
		}
	}
	if b.SampleRate() != 22050 {
		t.Errorf("SampleRate = %d, want 22050", b.SampleRate())
	}
}

func TestBufferedAudio_InitResetsWatermark(t *testing.T) {
	tl := &fakeTimeline{}
	calls := 0
	b := NewBufferedAudio(tl, 8000, func() { calls++ })
	if b.NextStartTime() != -1 {
		t.Fatalf("NextStartTime before first write = %v", b.NextStartTime())
	}
	b.WriteData(b.CreateBuffer(800))
	b.Init(16000)
	if b.NextStartTime() != -1 {
		t.Errorf("Init did not reset the watermark")
	}
	b.WriteData(b.CreateBuffer(800))
	if calls != 2 {
		t.Errorf("write after Init should bootstrap, calls = %d", calls)
	}
	if tl.starts[1].buf.SampleRate != 16000 {
		t.Errorf("CreateBuffer rate = %d after Init(16000)", tl.starts[1].buf.SampleRate)
	}
}

func TestBufferedAudio_RefusedStartNotPending(t *testing.T) {
	tl := &fakeTimeline{closed: true}
	b := NewBufferedAudio(tl, 8000, nil)
	b.WriteData(b.CreateBuffer(80))
	if b.Pending() != 0 {
		t.Errorf("Pending = %d for a refused block", b.Pending())
	}
}

func TestBufferedAudio_LateStartRebasesWatermark(t *testing.T) {
	tl := &fakeTimeline{floor: 0.01}
	var b *BufferedAudio
	b = NewBufferedAudio(tl, 8000, func() {
		b.WriteData(b.CreateBuffer(800))
	})
	b.WriteData(b.CreateBuffer(800))

	if len(tl.starts) != 2 {
		t.Fatalf("%d blocks scheduled, want 2", len(tl.starts))
	}
	if tl.starts[0].when != 0.01 {
		t.Errorf("first block at %v, want 0.01", tl.starts[0].when)
	}
	if got := tl.starts[1].when; math.Abs(got-0.11) > 1e-12 {
		t.Errorf("second block at %v, want 0.11 right after the late first block", got)
	}
	if got := b.NextStartTime(); math.Abs(got-0.21) > 1e-12 {
		t.Errorf("NextStartTime = %v, want 0.21", got)
	}
}

func TestBufferedAudio_PendingClearsWhenContextCloses(t *testing.T) {
	ctx := NewAudioContext(8000)
	refills := 0
	var b *BufferedAudio
	b = NewBufferedAudio(ctx, 8000, func() {
		refills++
		b.WriteData(b.CreateBuffer(80))
	})
	ctx.Run(func() { b.WriteData(b.CreateBuffer(80)) })
	ctx.Render(make([]float32, 40))

	ctx.Close()
	var pending int
	ctx.Run(func() { pending = b.Pending() })
	if pending != 0 {
		t.Errorf("Pending = %d after Close, want 0", pending)
	}
	if ctx.PendingSources() != 0 {
		t.Errorf("PendingSources = %d after Close", ctx.PendingSources())
	}
	if refills != 3 {
		t.Errorf("refills = %d, want the bootstrap plus one per dropped block", refills)
	}
}
