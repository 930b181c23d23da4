// audio_context_test.go - Tests for the audio device timeline and mixer

package main

import (
	"math"
	"testing"
)

func constBuffer(n, rate int, v float32) *AudioBuffer {
	buf := NewAudioBuffer(n, rate)
	for i := range buf.Data {
		buf.Data[i] = v
	}
	return buf
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-6
}

func TestAudioContext_RenderScheduledBuffer(t *testing.T) {
	ctx := NewAudioContext(8000)
	ended := 0
	if _, ok := ctx.StartBuffer(constBuffer(4, 8000, 0.5), 2.0/8000, func() { ended++ }); !ok {
		t.Fatalf("StartBuffer refused on an open context")
	}

	out := make([]float32, 8)
	ctx.Render(out)
	want := []float32{0, 0, 0.5, 0.5, 0.5, 0.5, 0, 0}
	for i := range want {
		if !approx(out[i], want[i]) {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
	if ended != 1 {
		t.Errorf("end event fired %d times", ended)
	}
	if ctx.PendingSources() != 0 {
		t.Errorf("PendingSources = %d after playout", ctx.PendingSources())
	}
	if got := ctx.CurrentTime(); got != 8.0/8000 {
		t.Errorf("CurrentTime = %v, want %v", got, 8.0/8000)
	}
}

func TestAudioContext_LinearResampling(t *testing.T) {
	ctx := NewAudioContext(8000)
	buf := NewAudioBuffer(2, 4000)
	buf.Data[1] = 1
	ctx.StartBuffer(buf, 0, nil)

	out := make([]float32, 6)
	ctx.Render(out)
	want := []float32{0, 0.5, 1, 1, 0, 0}
	for i := range want {
		if !approx(out[i], want[i]) {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestAudioContext_GainStages(t *testing.T) {
	tests := []struct {
		name   string
		volume int
		muted  bool
		want   float32
	}{
		{"full", 255, false, 0.5},
		{"half", 51, false, 0.1},
		{"zero", 0, false, 0},
		{"clamped_high", 1000, false, 0.5},
		{"clamped_low", -5, false, 0},
		{"muted", 255, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewAudioContext(8000)
			ctx.SetVolume(tt.volume)
			ctx.SetMuted(tt.muted)
			ctx.StartBuffer(constBuffer(4, 8000, 0.5), 0, nil)
			out := make([]float32, 4)
			ctx.Render(out)
			if !approx(out[0], tt.want) {
				t.Errorf("sample = %v, want %v", out[0], tt.want)
			}
		})
	}
}

func TestAudioContext_MixClamps(t *testing.T) {
	ctx := NewAudioContext(8000)
	ctx.StartBuffer(constBuffer(4, 8000, 0.8), 0, nil)
	ctx.StartBuffer(constBuffer(4, 8000, 0.8), 0, nil)
	ctx.StartBuffer(constBuffer(4, 8000, -0.9), 4.0/8000, nil)
	ctx.StartBuffer(constBuffer(4, 8000, -0.9), 4.0/8000, nil)

	out := make([]float32, 8)
	ctx.Render(out)
	if out[0] != MAX_SAMPLE {
		t.Errorf("positive sum = %v, want %v", out[0], MAX_SAMPLE)
	}
	if out[4] != MIN_SAMPLE {
		t.Errorf("negative sum = %v, want %v", out[4], MIN_SAMPLE)
	}
}

// TestAudioContext_EndEventRefillIsGapless schedules the follow-up buffer
// from inside the end event, the way BufferedAudio refills.
func TestAudioContext_EndEventRefillIsGapless(t *testing.T) {
	ctx := NewAudioContext(8000)
	first := constBuffer(AUDIO_RENDER_QUANTUM, 8000, 0.25)
	second := constBuffer(AUDIO_RENDER_QUANTUM, 8000, 0.75)
	ctx.StartBuffer(first, 0, func() {
		ctx.StartBuffer(second, ctx.CurrentTime(), nil)
	})

	out := make([]float32, 2*AUDIO_RENDER_QUANTUM)
	ctx.Render(out)
	for i := 0; i < AUDIO_RENDER_QUANTUM; i++ {
		if !approx(out[i], 0.25) {
			t.Fatalf("out[%d] = %v, want 0.25", i, out[i])
		}
	}
	for i := AUDIO_RENDER_QUANTUM; i < len(out); i++ {
		if !approx(out[i], 0.75) {
			t.Fatalf("out[%d] = %v, want 0.75", i, out[i])
		}
	}
}

func TestAudioContext_EndEventsRunInsideRun(t *testing.T) {
	ctx := NewAudioContext(8000)
	inside := false
	ctx.StartBuffer(constBuffer(1, 8000, 0), 0, func() {
		// control is held; TryLock must fail
		inside = !ctx.control.TryLock()
	})
	ctx.Render(make([]float32, 4))
	if !inside {
		t.Errorf("end event ran outside the execution context")
	}
}

func TestAudioContext_Oscillator(t *testing.T) {
	ctx := NewAudioContext(8000)
	ctx.SetOscillator(1000, true)
	out := make([]float32, 64)
	ctx.Render(out)
	peak := float32(0)
	for _, v := range out {
		peak = max(peak, float32(math.Abs(float64(v))))
	}
	if peak < 0.9 {
		t.Errorf("oscillator peak %v, want near full scale", peak)
	}

	ctx.SetOscillator(1000, false)
	ctx.Render(out)
	for i, v := range out {
		if v != 0 {
			t.Fatalf("out[%d] = %v with oscillator off", i, v)
		}
	}
}

func TestAudioContext_Close(t *testing.T) {
	ctx := NewAudioContext(8000)
	ended := 0
	ctx.StartBuffer(constBuffer(4, 8000, 0.5), 0, func() { ended++ })
	ctx.Close()

	if ended != 1 {
		t.Errorf("dropped buffer end events = %d, want 1 at Close", ended)
	}
	if _, ok := ctx.StartBuffer(constBuffer(4, 8000, 0.5), 0, nil); ok {
		t.Errorf("StartBuffer accepted after Close")
	}
	if !ctx.IsClosed() {
		t.Errorf("IsClosed = false after Close")
	}
	ctx.Close()
	out := make([]float32, 8)
	ctx.Render(out)
	for i, v := range out {
		if v != 0 {
			t.Fatalf("out[%d] = %v after Close", i, v)
		}
	}
	if ended != 1 {
		t.Errorf("end events = %d after Close and render, want 1", ended)
	}
}

// TestAudioContext_PastStartPlaysWholeBuffer schedules a buffer at a time
// the clock has already passed; it must play from its first sample.
func TestAudioContext_PastStartPlaysWholeBuffer(t *testing.T) {
	ctx := NewAudioContext(8000)
	ctx.Render(make([]float32, AUDIO_RENDER_QUANTUM))

	at, ok := ctx.StartBuffer(constBuffer(256, 8000, 0.5), 0, nil)
	if !ok {
		t.Fatalf("StartBuffer refused")
	}
	if want := float64(AUDIO_RENDER_QUANTUM) / 8000; at != want {
		t.Errorf("effective start %v, want %v", at, want)
	}
	out := make([]float32, 256)
	ctx.Render(out)
	for i, v := range out {
		if !approx(v, 0.5) {
			t.Fatalf("out[%d] = %v, want 0.5", i, v)
		}
	}

	// a future start is returned unchanged
	when := 1000.0 / 8000
	if at, _ := ctx.StartBuffer(constBuffer(4, 8000, 0), when, nil); at != when {
		t.Errorf("future start moved to %v", at)
	}
}

// TestAudioContext_JoinedBuffersInterpolateAcrossBoundary checks that a
// resampled block blends into the one queued behind it.
func TestAudioContext_JoinedBuffersInterpolateAcrossBoundary(t *testing.T) {
	ctx := NewAudioContext(8000)
	a := constBuffer(2, 4000, 0)
	b := constBuffer(2, 4000, 1)
	ctx.StartBuffer(a, 0, nil)
	ctx.StartBuffer(b, 4.0/8000, nil)
	ctx.JoinBuffers(a, b)

	out := make([]float32, 8)
	ctx.Render(out)
	want := []float32{0, 0, 0, 0.5, 1, 1, 1, 1}
	for i := range want {
		if !approx(out[i], want[i]) {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestBufferedAudio_JoinsResampledBlocks(t *testing.T) {
	ctx := NewAudioContext(8000)
	b := NewBufferedAudio(ctx, 4000, nil)
	ctx.Run(func() {
		b.WriteData(constBuffer(2, 4000, 0))
		b.WriteData(constBuffer(2, 4000, 1))
	})
	out := make([]float32, 8)
	ctx.Render(out)
	if !approx(out[3], 0.5) {
		t.Errorf("boundary sample %v, want 0.5", out[3])
	}
}

func TestAudioBuffer_Duration(t *testing.T) {
	if d := NewAudioBuffer(512, 44100).Duration(); d != 512.0/44100 {
		t.Errorf("Duration = %v", d)
	}
	if d := (&AudioBuffer{Data: make([]float32, 4)}).Duration(); d != 0 {
		t.Errorf("Duration without rate = %v, want 0", d)
	}
	if n := NewAudioBuffer(-3, 8000).Length(); n != 0 {
		t.Errorf("negative length gave %d samples", n)
	}
}

func TestOscSineAndToneTable(t *testing.T) {
	tests := []struct {
		phase float32
		want  float32
	}{
		{0, 0},
		{0.25, 1},
		{0.5, 0},
		{0.75, -1},
	}
	for _, tt := range tests {
		if got := oscSine(tt.phase); math.Abs(float64(got-tt.want)) > 1e-5 {
			t.Errorf("oscSine(%v) = %v, want %v", tt.phase, got, tt.want)
		}
	}
	if sineTone[0] != SFX_SILENCE || sineTone[SFX_TONE_WIDTH/4] != SFX_SAMPLE_RANGE {
		t.Errorf("sine toneprint endpoints %d %d", sineTone[0], sineTone[SFX_TONE_WIDTH/4])
	}
}
