// audio_render.go - Offline rendering and WAV import/export

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
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	WAV_BIT_DEPTH  = 16
	WAV_PCM_FORMAT = 1
)

// RenderExpression plays effects on a private context with no device and
// returns the mixed output until the phrase has completed and its last
// block has ended.
func RenderExpression(effects []SoundEffect, sampleRate int, opts ...SynthOption) []float32 {
	ctx := NewAudioContext(sampleRate)
	defer ctx.Close()
	board := NewBoardAudio(ctx, AudioOptions{
		Logger:    slog.New(slog.DiscardHandler),
		SynthOpts: opts,
	})
	defer board.Close()

	rate := ctx.SampleRate()
	expected := SampleCount(TotalDuration(effects), rate)
	slack := 3*SFX_BUFFER_SIZE*rate/SFX_SAMPLE_RATE + 2*AUDIO_RENDER_QUANTUM
	limit := expected + slack

	board.PlayExpression(effects)
	out := make([]float32, 0, limit)
	block := make([]float32, AUDIO_RENDER_QUANTUM)
	for len(out) < limit && !board.ExpressionDrained() {
		ctx.Render(block)
		out = append(out, block...)
	}
	return out
}

// WriteWAV encodes mono samples in [-1, 1] as 16-bit PCM.
func WriteWAV(w io.WriteSeeker, samples []float32, sampleRate int) error {
	enc := wav.NewEncoder(w, sampleRate, WAV_BIT_DEPTH, 1, WAV_PCM_FORMAT)
	scale := float64(int(1)<<(WAV_BIT_DEPTH-1) - 1)
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(math.Round(math.Max(-1, math.Min(1, float64(s))) * scale))
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: WAV_BIT_DEPTH,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	return nil
}

// EncodeWAV returns the WAV file bytes for samples. The encoder seeks back
// to patch chunk sizes, so it writes through a temporary file.
func EncodeWAV(samples []float32, sampleRate int) ([]byte, error) {
	f, err := os.CreateTemp("", "sfxsynth-*.wav")
	if err != nil {
		return nil, err
	}
	defer os.Remove(f.Name())
	defer f.Close()

	if err := WriteWAV(f, samples, sampleRate); err != nil {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return io.ReadAll(f)
}

// LoadWAV decodes the first channel of a PCM WAV file.
func LoadWAV(r io.ReadSeeker) (*AudioBuffer, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("wav: not a valid PCM file")
	}
	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}
	channels := max(pcm.Format.NumChannels, 1)
	depth := pcm.SourceBitDepth
	if depth <= 0 {
		depth = int(dec.BitDepth)
	}
	scale := float32(int(1) << (depth - 1))
	buf := NewAudioBuffer(len(pcm.Data)/channels, pcm.Format.SampleRate)
	for i := range buf.Data {
		v := pcm.Data[i*channels]
		if depth == 8 {
			// 8-bit WAV is unsigned
			v -= 128
		}
		buf.Data[i] = float32(v) / scale
	}
	return buf, nil
}
