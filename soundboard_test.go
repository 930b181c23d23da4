// soundboard_test.go - Tests for the interactive soundboard key map

package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestSoundboardKey(t *testing.T) {
	tests := []struct {
		index int
		want  byte
	}{
		{0, '1'},
		{8, '9'},
		{9, '0'},
		{10, 'a'},
		{11, 'b'},
	}
	for _, tt := range tests {
		if got := soundboardKey(tt.index); got != tt.want {
			t.Errorf("soundboardKey(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestSoundboard_HandleKey(t *testing.T) {
	_, board := newTestBoard(t, AudioOptions{})
	var out bytes.Buffer
	sb := NewSoundboard(board, 128, &out)

	if !sb.HandleKey('1') {
		t.Fatalf("play key asked to quit")
	}
	if !board.IsExpressionActive() {
		t.Errorf("key 1 did not start %s", BuiltinSoundNames()[0])
	}
	if !strings.Contains(out.String(), "> giggle\r\n") {
		t.Errorf("output %q", out.String())
	}

	sb.HandleKey('s')
	if board.IsExpressionActive() {
		t.Errorf("s did not stop playback")
	}

	sb.HandleKey('m')
	if !board.IsMuted() {
		t.Errorf("m did not mute")
	}
	sb.HandleKey('m')
	if board.IsMuted() {
		t.Errorf("second m did not unmute")
	}

	for i := 0; i < 20; i++ {
		sb.HandleKey('+')
	}
	if sb.volume != AUDIO_MAX_VOLUME {
		t.Errorf("volume %d after many +, want %d", sb.volume, AUDIO_MAX_VOLUME)
	}
	for i := 0; i < 20; i++ {
		sb.HandleKey('-')
	}
	if sb.volume != 0 {
		t.Errorf("volume %d after many -, want 0", sb.volume)
	}

	sb.HandleKey('t')
	if !sb.tone {
		t.Errorf("t did not enable the tone")
	}
	sb.HandleKey('t')
	if sb.tone {
		t.Errorf("second t did not disable the tone")
	}

	out.Reset()
	sb.HandleKey('?')
	if !strings.Contains(out.String(), "0  yawn") {
		t.Errorf("help missing key for the tenth built-in: %q", out.String())
	}

	out.Reset()
	sb.HandleKey('z')
	if out.Len() != 0 {
		t.Errorf("unbound key produced output %q", out.String())
	}
}

func TestSoundboard_QuitKeys(t *testing.T) {
	_, board := newTestBoard(t, AudioOptions{})
	sb := NewSoundboard(board, 128, &bytes.Buffer{})
	for _, k := range []byte{'q', KEY_CTRL_C, KEY_CTRL_D} {
		if sb.HandleKey(k) {
			t.Errorf("key %q did not quit", k)
		}
	}
}
