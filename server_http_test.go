// server_http_test.go - Tests for the HTTP API

package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T, live bool) (*SoundServer, *BoardAudio) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.SampleRate = 22050
	cfg.NoiseSeed = 3
	var board *BoardAudio
	if live {
		_, board = newTestBoard(t, AudioOptions{})
	}
	return NewSoundServer(board, cfg, slog.New(slog.DiscardHandler)), board
}

func doRequest(s *SoundServer, method, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestSoundServer_Health(t *testing.T) {
	for _, live := range []bool{false, true} {
		s, _ := newTestServer(t, live)
		rec := doRequest(s, http.MethodGet, "/health", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d", rec.Code)
		}
		var got map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got["status"] != "ok" || got["live"] != live {
			t.Errorf("live=%v: body %v", live, got)
		}
	}
}

func TestSoundServer_List(t *testing.T) {
	s, _ := newTestServer(t, false)
	rec := doRequest(s, http.MethodGet, "/expressions", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var got []expressionSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != len(BuiltinSoundNames()) {
		t.Fatalf("%d expressions, want %d", len(got), len(BuiltinSoundNames()))
	}
	for _, e := range got {
		if e.Metadata.Records == 0 || e.Metadata.Duration <= 0 {
			t.Errorf("%s: metadata %+v", e.Name, e.Metadata)
		}
	}
}

func TestSoundServer_Expression(t *testing.T) {
	s, _ := newTestServer(t, false)

	rec := doRequest(s, http.MethodGet, "/expressions/hello", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var got struct {
		Name       string `json:"name"`
		Descriptor string `json:"descriptor"`
		Records    []json.RawMessage
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "hello" || got.Descriptor != ReplaceBuiltinSound("hello") {
		t.Errorf("name %q descriptor %q", got.Name, got.Descriptor)
	}
	if len(got.Records) != 3 {
		t.Errorf("%d records, want 3", len(got.Records))
	}

	if rec := doRequest(s, http.MethodGet, "/expressions/nope", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown name: status %d, want 404", rec.Code)
	}
}

func TestSoundServer_Decode(t *testing.T) {
	s, _ := newTestServer(t, false)
	rec := testRecord(1, 1023, 440, 200, 1, 880, 0, 64, 0, 0, 0)
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"record", rec, http.StatusOK},
		{"builtin_with_comment", "# greeting\nhello\n", http.StatusOK},
		{"bad_length", rec[:40], http.StatusUnprocessableEntity},
		{"empty", "# nothing here\n", http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := doRequest(s, http.MethodPost, "/decode", tt.body)
			if got.Code != tt.status {
				t.Fatalf("status %d, want %d: %s", got.Code, tt.status, got.Body.String())
			}
		})
	}

	got := doRequest(s, http.MethodPost, "/decode", rec)
	var summary struct {
		Descriptor string        `json:"descriptor"`
		Metadata   MusicMetadata `json:"metadata"`
	}
	if err := json.Unmarshal(got.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary.Descriptor != rec {
		t.Errorf("descriptor %q, want %q", summary.Descriptor, rec)
	}
	if summary.Metadata.Records != 1 || summary.Metadata.Duration != 0.2 {
		t.Errorf("metadata %+v", summary.Metadata)
	}
}

func TestSoundServer_Render(t *testing.T) {
	s, _ := newTestServer(t, false)
	rec := doRequest(s, http.MethodGet, "/render/twinkle", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "audio/wav" {
		t.Errorf("Content-Type %q", ct)
	}
	buf, err := LoadWAV(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("LoadWAV: %v", err)
	}
	if buf.SampleRate != 22050 || buf.Length() == 0 {
		t.Errorf("%d samples at %d Hz", buf.Length(), buf.SampleRate)
	}

	if rec := doRequest(s, http.MethodGet, "/render/nope", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown name: status %d, want 404", rec.Code)
	}
}

func TestSoundServer_PlayRenderOnly(t *testing.T) {
	s, _ := newTestServer(t, false)
	if rec := doRequest(s, http.MethodPost, "/play/hello", ""); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("play: status %d, want 503", rec.Code)
	}
	if rec := doRequest(s, http.MethodPost, "/stop", ""); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("stop: status %d, want 503", rec.Code)
	}
}

func TestSoundServer_PlayLive(t *testing.T) {
	s, board := newTestServer(t, true)
	rec := doRequest(s, http.MethodPost, "/play/hello", "")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("play: status %d", rec.Code)
	}
	if !board.IsExpressionActive() {
		t.Errorf("board not playing after /play")
	}
	if rec := doRequest(s, http.MethodPost, "/play/garbage", ""); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("bad expression: status %d, want 422", rec.Code)
	}
	if rec := doRequest(s, http.MethodPost, "/stop", ""); rec.Code != http.StatusNoContent {
		t.Errorf("stop: status %d, want 204", rec.Code)
	}
	if board.IsExpressionActive() {
		t.Errorf("board still playing after /stop")
	}
}
