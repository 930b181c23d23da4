// script_lua_test.go - Tests for the Lua scripting bridge

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRunLuaString_Module(t *testing.T) {
	_, board := newTestBoard(t, AudioOptions{})
	script := `
local audio = require("audio")

local names = audio.builtins()
assert(#names == 10, "builtins: " .. #names)
assert(names[1] == "giggle")

local recs = audio.decode("hello")
assert(#recs == 3)
assert(recs[1].wave == "square", recs[1].wave)
assert(recs[1].ramp == "volume-ramp")
assert(#recs[1].descriptor == 72)

local none, msg = audio.decode("0123")
assert(none == nil and msg ~= nil)

local ok, err = audio.play("garbage")
assert(not ok and err ~= nil)

assert(audio.play("twinkle"))
assert(audio.is_playing())
audio.stop()

audio.period_us(0)
audio.amplitude_u10(512)
audio.amplitude_u10(0)
audio.set_volume(100)
audio.mute()
audio.unmute()
audio.sleep(1)
`
	if err := RunLuaString(context.Background(), board, script); err != nil {
		t.Fatalf("script failed: %v", err)
	}
	if board.Frequency() != SFX_DEFAULT_PERIOD_HZ {
		t.Errorf("period_us(0) gave %v Hz", board.Frequency())
	}
	if board.IsMuted() {
		t.Errorf("board left muted")
	}
}

func TestRunLuaString_Wait(t *testing.T) {
	ctx, board := newTestBoard(t, AudioOptions{})
	startPump(t, ctx)
	script := `
local audio = require("audio")
assert(audio.play("` + testRecord(0, 800, 660, 40, 0, 0, 800, 1, 0, 0, 0) + `"))
audio.wait()
assert(not audio.is_playing())
`
	tctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := RunLuaString(tctx, board, script); err != nil {
		t.Fatalf("script failed: %v", err)
	}
}

func TestRunLuaString_Cancel(t *testing.T) {
	_, board := newTestBoard(t, AudioOptions{})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	start := time.Now()
	err := RunLuaString(ctx, board, `require("audio").sleep(10000)`)
	if err == nil {
		t.Fatalf("cancelled sleep returned nil")
	}
	if time.Since(start) > 5*time.Second {
		t.Errorf("sleep ignored cancellation")
	}
}

func TestRunLuaString_SyntaxError(t *testing.T) {
	_, board := newTestBoard(t, AudioOptions{})
	if err := RunLuaString(context.Background(), board, "this is not lua"); err == nil {
		t.Errorf("syntax error not reported")
	}
}

func TestRunLuaScript_File(t *testing.T) {
	_, board := newTestBoard(t, AudioOptions{})
	path := filepath.Join(t.TempDir(), "volume.lua")
	if err := os.WriteFile(path, []byte(`require("audio").mute()`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := RunLuaScript(context.Background(), board, path); err != nil {
		t.Fatalf("RunLuaScript: %v", err)
	}
	if !board.IsMuted() {
		t.Errorf("script did not mute the board")
	}
	if err := RunLuaScript(context.Background(), board, path+".missing"); err == nil {
		t.Errorf("missing script did not fail")
	}
}
