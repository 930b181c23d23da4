// script_lua.go - Lua scripting bridge for the board

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
	"context"
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"
)

const LUA_MODULE = "audio"

// luaBridge exposes a board to scripts as require("audio").
type luaBridge struct {
	ctx    context.Context
	board  *BoardAudio
	player *ExpressionPlayer
}

// RunLuaScript runs the script at path against board. ctx cancels a
// running script, including one blocked in sleep or wait.
func RunLuaScript(ctx context.Context, board *BoardAudio, path string) error {
	L := newLuaState(ctx, board)
	defer L.Close()
	if err := L.DoFile(path); err != nil {
		return fmt.Errorf("lua: %w", err)
	}
	return nil
}

// RunLuaString is RunLuaScript for inline source.
func RunLuaString(ctx context.Context, board *BoardAudio, source string) error {
	L := newLuaState(ctx, board)
	defer L.Close()
	if err := L.DoString(source); err != nil {
		return fmt.Errorf("lua: %w", err)
	}
	return nil
}

func newLuaState(ctx context.Context, board *BoardAudio) *lua.LState {
	L := lua.NewState()
	L.SetContext(ctx)
	b := &luaBridge{ctx: ctx, board: board, player: NewExpressionPlayer(board)}
	L.PreloadModule(LUA_MODULE, b.loader)
	return L
}

func (b *luaBridge) loader(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"play":          b.play,
		"stop":          b.stop,
		"is_playing":    b.isPlaying,
		"wait":          b.wait,
		"sleep":         b.sleep,
		"decode":        b.decode,
		"builtins":      b.builtins,
		"set_volume":    b.setVolume,
		"mute":          b.mute,
		"unmute":        b.unmute,
		"period_us":     b.periodUs,
		"amplitude_u10": b.amplitudeU10,
	})
	L.Push(mod)
	return 1
}

// play(expr) -> true | false, message
func (b *luaBridge) play(L *lua.LState) int {
	if err := b.player.LoadExpression(L.CheckString(1)); err != nil {
		L.Push(lua.LFalse)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	b.player.Play()
	L.Push(lua.LTrue)
	return 1
}

func (b *luaBridge) stop(L *lua.LState) int {
	b.board.StopExpression()
	return 0
}

func (b *luaBridge) isPlaying(L *lua.LState) int {
	L.Push(lua.LBool(b.player.IsPlaying()))
	return 1
}

func (b *luaBridge) wait(L *lua.LState) int {
	if err := b.player.Wait(b.ctx); err != nil {
		L.RaiseError("wait: %v", err)
	}
	return 0
}

// sleep(ms)
func (b *luaBridge) sleep(L *lua.LState) int {
	ms := L.CheckInt(1)
	timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
	defer timer.Stop()
	select {
	case <-b.ctx.Done():
		L.RaiseError("sleep: %v", b.ctx.Err())
	case <-timer.C:
	}
	return 0
}

// decode(expr) -> {records...} | nil, message
func (b *luaBridge) decode(L *lua.LState) int {
	effects, err := DecodeExpression(L.CheckString(1))
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	list := L.NewTable()
	for _, fx := range effects {
		rec := L.NewTable()
		rec.RawSetString("wave", lua.LString(fx.Tone.String()))
		rec.RawSetString("frequency", lua.LNumber(fx.Frequency))
		rec.RawSetString("volume", lua.LNumber(fx.Volume))
		rec.RawSetString("duration", lua.LNumber(fx.Duration))
		rec.RawSetString("shape", lua.LString(fx.Shape().Kind.String()))
		rec.RawSetString("ramp", lua.LString(fx.VolumeRamp().Kind.String()))
		rec.RawSetString("fx", lua.LString(fx.Modulation().Kind.String()))
		rec.RawSetString("descriptor", lua.LString(fx.Descriptor()))
		list.Append(rec)
	}
	L.Push(list)
	return 1
}

func (b *luaBridge) builtins(L *lua.LState) int {
	list := L.NewTable()
	for _, name := range BuiltinSoundNames() {
		list.Append(lua.LString(name))
	}
	L.Push(list)
	return 1
}

func (b *luaBridge) setVolume(L *lua.LState) int {
	b.board.SetVolume(L.CheckInt(1))
	return 0
}

func (b *luaBridge) mute(L *lua.LState) int {
	b.board.Mute()
	return 0
}

func (b *luaBridge) unmute(L *lua.LState) int {
	b.board.Unmute()
	return 0
}

func (b *luaBridge) periodUs(L *lua.LState) int {
	b.board.SetPeriodUs(L.CheckInt(1))
	return 0
}

func (b *luaBridge) amplitudeU10(L *lua.LState) int {
	b.board.SetAmplitudeU10(L.CheckInt(1))
	return 0
}
