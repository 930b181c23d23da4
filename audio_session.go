// audio_session.go - Device, board and backend lifetime

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

import "log/slog"

// audioSession owns one context, its board and the backend driving it.
type audioSession struct {
	ctx    *AudioContext
	board  *BoardAudio
	output AudioOutput
}

// openSession validates cfg, builds the board and starts the backend.
func openSession(cfg Config, logger *slog.Logger, opts AudioOptions) (*audioSession, error) {
	backend, err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	ctx := NewAudioContext(cfg.SampleRate)
	opts.Logger = logger
	opts.SynthOpts = append(opts.SynthOpts, cfg.SynthOptions()...)
	board := NewBoardAudio(ctx, opts)
	board.SetVolume(cfg.Volume)
	if cfg.Muted {
		board.Mute()
	}

	output, err := NewAudioOutput(backend, ctx.SampleRate(), ctx)
	if err != nil {
		board.Close()
		ctx.Close()
		return nil, err
	}
	output.Start()
	logger.Debug("audio started", "backend", AudioBackendName(backend), "rate", ctx.SampleRate())
	return &audioSession{ctx: ctx, board: board, output: output}, nil
}

func (s *audioSession) Close() {
	s.board.Close()
	s.output.Close()
	s.ctx.Close()
}
