// soundboard.go - Interactive soundboard on a raw terminal

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
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
)

const (
	SOUNDBOARD_VOLUME_STEP = 16
	SOUNDBOARD_TONE_AMP    = 512

	KEY_CTRL_C = 0x03
	KEY_CTRL_D = 0x04
)

var errSoundboardQuit = errors.New("soundboard: quit")

// Soundboard maps single keys to board actions.
type Soundboard struct {
	board  *BoardAudio
	out    io.Writer
	names  []string
	volume int
	muted  bool
	tone   bool
	keys   chan byte
}

func NewSoundboard(board *BoardAudio, volume int, out io.Writer) *Soundboard {
	return &Soundboard{
		board:  board,
		out:    out,
		names:  BuiltinSoundNames(),
		volume: volume,
		keys:   make(chan byte, 16),
	}
}

func (s *Soundboard) printf(format string, args ...any) {
	// raw mode needs an explicit carriage return
	fmt.Fprintf(s.out, format+"\r\n", args...)
}

func (s *Soundboard) PrintHelp() {
	s.printf("Keys:")
	for i, name := range s.names {
		s.printf("  %c  %s", soundboardKey(i), name)
	}
	s.printf("  s  stop    m  mute/unmute    +/-  volume    t  tone    q  quit")
}

// soundboardKey returns the key for the i-th built-in: 1-9, 0, then a-...
func soundboardKey(i int) byte {
	switch {
	case i < 9:
		return byte('1' + i)
	case i == 9:
		return '0'
	}
	return byte('a' + i - 10)
}

func (s *Soundboard) nameForKey(k byte) (string, bool) {
	for i, name := range s.names {
		if soundboardKey(i) == k {
			return name, true
		}
	}
	return "", false
}

// HandleKey performs the action bound to k. It returns false when k asks
// to quit.
func (s *Soundboard) HandleKey(k byte) bool {
	switch k {
	case 'q', KEY_CTRL_C, KEY_CTRL_D:
		return false
	case 's':
		s.board.StopExpression()
		s.printf("stopped")
	case 'm':
		s.muted = !s.muted
		if s.muted {
			s.board.Mute()
		} else {
			s.board.Unmute()
		}
		s.printf("muted: %v", s.muted)
	case '+', '=':
		s.setVolume(s.volume + SOUNDBOARD_VOLUME_STEP)
	case '-', '_':
		s.setVolume(s.volume - SOUNDBOARD_VOLUME_STEP)
	case 't':
		s.tone = !s.tone
		if s.tone {
			s.board.SetAmplitudeU10(SOUNDBOARD_TONE_AMP)
		} else {
			s.board.SetAmplitudeU10(0)
		}
		s.printf("tone %.0fHz: %v", s.board.Frequency(), s.tone)
	case '?', 'h':
		s.PrintHelp()
	default:
		if name, ok := s.nameForKey(k); ok {
			if err := s.board.PlaySoundExpression(name); err == nil {
				s.printf("> %s", name)
			}
		}
	}
	return true
}

func (s *Soundboard) setVolume(v int) {
	s.volume = min(max(v, 0), AUDIO_MAX_VOLUME)
	s.board.SetVolume(s.volume)
	s.printf("volume: %d", s.volume)
}

// Run reads keys from the terminal until quit, stdin closes or ctx ends.
func (s *Soundboard) Run(ctx context.Context) error {
	host := NewTerminalHost(func(b byte) {
		select {
		case s.keys <- b:
		default:
		}
	})
	if err := host.Start(); err != nil {
		return err
	}
	defer host.Stop()

	s.PrintHelp()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case k := <-s.keys:
				if !s.HandleKey(k) {
					return errSoundboardQuit
				}
			}
		}
	})
	g.Go(func() error {
		select {
		case <-host.Done():
			return errSoundboardQuit
		case <-gctx.Done():
			return nil
		}
	})
	if err := g.Wait(); err != nil && !errors.Is(err, errSoundboardQuit) {
		return err
	}
	return nil
}
