// terminal_host.go - Raw terminal key input

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
	"errors"
	"os"
	"sync"

	"golang.org/x/term"
)

// TerminalHost puts stdin in raw mode and hands every byte read to onKey.
type TerminalHost struct {
	in    *os.File
	onKey func(byte)
	done  chan struct{}

	state    *term.State
	stopOnce sync.Once
}

func NewTerminalHost(onKey func(byte)) *TerminalHost {
	return &TerminalHost{in: os.Stdin, onKey: onKey, done: make(chan struct{})}
}

// Start switches the terminal to raw mode and starts the reader.
func (h *TerminalHost) Start() error {
	fd := int(h.in.Fd())
	if !term.IsTerminal(fd) {
		close(h.done)
		return errors.New("terminal: stdin is not a terminal")
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		close(h.done)
		return err
	}
	h.state = state
	go h.read()
	return nil
}

// read runs until stdin fails or reaches EOF. A pending Read is left to
// finish on its own after Stop; keys arriving then are dropped by the
// callback's owner.
func (h *TerminalHost) read() {
	defer close(h.done)
	var buf [32]byte
	for {
		n, err := h.in.Read(buf[:])
		for _, b := range buf[:n] {
			if b == '\r' {
				b = '\n'
			}
			h.onKey(b)
		}
		if err != nil {
			return
		}
	}
}

// Done is closed when stdin ends.
func (h *TerminalHost) Done() <-chan struct{} {
	return h.done
}

// Stop restores the terminal. Safe to call more than once.
func (h *TerminalHost) Stop() {
	h.stopOnce.Do(func() {
		if h.state != nil {
			_ = term.Restore(int(h.in.Fd()), h.state)
		}
	})
}
