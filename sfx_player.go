// sfx_player.go - Sound expression player

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
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const PLAYER_POLL_INTERVAL = 5 * time.Millisecond

// ExpressionPlayer adapts a BoardAudio to the MusicPlayer contract.
type ExpressionPlayer struct {
	board *BoardAudio

	mu       sync.Mutex
	effects  []SoundEffect
	metadata MusicMetadata
}

func NewExpressionPlayer(board *BoardAudio) *ExpressionPlayer {
	return &ExpressionPlayer{board: board}
}

// Load reads a descriptor file. The title is the file name without
// extension.
func (p *ExpressionPlayer) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read expression: %w", err)
	}
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return p.load(title, data)
}

func (p *ExpressionPlayer) LoadData(data []byte) error {
	return p.load("", data)
}

// LoadExpression loads a built-in name or an inline descriptor.
func (p *ExpressionPlayer) LoadExpression(expr string) error {
	title := ""
	if IsBuiltinSound(expr) {
		title = expr
	}
	return p.load(title, []byte(expr))
}

func (p *ExpressionPlayer) load(title string, data []byte) error {
	text, err := parseExpressionText(data)
	if err != nil {
		return err
	}
	effects, err := ParseSoundEffects(text)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.effects = effects
	p.metadata = metadataFor(title, effects)
	return nil
}

func (p *ExpressionPlayer) Play() {
	p.mu.Lock()
	effects := p.effects
	p.mu.Unlock()
	if effects == nil {
		return
	}
	p.board.PlayExpression(effects)
}

func (p *ExpressionPlayer) Stop() {
	p.board.StopExpression()
}

func (p *ExpressionPlayer) IsPlaying() bool {
	return !p.board.ExpressionDrained()
}

// Wait polls until the phrase has played out or ctx is done.
func (p *ExpressionPlayer) Wait(ctx context.Context) error {
	ticker := time.NewTicker(PLAYER_POLL_INTERVAL)
	defer ticker.Stop()
	for p.IsPlaying() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

func (p *ExpressionPlayer) Effects() []SoundEffect {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.effects
}

func (p *ExpressionPlayer) Metadata() MusicMetadata {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.metadata
}

func (p *ExpressionPlayer) DurationSeconds() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.metadata.Duration
}

func (p *ExpressionPlayer) DurationText() string {
	return formatDurationText(p.DurationSeconds())
}
