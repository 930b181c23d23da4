// audio_backend_null.go - Real-time pump with no audio device

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
	"sync"
	"time"
)

const HEADLESS_TICK = 10 * time.Millisecond

// HeadlessPlayer renders the source in real time on a ticker and hands
// each block to sink (or drops it). It keeps the clock moving on machines
// without a sound device.
type HeadlessPlayer struct {
	source  SampleSource
	sink    func([]float32)
	block   []float32
	started bool
	mutex   sync.Mutex
	quit    chan struct{}
	done    chan struct{}
}

func NewHeadlessPlayer(sampleRate int, source SampleSource, sink func([]float32)) *HeadlessPlayer {
	frames := max(int(int64(sampleRate)*int64(HEADLESS_TICK)/int64(time.Second)), 1)
	return &HeadlessPlayer{
		source: source,
		sink:   sink,
		block:  make([]float32, frames),
	}
}

func (hp *HeadlessPlayer) loop(quit, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(HEADLESS_TICK)
	defer ticker.Stop()
	for {
		select {
		case <-quit:
			return
		case <-ticker.C:
			hp.source.Render(hp.block)
			if hp.sink != nil {
				hp.sink(hp.block)
			}
		}
	}
}

func (hp *HeadlessPlayer) Start() {
	hp.mutex.Lock()
	defer hp.mutex.Unlock()
	if !hp.started {
		hp.started = true
		hp.quit = make(chan struct{})
		hp.done = make(chan struct{})
		go hp.loop(hp.quit, hp.done)
	}
}

func (hp *HeadlessPlayer) Stop() {
	hp.mutex.Lock()
	defer hp.mutex.Unlock()
	if hp.started {
		close(hp.quit)
		<-hp.done
		hp.started = false
	}
}

func (hp *HeadlessPlayer) Close() {
	hp.Stop()
}

func (hp *HeadlessPlayer) IsStarted() bool {
	hp.mutex.Lock()
	defer hp.mutex.Unlock()
	return hp.started
}
