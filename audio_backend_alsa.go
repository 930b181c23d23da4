//go:build alsa && linux && !headless

// audio_backend_alsa.go - ALSA audio output implementation

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

/*
#cgo LDFLAGS: -lasound
#include <alsa/asoundlib.h>
#include <stdlib.h>

static int sfx_open(snd_pcm_t** pcm, const char* name, unsigned int rate, unsigned int latency_us) {
    int err = snd_pcm_open(pcm, name, SND_PCM_STREAM_PLAYBACK, 0);
    if (err < 0) return err;
    err = snd_pcm_set_params(*pcm, SND_PCM_FORMAT_FLOAT_LE, SND_PCM_ACCESS_RW_INTERLEAVED,
                             1, rate, 1, latency_us);
    if (err < 0) {
        snd_pcm_close(*pcm);
        *pcm = NULL;
    }
    return err;
}

static long sfx_write(snd_pcm_t* pcm, const float* data, unsigned long frames) {
    long n = snd_pcm_writei(pcm, data, frames);
    if (n < 0) {
        n = snd_pcm_recover(pcm, (int)n, 1);
    }
    return n;
}
*/
import "C"
import (
	"fmt"
	"sync"
	"unsafe"
)

func init() {
	compiledFeatures = append(compiledFeatures, "audio:alsa")
}

const (
	ALSA_DEVICE     = "default"
	ALSA_LATENCY_US = 40000
	ALSA_BLOCK_MS   = 10
)

// ALSAPlayer renders blocks on its own goroutine and pushes them to the
// PCM device. The blocking write paces the context clock.
type ALSAPlayer struct {
	pcm    *C.snd_pcm_t
	source SampleSource
	block  []float32

	mutex   sync.Mutex
	running bool
	quit    chan struct{}
	done    chan struct{}
}

func NewALSAPlayer(sampleRate int, source SampleSource) (AudioOutput, error) {
	name := C.CString(ALSA_DEVICE)
	defer C.free(unsafe.Pointer(name))

	var pcm *C.snd_pcm_t
	if rc := C.sfx_open(&pcm, name, C.uint(sampleRate), C.uint(ALSA_LATENCY_US)); rc < 0 {
		return nil, fmt.Errorf("open %s: %s", ALSA_DEVICE, C.GoString(C.snd_strerror(rc)))
	}
	frames := max(sampleRate*ALSA_BLOCK_MS/1000, 1)
	return &ALSAPlayer{pcm: pcm, source: source, block: make([]float32, frames)}, nil
}

func (ap *ALSAPlayer) pump(quit <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-quit:
			return
		default:
		}
		ap.source.Render(ap.block)
		n := C.sfx_write(ap.pcm, (*C.float)(unsafe.Pointer(&ap.block[0])), C.ulong(len(ap.block)))
		if n < 0 {
			return
		}
	}
}

func (ap *ALSAPlayer) Start() {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()
	if ap.running || ap.pcm == nil {
		return
	}
	ap.running = true
	ap.quit = make(chan struct{})
	ap.done = make(chan struct{})
	go ap.pump(ap.quit, ap.done)
}

func (ap *ALSAPlayer) Stop() {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()
	if !ap.running {
		return
	}
	close(ap.quit)
	<-ap.done
	ap.running = false
}

func (ap *ALSAPlayer) Close() {
	ap.Stop()
	ap.mutex.Lock()
	defer ap.mutex.Unlock()
	if ap.pcm != nil {
		C.snd_pcm_drain(ap.pcm)
		C.snd_pcm_close(ap.pcm)
		ap.pcm = nil
	}
}

func (ap *ALSAPlayer) IsStarted() bool {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()
	return ap.running
}
