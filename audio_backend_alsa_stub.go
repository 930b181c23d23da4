//go:build !alsa || !linux || headless

package main

import "errors"

func NewALSAPlayer(sampleRate int, source SampleSource) (AudioOutput, error) {
	return nil, errors.New("not compiled in (build with -tags alsa on linux)")
}
