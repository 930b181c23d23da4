//go:build !portaudio || headless

package main

import "errors"

func NewPortAudioPlayer(sampleRate int, source SampleSource) (AudioOutput, error) {
	return nil, errors.New("not compiled in (build with -tags portaudio)")
}
