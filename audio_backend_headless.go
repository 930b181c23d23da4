//go:build headless

package main

import "errors"

func init() {
	compiledFeatures = append(compiledFeatures, "audio:headless")
}

var errNotCompiled = errors.New("backend not compiled into headless build")

func NewOtoPlayer(sampleRate int, source SampleSource) (AudioOutput, error) {
	return nil, errNotCompiled
}

func NewEbitenPlayer(sampleRate int, source SampleSource) (AudioOutput, error) {
	return nil, errNotCompiled
}
