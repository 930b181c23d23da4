// audio_lut.go - Lookup tables for the toneprints and the legacy oscillator

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

import "math"

const (
	OSC_TABLE_SIZE = 4096 // Oscillator table entries per cycle
)

// oscTable holds one sine cycle plus a guard entry so interpolation at the
// last index never wraps.
var oscTable [OSC_TABLE_SIZE + 1]float32

// sineTone is one toneprint period of a sine in the 0..1023 output domain.
var sineTone [SFX_TONE_WIDTH]uint16

func init() {
	for i := range oscTable {
		oscTable[i] = float32(math.Sin(2 * math.Pi * float64(i) / OSC_TABLE_SIZE))
	}
	half := float64(SFX_SAMPLE_RANGE) / 2
	for i := range sineTone {
		sineTone[i] = uint16(math.Round(half + half*math.Sin(2*math.Pi*float64(i)/SFX_TONE_WIDTH_F)))
	}
}

// oscSine returns sin(2π·phase) for phase in cycles, 0 <= phase < 1.
func oscSine(phase float32) float32 {
	pos := phase * OSC_TABLE_SIZE
	idx := int(pos)
	if idx < 0 || idx >= OSC_TABLE_SIZE {
		idx = 0
		pos = 0
	}
	a := oscTable[idx]
	return a + (pos-float32(idx))*(oscTable[idx+1]-a)
}
