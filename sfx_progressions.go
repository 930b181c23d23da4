// sfx_progressions.go - Musical progression tables for arpeggio effects

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

// Progression is a named table of frequency ratios within one octave.
type Progression struct {
	Name     string    `json:"name"`
	Interval []float64 `json:"-"`
}

// Len returns the number of steps per octave.
func (p *Progression) Len() int {
	return len(p.Interval)
}

func (p *Progression) MarshalText() ([]byte, error) {
	return []byte(p.Name), nil
}

// ChromaticInterval is the CODAL twelve step table (not just intonation).
var ChromaticInterval = [12]float64{
	1.0, 1.0417, 1.125, 1.2, 1.25, 1.3333, 1.4063, 1.5, 1.6, 1.6667, 1.8, 1.875,
}

func chromaticSteps(steps ...int) []float64 {
	out := make([]float64, len(steps))
	for i, s := range steps {
		out[i] = ChromaticInterval[s]
	}
	return out
}

var (
	ProgressionChromatic  = &Progression{Name: "chromatic", Interval: ChromaticInterval[:]}
	ProgressionMajor      = &Progression{Name: "major", Interval: chromaticSteps(0, 2, 4, 5, 7, 9, 11)}
	ProgressionMinor      = &Progression{Name: "minor", Interval: chromaticSteps(0, 2, 3, 5, 7, 8, 10)}
	ProgressionPentatonic = &Progression{Name: "pentatonic", Interval: chromaticSteps(0, 2, 4, 7, 9)}
	ProgressionMajorTriad = &Progression{Name: "major-triad", Interval: chromaticSteps(0, 4, 7)}
	ProgressionMinorTriad = &Progression{Name: "minor-triad", Interval: chromaticSteps(0, 3, 7)}
	ProgressionDiminished = &Progression{Name: "diminished", Interval: chromaticSteps(0, 3, 6, 9)}
	ProgressionWholeTone  = &Progression{Name: "whole-tone", Interval: chromaticSteps(0, 2, 4, 6, 8, 10)}
)

var allProgressions = []*Progression{
	ProgressionChromatic, ProgressionMajor, ProgressionMinor, ProgressionPentatonic,
	ProgressionMajorTriad, ProgressionMinorTriad, ProgressionDiminished, ProgressionWholeTone,
}

// arpeggioProgressions is indexed by (shape - SFX_SHAPE_ARPEGGIO_FIRST) / 2.
var arpeggioProgressions = [5]*Progression{
	ProgressionMajor,
	ProgressionMinor,
	ProgressionDiminished,
	ProgressionChromatic,
	ProgressionWholeTone,
}

// ProgressionByName returns the named progression or nil.
func ProgressionByName(name string) *Progression {
	for _, p := range allProgressions {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// FrequencyFromProgression returns the frequency of the note offset steps
// above root. Offsets past the table wrap into higher octaves; negative
// offsets wrap downward.
func FrequencyFromProgression(root float64, p *Progression, offset int) float64 {
	n := p.Len()
	if n == 0 {
		return root
	}
	octave := offset / n
	index := offset % n
	if index < 0 {
		index += n
		octave--
	}
	return root * math.Ldexp(1, octave) * p.Interval[index]
}
