// sfx_progressions_test.go - Tests for arpeggio progression tables

package main

import (
	"math"
	"testing"
)

func TestProgressions_StartAtUnison(t *testing.T) {
	for _, p := range allProgressions {
		if p.Len() == 0 || p.Interval[0] != 1.0 {
			t.Errorf("%s: first interval = %v", p.Name, p.Interval)
		}
		for i := 1; i < p.Len(); i++ {
			if p.Interval[i] <= p.Interval[i-1] || p.Interval[i] >= 2 {
				t.Errorf("%s: interval %d = %v not ascending within the octave", p.Name, i, p.Interval[i])
			}
		}
	}
}

func TestProgressionByName(t *testing.T) {
	if ProgressionByName("whole-tone") != ProgressionWholeTone {
		t.Errorf("whole-tone lookup failed")
	}
	if ProgressionByName("lydian") != nil {
		t.Errorf("unknown name should return nil")
	}
}

func TestFrequencyFromProgression(t *testing.T) {
	tests := []struct {
		name   string
		prog   *Progression
		offset int
		want   float64
	}{
		{"root", ProgressionMajor, 0, 440},
		{"third", ProgressionMajor, 2, 440 * 1.25},
		{"octave", ProgressionMajor, 7, 880},
		{"octave plus fifth", ProgressionMajor, 11, 880 * 1.5},
		{"below root", ProgressionMajor, -1, 220 * 1.875},
		{"two octaves below", ProgressionMajorTriad, -6, 110},
		{"chromatic wrap", ProgressionChromatic, 13, 880 * 1.0417},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FrequencyFromProgression(440, tt.prog, tt.offset)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFrequencyFromProgression_Empty(t *testing.T) {
	if got := FrequencyFromProgression(300, &Progression{Name: "empty"}, 5); got != 300 {
		t.Errorf("empty progression: got %v, want root", got)
	}
}
