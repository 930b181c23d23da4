// sfx_constants.go - Sound expression engine constants

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

const (
	SFX_SAMPLE_RATE   = 44100 // Synthesizer output rate (Hz)
	SFX_TONE_WIDTH    = 1024  // Toneprint period in position units
	SFX_TONE_WIDTH_F  = float64(SFX_TONE_WIDTH)
	SFX_BUFFER_SIZE   = 512  // Samples returned by each Pull
	SFX_SAMPLE_RANGE  = 1023 // Output domain is 0..SFX_SAMPLE_RANGE
	SFX_SILENCE       = 512  // Midpoint of the output domain
	SFX_TONE_EFFECTS  = 3    // Shape, volume ramp, modulation
	SFX_EFFECT_SHAPE  = 0
	SFX_EFFECT_VOLUME = 1
	SFX_EFFECT_FX     = 2
)

const (
	SFX_RECORD_LEN        = 72
	SFX_SEPARATOR         = ','
	SFX_VOLUME_RAMP_STEPS = 36
	SFX_MAX_VOLUME_RAW    = 1023
	SFX_FX_STEP_SCALE     = 10000.0 // fx steps are spread across duration/10000
	SFX_INVALID_FIELD     = -1
	SFX_DEFAULT_PERIOD_HZ = 6068 // CODAL default when the period is 0
)

// Record field layout: offset and width of each zero padded decimal field.
const (
	SFX_OFF_WAVE          = 0
	SFX_OFF_VOLUME        = 1
	SFX_OFF_FREQUENCY     = 5
	SFX_OFF_DURATION      = 9
	SFX_OFF_SHAPE         = 13
	SFX_OFF_RESERVED_FREQ = 15 // was start frequency, superseded by SFX_OFF_FREQUENCY
	SFX_OFF_END_FREQUENCY = 18
	SFX_OFF_RESERVED_VOL  = 22 // was start volume, superseded by SFX_OFF_VOLUME
	SFX_OFF_END_VOLUME    = 26
	SFX_OFF_STEPS         = 30
	SFX_OFF_FX_CHOICE     = 34
	SFX_OFF_FX_PARAM      = 36
	SFX_OFF_FX_STEPS      = 40
	SFX_OFF_RND_FREQ      = 44
	SFX_OFF_RND_END_FREQ  = 48
	SFX_OFF_RND_VOLUME    = 52
	SFX_OFF_RND_END_VOL   = 56
	SFX_OFF_RND_DURATION  = 60
	SFX_OFF_RND_FX_PARAM  = 64
	SFX_OFF_RND_FX_STEPS  = 68
)

// Shape codes as encoded at SFX_OFF_SHAPE.
const (
	SFX_SHAPE_NONE           = 0
	SFX_SHAPE_LINEAR         = 1
	SFX_SHAPE_CURVE          = 2
	SFX_SHAPE_EXP_RISING     = 5
	SFX_SHAPE_EXP_FALLING    = 6
	SFX_SHAPE_ARPEGGIO_FIRST = 8
	SFX_SHAPE_ARPEGGIO_LAST  = 17
	SFX_SHAPE_LOG            = 18
)

// Modulation codes as encoded at SFX_OFF_FX_CHOICE.
const (
	SFX_FX_NONE              = 0
	SFX_FX_FREQUENCY_VIBRATO = 1
	SFX_FX_VOLUME_VIBRATO    = 2
	SFX_FX_WARBLE            = 3
)

// Effect interpolation constants carried over from the CODAL synthesizer.
const (
	sfxCurveRate    = 3.12159 / 180.0
	sfxDegreeToRad  = 0.01745329
	sfxLogDivisor   = 1.95
	sfxVolumeVibDiv = float64(SFX_MAX_VOLUME_RAW)
)
