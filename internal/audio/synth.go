// Package audio synthesizes the game's sound cues with beep and plays them
// through the system speaker. Audio is optional: when the device cannot be
// opened the game runs silently.
package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/tui-robbo/internal/games/robbo/core"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// note is one oscillator segment: a frequency glide from -> to with a linear
// attack and release.
type note struct {
	wave     Wave
	from, to float64 // Hz
	length   time.Duration
	attack   time.Duration
	release  time.Duration
	gain     float64
}

// tone streams a note.
type tone struct {
	n           note
	rate        beep.SampleRate
	total       int
	attack      int
	releaseFrom int
	pos         int
	phase       float64
	rng         *rand.Rand
}

func newTone(n note, rate beep.SampleRate) *tone {
	total := rate.N(n.length)
	rel := rate.N(n.release)
	return &tone{
		n:           n,
		rate:        rate,
		total:       total,
		attack:      rate.N(n.attack),
		releaseFrom: total - rel,
		rng:         rand.New(rand.NewPCG(uint64(n.from), uint64(total))),
	}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.pos >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.total {
			return i, true
		}
		progress := float64(t.pos) / float64(t.total)
		freq := t.n.from + (t.n.to-t.n.from)*progress

		var v float64
		switch t.n.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (t.phase - 0.5)
		case WaveNoise:
			v = t.rng.Float64()*2 - 1
		}
		v *= t.gain() * t.n.gain

		samples[i][0] = v
		samples[i][1] = v

		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

// gain is the envelope at the current position.
func (t *tone) gain() float64 {
	switch {
	case t.attack > 0 && t.pos < t.attack:
		return float64(t.pos) / float64(t.attack)
	case t.pos >= t.releaseFrom && t.total > t.releaseFrom:
		return float64(t.total-t.pos) / float64(t.total-t.releaseFrom)
	}
	return 1
}

func (t *tone) Err() error { return nil }

const ms = time.Millisecond

// recipes lists the notes of every cue. Notes of one cue play in sequence
// unless the cue is marked as layered.
var recipes = map[core.Cue][]note{
	core.CueWalk:  {{wave: WaveSquare, from: 110, to: 90, length: 25 * ms, release: 15 * ms, gain: 0.25}},
	core.CueShot:  {{wave: WaveSaw, from: 900, to: 200, length: 90 * ms, attack: 2 * ms, release: 40 * ms, gain: 0.5}},
	core.CueSpawn: {{wave: WaveSine, from: 300, to: 900, length: 120 * ms, attack: 10 * ms, release: 40 * ms, gain: 0.6}},
	core.CueAmmo: {
		{wave: WaveSquare, from: 660, to: 660, length: 60 * ms, attack: 2 * ms, release: 20 * ms, gain: 0.4},
		{wave: WaveSquare, from: 880, to: 880, length: 80 * ms, attack: 2 * ms, release: 40 * ms, gain: 0.4},
	},
	core.CueKey: {{wave: WaveSine, from: 1320, to: 1320, length: 250 * ms, attack: 5 * ms, release: 200 * ms, gain: 0.7}},
	core.CueScrew: {
		{wave: WaveSquare, from: 987.77, to: 987.77, length: 70 * ms, attack: 2 * ms, release: 20 * ms, gain: 0.4},
		{wave: WaveSquare, from: 1318.51, to: 1318.51, length: 160 * ms, attack: 2 * ms, release: 120 * ms, gain: 0.4},
	},
	core.CueBomb:     {{wave: WaveSquare, from: 220, to: 180, length: 80 * ms, attack: 2 * ms, release: 40 * ms, gain: 0.4}},
	core.CueDoor:     {{wave: WaveSaw, from: 160, to: 120, length: 200 * ms, attack: 10 * ms, release: 80 * ms, gain: 0.5}},
	core.CueTeleport: {{wave: WaveSine, from: 200, to: 1600, length: 250 * ms, attack: 10 * ms, release: 60 * ms, gain: 0.6}},
	core.CueBurn:     {{wave: WaveNoise, length: 120 * ms, attack: 5 * ms, release: 80 * ms, gain: 0.35}},
	core.CueExplosion: {
		{wave: WaveNoise, length: 400 * ms, attack: 2 * ms, release: 350 * ms, gain: 0.6},
		{wave: WaveSaw, from: 70, to: 40, length: 400 * ms, attack: 2 * ms, release: 300 * ms, gain: 0.4},
	},
}

// layered cues mix their notes instead of playing them in sequence.
var layered = map[core.Cue]bool{
	core.CueExplosion: true,
}

// Voice builds the streamer of a cue, nil for an unknown cue.
func Voice(c core.Cue, rate beep.SampleRate) beep.Streamer {
	notes, ok := recipes[c]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		parts[i] = newTone(n, rate)
	}
	if len(parts) == 1 {
		return parts[0]
	}
	if layered[c] {
		return beep.Mix(parts...)
	}
	return beep.Seq(parts...)
}

// withVolume scales a streamer by a linear volume in [0, 1].
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
