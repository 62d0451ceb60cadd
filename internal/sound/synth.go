// Package sound plays short synthesized cues for game events.
//
// Cues are built from beep streamers (oscillators shaped by attack/release
// envelopes), rendered once to 16-bit PCM, and played through an oto
// device by a single dispatcher goroutine.
package sound

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Audio parameters shared by the synthesizer and the player.
const (
	SampleRate   = 44100
	ChannelCount = 1
	BitDepth     = 16
)

// MaxCueLength caps every rendered cue.
const MaxCueLength = 1500 * time.Millisecond

// Cue is a kind of sound effect.
type Cue int

const (
	CueNone     Cue = iota
	CueActivate     // a button fired
	CueTap          // a correct ingredient
	CueMismatch     // a wrong ingredient
	CueSuccess      // recipe complete
)

// String returns a human-readable cue name.
func (c Cue) String() string {
	switch c {
	case CueActivate:
		return "activate"
	case CueTap:
		return "tap"
	case CueMismatch:
		return "mismatch"
	case CueSuccess:
		return "success"
	default:
		return "none"
	}
}

// Cues lists every playable cue.
var Cues = []Cue{CueActivate, CueTap, CueMismatch, CueSuccess}

// WaveType is an oscillator wave shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveTriangle
)

// oscillator generates a fixed-length periodic wave.
type oscillator struct {
	freq     float64
	phase    float64
	length   int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a wave of the given frequency and length.
func NewOscillator(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{freq: freq, length: rate.N(d), wave: wave, rate: rate}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (o.phase - 0.5)
		case WaveTriangle:
			v = 1 - 4*math.Abs(o.phase-0.5)
		}
		samples[i][0] = v
		samples[i][1] = v

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s over duration d.
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.total - e.release
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.release > 0 && e.position >= releaseStart {
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales a stream linearly; zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func note(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(freq, d, wave, rate)
	return NewEnvelope(osc, d, 5*time.Millisecond, d/2, rate)
}

// Streamer builds the beep streamer for a cue.
func Streamer(c Cue, rate beep.SampleRate) beep.Streamer {
	switch c {
	case CueActivate:
		// Short rising blip.
		return withVolume(beep.Seq(
			note(660, 40*time.Millisecond, WaveTriangle, rate),
			note(990, 60*time.Millisecond, WaveTriangle, rate),
		), 0.5)
	case CueTap:
		// Bell: fundamental plus octave.
		d := 250 * time.Millisecond
		return withVolume(beep.Mix(
			withVolume(note(880, d, WaveSine, rate), 0.7),
			withVolume(note(1760, d/2, WaveSine, rate), 0.3),
		), 0.6)
	case CueMismatch:
		// Low harsh buzz.
		d := 400 * time.Millisecond
		osc := NewOscillator(110, d, WaveSaw, rate)
		return withVolume(NewEnvelope(osc, d, 10*time.Millisecond, 150*time.Millisecond, rate), 0.45)
	case CueSuccess:
		// Rising major arpeggio.
		return withVolume(beep.Seq(
			note(523.25, 120*time.Millisecond, WaveSquare, rate),
			note(659.25, 120*time.Millisecond, WaveSquare, rate),
			note(783.99, 120*time.Millisecond, WaveSquare, rate),
			note(1046.5, 400*time.Millisecond, WaveSquare, rate),
		), 0.3)
	default:
		return nil
	}
}

// Render synthesizes a cue to signed 16-bit little-endian mono PCM.
func Render(c Cue) []byte {
	rate := beep.SampleRate(SampleRate)
	s := Streamer(c, rate)
	if s == nil {
		return nil
	}
	s = beep.Take(rate.N(MaxCueLength), s)

	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			v := math.Max(-1, math.Min(1, frame[0]))
			out = binary.LittleEndian.AppendUint16(out, uint16(int16(v*math.MaxInt16)))
		}
		if !ok {
			break
		}
	}
	return out
}
