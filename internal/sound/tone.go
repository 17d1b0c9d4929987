package sound

import (
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
)

const (
	toneDuration  = 100 * time.Millisecond
	toneStartGain = 0.1
	toneEndGain   = 0.01
)

// tone is a sine oscillator whose gain falls exponentially from
// toneStartGain to toneEndGain over its length.
type tone struct {
	freq     float64
	rate     beep.SampleRate
	phase    float64
	position int
	length   int
	decay    float64 // per-sample gain multiplier
}

// Tone returns a 100 ms sine blip at freq.
func Tone(freq float64, rate beep.SampleRate) beep.Streamer {
	n := rate.N(toneDuration)
	decay := 1.0
	if n > 1 {
		decay = math.Pow(toneEndGain/toneStartGain, 1/float64(n-1))
	}
	return &tone{freq: freq, rate: rate, length: n, decay: decay}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.length {
			return i, i > 0
		}

		gain := toneStartGain * math.Pow(t.decay, float64(t.position))
		val := math.Sin(2*math.Pi*t.phase) * gain
		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// withVolume scales s linearly by vol. math.Log2(0) is -Inf, so zero or
// negative volume is rendered as silence instead.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol == 1 {
		return s
	}
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
