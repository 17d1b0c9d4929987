package sound

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// Meter passes a stream through unchanged and remembers the mono power of
// the most recent samples, so the HUD can show how loud the cues are.
type Meter struct {
	beep.Streamer

	mu    sync.Mutex
	power []float64 // ring of squared mono samples
	head  int       // next slot to write
	seen  int       // samples written, capped at len(power)
}

// NewMeter taps src, remembering up to window samples.
func NewMeter(src beep.Streamer, window int) *Meter {
	return &Meter{Streamer: src, power: make([]float64, window)}
}

// Stream reads from the wrapped streamer and records the power of what it
// produced.
func (m *Meter) Stream(samples [][2]float64) (int, bool) {
	n, ok := m.Streamer.Stream(samples)
	if n == 0 || len(m.power) == 0 {
		return n, ok
	}

	m.mu.Lock()
	for _, s := range samples[:n] {
		mono := (s[0] + s[1]) / 2
		m.power[m.head] = mono * mono
		m.head = (m.head + 1) % len(m.power)
	}
	m.seen = min(m.seen+n, len(m.power))
	m.mu.Unlock()
	return n, ok
}

// Level is the RMS of the last n samples streamed, or 0 before any.
func (m *Meter) Level(n int) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	n = min(n, m.seen)
	if n <= 0 {
		return 0
	}
	var sum float64
	for k := 1; k <= n; k++ {
		sum += m.power[(m.head-k+len(m.power))%len(m.power)]
	}
	return math.Sqrt(sum / float64(n))
}
