package sound

import (
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/iburimskiy/particle-field/internal/logging"
)

const meterRing = 4096

// Options configures a Player. Samples maps a cue to an audio file that
// replaces its synthesized tone; empty paths are ignored.
type Options struct {
	Enabled    bool
	SampleRate int
	Volume     float64
	Samples    map[Cue]string
}

// output is the audio device. The default is the beep speaker.
type output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
	Close()
}

type speakerOutput struct{}

func (speakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}
func (speakerOutput) Play(s ...beep.Streamer) { speaker.Play(s...) }
func (speakerOutput) Lock()                   { speaker.Lock() }
func (speakerOutput) Unlock()                 { speaker.Unlock() }
func (speakerOutput) Close()                  { speaker.Close() }

// Player mixes cues into a single speaker stream. A disabled Player accepts
// every call and does nothing.
type Player struct {
	opts    Options
	rate    beep.SampleRate
	out     output
	log     *logging.Logger
	mixer   *beep.Mixer
	meter   *Meter
	samples map[Cue]*beep.Buffer

	mu       sync.Mutex
	initDone bool
}

// NewPlayer creates a player. The audio device is opened on the first Play.
func NewPlayer(opts Options, log *logging.Logger) *Player {
	return newPlayer(opts, speakerOutput{}, log)
}

func newPlayer(opts Options, out output, log *logging.Logger) *Player {
	if log == nil {
		log = logging.Discard()
	}
	p := &Player{
		opts:    opts,
		rate:    beep.SampleRate(opts.SampleRate),
		out:     out,
		log:     log,
		mixer:   &beep.Mixer{},
		samples: map[Cue]*beep.Buffer{},
	}
	p.meter = NewMeter(p.mixer, meterRing)
	return p
}

// Enabled reports whether cues make any sound.
func (p *Player) Enabled() bool {
	return p.opts.Enabled
}

// Init opens the audio device and loads configured sample files. A sample
// that fails to load is logged and its cue falls back to the tone.
func (p *Player) Init() error {
	if !p.opts.Enabled {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initDone {
		return nil
	}

	if err := p.out.Init(p.rate, p.rate.N(time.Second/20)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	for cue, path := range p.opts.Samples {
		if path == "" {
			continue
		}
		buf, err := LoadSample(path, p.rate)
		if err != nil {
			p.log.Warn("%s cue: %v; using tone", cue, err)
			continue
		}
		p.samples[cue] = buf
		p.log.Debug("%s cue: loaded %s (%d samples)", cue, path, buf.Len())
	}

	p.out.Play(p.meter)
	p.initDone = true
	return nil
}

// Play queues cue on the mixer.
func (p *Player) Play(cue Cue) {
	if !p.opts.Enabled {
		return
	}
	if err := p.Init(); err != nil {
		p.log.Error("%v", err)
		p.opts.Enabled = false
		return
	}

	p.out.Lock()
	p.mixer.Add(withVolume(p.streamer(cue), p.opts.Volume))
	p.out.Unlock()
}

func (p *Player) streamer(cue Cue) beep.Streamer {
	if buf, ok := p.samples[cue]; ok {
		return buf.Streamer(0, buf.Len())
	}
	return Tone(cue.Frequency(), p.rate)
}

// Level is the recent output loudness, 0 when nothing has played.
func (p *Player) Level() float64 {
	if !p.opts.Enabled {
		return 0
	}
	return p.meter.Level(p.rate.N(toneDuration))
}

// Close stops playback and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initDone {
		return
	}
	p.out.Lock()
	p.mixer.Clear()
	p.out.Unlock()
	p.out.Close()
	p.initDone = false
}
