// Package particles implements the mouse-reactive particle field: drifting
// points that link to their neighbours and are pulled toward the pointer.
package particles

import (
	"math/rand"

	"github.com/iburimskiy/particle-field/internal/render"
)

// Stats counts what a single Tick drew.
type Stats struct {
	Connections  int
	PointerLinks int
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Connections += o.Connections
	s.PointerLinks += o.PointerLinks
}

// Field owns a fixed-size set of particles.
type Field struct {
	cfg       Config
	rng       *rand.Rand
	width     float64
	height    float64
	particles []*Particle
}

// NewField creates a field of cfg.Count particles spread over width×height.
func NewField(width, height float64, cfg Config, rng *rand.Rand) *Field {
	f := &Field{cfg: cfg, rng: rng}
	f.Initialize(width, height)
	return f
}

// Initialize discards all particles and creates a fresh set for the given
// bounds. Positions are not carried over.
func (f *Field) Initialize(width, height float64) {
	f.width, f.height = width, height
	f.particles = make([]*Particle, 0, f.cfg.Count)
	for i := 0; i < f.cfg.Count; i++ {
		f.particles = append(f.particles, newParticle(width, height, &f.cfg, f.rng))
	}
}

// Resize is Initialize under the name the driver uses for every layer.
func (f *Field) Resize(width, height float64) {
	f.Initialize(width, height)
}

// Particles returns the current particle set.
func (f *Field) Particles() []*Particle {
	return f.particles
}

// Size returns the bounds the particles live in.
func (f *Field) Size() (width, height float64) {
	return f.width, f.height
}

// Config returns the field configuration.
func (f *Field) Config() Config {
	return f.cfg
}

// Tick advances and draws every particle, then draws the connectors.
//
// Particle i only looks at j > i, so each pair is linked at most once per
// frame. Later particles have not moved yet when an earlier one measures
// against them.
func (f *Field) Tick(ptr *Pointer, s render.Surface) Stats {
	var stats Stats

	for i, p := range f.particles {
		p.Update()
		p.Draw(s)

		for _, q := range f.particles[i+1:] {
			d := distance(p.X, p.Y, q.X, q.Y)
			if d < f.cfg.MaxDistance {
				f.drawConnection(s, p, q, d)
				stats.Connections++
			}
		}

		d := distance(p.X, p.Y, ptr.X, ptr.Y)
		if d < ptr.Radius {
			f.drawPointerLink(s, p, ptr, d)
			p.Attract(ptr, d)
			stats.PointerLinks++
		}
	}

	return stats
}

func (f *Field) drawConnection(s render.Surface, a, b *Particle, d float64) {
	s.StrokePath([]render.Point{{X: a.X, Y: a.Y}, {X: b.X, Y: b.Y}}, false, render.Paint{
		Color: f.cfg.Primary,
		Alpha: (1 - d/f.cfg.MaxDistance) * f.cfg.ConnectionOpacity,
		Width: 1,
	})
}

func (f *Field) drawPointerLink(s render.Surface, p *Particle, ptr *Pointer, d float64) {
	s.StrokePath([]render.Point{{X: p.X, Y: p.Y}, {X: ptr.X, Y: ptr.Y}}, false, render.Paint{
		Color: f.cfg.Accent,
		Alpha: (1 - d/ptr.Radius) * pointerAlpha,
		Width: pointerWidth,
		Glow:  render.Glow{Color: f.cfg.Accent, Alpha: pointerGlow, Blur: pointerGlowBlur},
	})
}
