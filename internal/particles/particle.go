package particles

import (
	"math"
	"math/rand"

	"github.com/iburimskiy/particle-field/internal/render"
)

// Particle is a single drifting point. It bounces inside the bounds it was
// created with; a field recreates all particles when those bounds change.
type Particle struct {
	X, Y         float64
	BaseX, BaseY float64
	VX, VY       float64
	Size         float64
	Opacity      float64
	Pulse        float64
	PulseSpeed   float64
	Tint         float64

	// Derived every Update.
	RenderOpacity float64
	RenderSize    float64

	width, height float64
	cfg           *Config
}

func newParticle(width, height float64, cfg *Config, rng *rand.Rand) *Particle {
	p := &Particle{
		X:          rng.Float64() * width,
		Y:          rng.Float64() * height,
		VX:         (rng.Float64() - 0.5) * cfg.Speed,
		VY:         (rng.Float64() - 0.5) * cfg.Speed,
		Size:       rng.Float64()*cfg.Size + 1,
		Opacity:    rng.Float64()*cfg.ParticleOpacity + 0.2,
		PulseSpeed: rng.Float64()*0.02 + 0.01,
		Tint:       rng.Float64() * tintSpread,
		width:      width,
		height:     height,
		cfg:        cfg,
	}
	p.BaseX, p.BaseY = p.X, p.Y
	p.RenderOpacity = p.Opacity
	p.RenderSize = p.Size
	return p
}

// Update advances the particle by one frame.
//
// The wall test runs on the integrated position, before clamping, so a fast
// particle may overshoot, get clamped and only then turn around.
func (p *Particle) Update() {
	p.X += p.VX
	p.Y += p.VY

	if p.X < 0 || p.X > p.width {
		p.VX = -p.VX
	}
	if p.Y < 0 || p.Y > p.height {
		p.VY = -p.VY
	}

	p.X = math.Max(0, math.Min(p.width, p.X))
	p.Y = math.Max(0, math.Min(p.height, p.Y))

	p.Pulse += p.PulseSpeed
	wave := math.Sin(p.Pulse)
	p.RenderOpacity = p.Opacity + wave*opacityWobble
	p.RenderSize = p.Size + wave*pulseAmplitude
}

// Attract pulls the particle toward ptr. dist must be the current distance to
// ptr and is expected to be below ptr.Radius. Velocity is not damped
// afterwards, so the pull keeps carrying once the pointer moves away.
func (p *Particle) Attract(ptr *Pointer, dist float64) {
	force := (1 - dist/ptr.Radius) * attractGain
	angle := math.Atan2(ptr.Y-p.Y, ptr.X-p.X)

	p.VX += math.Cos(angle) * force
	p.VY += math.Sin(angle) * force

	limit := p.cfg.Speed * maxSpeedFactor
	p.VX = math.Max(-limit, math.Min(limit, p.VX))
	p.VY = math.Max(-limit, math.Min(limit, p.VY))
}

// Draw renders the particle body, its glow and, when bright enough, a core.
func (p *Particle) Draw(s render.Surface) {
	center := render.Point{X: p.X, Y: p.Y}
	body := p.cfg.Primary.Offset(p.Tint * tintScale)

	s.FillDisc(center, p.RenderSize, render.Paint{
		Color: body,
		Alpha: p.RenderOpacity,
		Glow:  render.Glow{Color: body, Alpha: glowAlpha, Blur: p.RenderSize * 2},
	})

	if p.RenderOpacity > coreThreshold {
		s.FillDisc(center, p.RenderSize*coreRadius, render.Paint{
			Color: p.cfg.Accent,
			Alpha: p.RenderOpacity * coreAlpha,
		})
	}
}
