package particles

import "github.com/iburimskiy/particle-field/internal/render"

// Config is the tuning bundle shared by a field and its particles.
type Config struct {
	Count             int
	MaxDistance       float64 // connector threshold in px
	Speed             float64 // base velocity scale in px/frame
	Size              float64 // radius spread in px
	ConnectionOpacity float64
	ParticleOpacity   float64
	Primary           render.Color
	Accent            render.Color
}

const (
	attractGain     = 0.02
	maxSpeedFactor  = 3
	pulseAmplitude  = 0.5
	opacityWobble   = 0.2
	tintSpread      = 0.3
	tintScale       = 50
	coreThreshold   = 0.5
	coreRadius      = 0.3
	coreAlpha       = 0.8
	glowAlpha       = 0.8
	pointerAlpha    = 0.6
	pointerWidth    = 2
	pointerGlowBlur = 10
	pointerGlow     = 0.5
)
