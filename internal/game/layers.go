package game

import (
	"github.com/iburimskiy/particle-field/internal/constellation"
	"github.com/iburimskiy/particle-field/internal/particles"
)

// ConstellationLayer twinkles and draws the star overlay.
type ConstellationLayer struct {
	*constellation.Overlay
}

func (l ConstellationLayer) Tick(f Frame) {
	l.Overlay.Tick(f.Now.UnixMilli(), f.Width, f.Height)
	l.Overlay.Draw(f.Surface)
}

// FieldLayer ticks the particle field and keeps the stats of the last frame.
type FieldLayer struct {
	*particles.Field
	Last particles.Stats
}

func (l *FieldLayer) Tick(f Frame) {
	l.Last = l.Field.Tick(f.Pointer, f.Surface)
}
