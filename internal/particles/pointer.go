package particles

import "math"

// OffSurface is where a pointer sits after it leaves the surface. It is far
// enough away that no particle on screen falls inside any sane radius.
const OffSurface = -1000.0

// Pointer is the current pointer position and its influence radius.
type Pointer struct {
	X, Y   float64
	Radius float64
}

// NewPointer returns a pointer with the given radius that starts off-surface.
func NewPointer(radius float64) *Pointer {
	p := &Pointer{Radius: radius}
	p.Leave()
	return p
}

// MoveTo places the pointer at (x, y) in surface pixels.
func (p *Pointer) MoveTo(x, y float64) {
	p.X, p.Y = x, y
}

// Leave parks the pointer off-surface.
func (p *Pointer) Leave() {
	p.X, p.Y = OffSurface, OffSurface
}

// Active reports whether the pointer is over the surface.
func (p *Pointer) Active() bool {
	return p.X != OffSurface || p.Y != OffSurface
}

func distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x1-x2, y1-y2)
}
