package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// glowLayers is how many translucent rings approximate a blurred shadow.
const glowLayers = 4

// EbitenSurface draws onto an ebiten image with the vector package.
type EbitenSurface struct {
	dst        *ebiten.Image
	background color.Color
}

// NewEbitenSurface wraps dst. Clear fills it with background.
func NewEbitenSurface(dst *ebiten.Image, background Color) *EbitenSurface {
	return &EbitenSurface{dst: dst, background: background.NRGBA(1)}
}

// Reset points the surface at a new destination image, as ebiten hands Draw a
// fresh screen after a resize.
func (s *EbitenSurface) Reset(dst *ebiten.Image) {
	s.dst = dst
}

func (s *EbitenSurface) Clear() {
	s.dst.Fill(s.background)
}

func (s *EbitenSurface) StrokePath(pts []Point, closed bool, p Paint) {
	if len(pts) < 2 || p.Alpha <= 0 {
		return
	}
	width := p.Width
	if width <= 0 {
		width = 1
	}

	if p.Glow.Blur > 0 {
		shadow := p.Glow.Color.NRGBA(p.Glow.Alpha * clamp01(p.Alpha) / glowLayers)
		for i := glowLayers; i >= 1; i-- {
			spread := p.Glow.Blur * float64(i) / glowLayers
			s.strokeSegments(pts, closed, width+spread, shadow)
		}
	}
	s.strokeSegments(pts, closed, width, p.Color.NRGBA(p.Alpha))
}

func (s *EbitenSurface) strokeSegments(pts []Point, closed bool, width float64, clr color.Color) {
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		vector.StrokeLine(s.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), clr, true)
	}
	if closed && len(pts) > 2 {
		a, b := pts[len(pts)-1], pts[0]
		vector.StrokeLine(s.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), clr, true)
	}
}

func (s *EbitenSurface) FillDisc(center Point, radius float64, p Paint) {
	if radius <= 0 || p.Alpha <= 0 {
		return
	}
	cx, cy := float32(center.X), float32(center.Y)

	if p.Glow.Blur > 0 {
		shadow := p.Glow.Color.NRGBA(p.Glow.Alpha * clamp01(p.Alpha) / glowLayers)
		for i := glowLayers; i >= 1; i-- {
			spread := p.Glow.Blur * float64(i) / glowLayers
			vector.DrawFilledCircle(s.dst, cx, cy, float32(radius+spread), shadow, true)
		}
	}
	vector.DrawFilledCircle(s.dst, cx, cy, float32(radius), p.Color.NRGBA(p.Alpha), true)
}
