// Package constellation draws a few fixed star patterns that twinkle behind
// the particle field.
package constellation

import (
	"math"
	"math/rand"

	"github.com/iburimskiy/particle-field/internal/render"
)

const (
	minOpacity   = 0.1
	maxOpacity   = 0.8
	twinkleStep  = 0.01
	starRadius   = 2
	starGlowBlur = 8
	starGlow     = 0.8
	lineAlpha    = 0.2
)

// Patterns are the fixed shapes in normalized (0..1) surface coordinates.
var Patterns = [][]render.Point{
	// triangle
	{{X: 0.2, Y: 0.3}, {X: 0.4, Y: 0.2}, {X: 0.3, Y: 0.5}},
	// diamond
	{{X: 0.7, Y: 0.3}, {X: 0.8, Y: 0.4}, {X: 0.7, Y: 0.5}, {X: 0.6, Y: 0.4}},
	// cross
	{{X: 0.5, Y: 0.7}, {X: 0.4, Y: 0.8}, {X: 0.6, Y: 0.8}, {X: 0.5, Y: 0.9}},
}

// Star is one point of a pattern.
type Star struct {
	Norm    render.Point // fixed, normalized
	Pos     render.Point // resolved pixels
	Opacity float64
	Twinkle float64 // phase rate per millisecond
}

// Overlay holds one star slice per pattern.
type Overlay struct {
	line, star    render.Color
	width, height float64
	patterns      [][]Star
	path          []render.Point
}

// NewOverlay builds the overlay for a width×height surface. Lines use line,
// stars use star.
func NewOverlay(width, height float64, line, star render.Color, rng *rand.Rand) *Overlay {
	o := &Overlay{line: line, star: star}
	for _, pattern := range Patterns {
		stars := make([]Star, len(pattern))
		for i, pt := range pattern {
			stars[i] = Star{
				Norm:    pt,
				Opacity: rng.Float64()*0.5 + 0.3,
				Twinkle: rng.Float64()*0.02 + 0.01,
			}
		}
		o.patterns = append(o.patterns, stars)
	}
	o.Resize(width, height)
	return o
}

// Resize records the new surface size and repositions every star at once.
func (o *Overlay) Resize(width, height float64) {
	o.width, o.height = width, height
	o.place()
}

func (o *Overlay) place() {
	for _, stars := range o.patterns {
		for i := range stars {
			stars[i].Pos = render.Point{X: stars[i].Norm.X * o.width, Y: stars[i].Norm.Y * o.height}
		}
	}
}

// Tick places the stars on a width×height surface and nudges each star's
// opacity.
func (o *Overlay) Tick(nowMillis int64, width, height float64) {
	if width != o.width || height != o.height {
		o.Resize(width, height)
	}
	now := float64(nowMillis)
	for _, stars := range o.patterns {
		for i := range stars {
			s := &stars[i]
			s.Opacity += math.Sin(now*s.Twinkle) * twinkleStep
			s.Opacity = math.Max(minOpacity, math.Min(maxOpacity, s.Opacity))
		}
	}
}

// Draw strokes each pattern outline, then its stars on top.
func (o *Overlay) Draw(s render.Surface) {
	for _, stars := range o.patterns {
		o.path = o.path[:0]
		for _, st := range stars {
			o.path = append(o.path, st.Pos)
		}
		s.StrokePath(o.path, len(stars) > 2, render.Paint{Color: o.line, Alpha: lineAlpha, Width: 1})

		for _, st := range stars {
			s.FillDisc(st.Pos, starRadius, render.Paint{
				Color: o.star,
				Alpha: st.Opacity,
				Glow:  render.Glow{Color: o.star, Alpha: starGlow, Blur: starGlowBlur},
			})
		}
	}
}

// Stars returns the live stars, one slice per pattern.
func (o *Overlay) Stars() [][]Star {
	return o.patterns
}
