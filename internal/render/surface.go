// Package render defines the 2D drawing surface the animation layers draw on,
// an ebiten-backed implementation and a recording implementation.
package render

// Point is a position in surface pixels.
type Point struct {
	X, Y float64
}

// Glow is a soft blurred shadow drawn beneath a shape. A zero Blur disables it.
type Glow struct {
	Color Color
	Alpha float64
	Blur  float64
}

// Paint describes how a stroke or fill is rendered.
type Paint struct {
	Color Color
	Alpha float64
	Width float64 // stroke width; ignored for fills
	Glow  Glow
}

// Surface is a raster drawing context sized to the window.
//
// Alpha values outside [0, 1] are accepted; implementations clamp them, so a
// negative alpha draws nothing.
type Surface interface {
	Clear()
	StrokePath(pts []Point, closed bool, p Paint)
	FillDisc(center Point, radius float64, p Paint)
}
