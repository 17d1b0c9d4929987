// Package game drives the animation: it owns the frame loop, pointer and
// resize intake, and the layers drawn each frame.
package game

import (
	"errors"
	"image"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/particle-field/internal/logging"
	"github.com/iburimskiy/particle-field/internal/particles"
	"github.com/iburimskiy/particle-field/internal/render"
)

var (
	ErrNoSurface = errors.New("game: render surface has no area")
	ErrNoLayers  = errors.New("game: no layers to draw")
	ErrNoPointer = errors.New("game: no pointer state")
)

// Frame is what every layer sees during one tick.
type Frame struct {
	Now           time.Time
	Pointer       *particles.Pointer
	Surface       render.Surface
	Width, Height float64
}

// Layer is one stage of a frame. Layers tick in the order they were given
// to NewDriver, so earlier layers end up underneath later ones.
type Layer interface {
	Tick(f Frame)
	Resize(width, height float64)
}

// Driver implements ebiten.Game for a fixed stack of layers.
type Driver struct {
	layers     []Layer
	pointer    *particles.Pointer
	width      int
	height     int
	background render.Color
	surface    *render.EbitenSurface
	clock      func() time.Time
	log        *logging.Logger
	disposed   atomic.Bool
	frames     atomic.Uint64

	// input edge detection
	lastCursor image.Point
	wasFocused bool
	touchIDs   []ebiten.TouchID
	touching   bool
}

// DriverOption customizes a Driver.
type DriverOption func(*Driver)

// WithClock replaces time.Now as the frame clock.
func WithClock(clock func() time.Time) DriverOption {
	return func(d *Driver) { d.clock = clock }
}

// WithLogger sets the driver logger.
func WithLogger(log *logging.Logger) DriverOption {
	return func(d *Driver) { d.log = log }
}

// WithBackground sets the color each frame is cleared to.
func WithBackground(c render.Color) DriverOption {
	return func(d *Driver) { d.background = c }
}

// NewDriver creates a driver for a width×height surface.
func NewDriver(width, height int, pointer *particles.Pointer, layers []Layer, opts ...DriverOption) (*Driver, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrNoSurface
	}
	if len(layers) == 0 {
		return nil, ErrNoLayers
	}
	if pointer == nil {
		return nil, ErrNoPointer
	}

	d := &Driver{
		layers:     layers,
		pointer:    pointer,
		width:      width,
		height:     height,
		clock:      time.Now,
		log:        logging.Discard(),
		lastCursor: image.Pt(-1, -1),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Update reads input. After Dispose it returns ebiten.Termination, which
// ends the loop.
func (d *Driver) Update() error {
	if d.disposed.Load() {
		return ebiten.Termination
	}
	d.pollPointer()
	return nil
}

func (d *Driver) pollPointer() {
	d.touchIDs = ebiten.AppendTouchIDs(d.touchIDs[:0])
	if len(d.touchIDs) > 0 {
		x, y := ebiten.TouchPosition(d.touchIDs[0])
		d.touching = true
		d.OnPointerMove(float64(x), float64(y))
		return
	}
	if d.touching {
		d.touching = false
		d.OnPointerLeave()
		return
	}

	x, y := ebiten.CursorPosition()
	d.trackCursor(image.Pt(x, y), ebiten.IsFocused())
}

// trackCursor moves or parks the pointer when the cursor, the focus or the
// surface bounds changed since the last poll.
func (d *Driver) trackCursor(cursor image.Point, focused bool) {
	if cursor == d.lastCursor && focused == d.wasFocused {
		return
	}
	d.lastCursor, d.wasFocused = cursor, focused

	if focused && cursor.In(image.Rect(0, 0, d.width, d.height)) {
		d.OnPointerMove(float64(cursor.X), float64(cursor.Y))
	} else {
		d.OnPointerLeave()
	}
}

// Draw renders one frame onto screen.
func (d *Driver) Draw(screen *ebiten.Image) {
	if d.surface == nil {
		d.surface = render.NewEbitenSurface(screen, d.background)
	} else {
		d.surface.Reset(screen)
	}
	d.Frame(d.surface)
}

// Frame clears s and ticks every layer once. It does nothing after Dispose.
func (d *Driver) Frame(s render.Surface) {
	if d.disposed.Load() {
		return
	}
	s.Clear()
	f := Frame{
		Now:     d.clock(),
		Pointer: d.pointer,
		Surface: s,
		Width:   float64(d.width),
		Height:  float64(d.height),
	}
	for _, l := range d.layers {
		l.Tick(f)
	}
	d.frames.Add(1)
}

// Layout makes the logical size follow the window.
func (d *Driver) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != d.width || outsideHeight != d.height {
		d.OnResize(outsideWidth, outsideHeight)
	}
	return d.width, d.height
}

// OnPointerMove places the pointer at (x, y).
func (d *Driver) OnPointerMove(x, y float64) {
	d.pointer.MoveTo(x, y)
}

// OnPointerLeave parks the pointer off-surface.
func (d *Driver) OnPointerLeave() {
	d.pointer.Leave()
}

// OnResize adopts the new surface size and resizes every layer. Sizes
// without area (a minimized window) are ignored.
func (d *Driver) OnResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	d.width, d.height = width, height
	// a still cursor may now sit outside; force the next poll to re-check it
	d.lastCursor = image.Pt(-1, -1)
	for _, l := range d.layers {
		l.Resize(float64(width), float64(height))
	}
	d.log.Debug("resized to %dx%d", width, height)
}

// Size is the current logical surface size.
func (d *Driver) Size() (width, height int) {
	return d.width, d.height
}

// Frames counts the frames drawn so far.
func (d *Driver) Frames() uint64 {
	return d.frames.Load()
}

// Dispose stops the frame loop. It is safe to call from any goroutine and
// more than once.
func (d *Driver) Dispose() {
	if d.disposed.CompareAndSwap(false, true) {
		d.log.Debug("disposed after %d frames", d.frames.Load())
	}
}

// Disposed reports whether Dispose has been called.
func (d *Driver) Disposed() bool {
	return d.disposed.Load()
}
