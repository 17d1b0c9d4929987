package game

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/constellation"
	"github.com/iburimskiy/particle-field/internal/logging"
	"github.com/iburimskiy/particle-field/internal/particles"
	"github.com/iburimskiy/particle-field/internal/render"
	"github.com/iburimskiy/particle-field/internal/sound"
)

// Controller owns everything on screen: the driver, its layers, the pointer
// and the sound cues. It is the only handle needed for teardown.
type Controller struct {
	cfg     *config.Config
	log     *logging.Logger
	pointer *particles.Pointer
	overlay ConstellationLayer
	field   *FieldLayer
	driver  *Driver
	sound   *sound.Player
	dialogs Dialogs
	started time.Time

	hud         bool
	pendingShot string
	lastErr     error
}

type controllerOptions struct {
	rng     *rand.Rand
	clock   func() time.Time
	dialogs Dialogs
	player  *sound.Player
}

// Option customizes a Controller.
type Option func(*controllerOptions)

// WithRand seeds particle and star placement.
func WithRand(rng *rand.Rand) Option {
	return func(o *controllerOptions) { o.rng = rng }
}

// WithFrameClock replaces time.Now as the frame clock.
func WithFrameClock(clock func() time.Time) Option {
	return func(o *controllerOptions) { o.clock = clock }
}

// WithDialogs replaces the native file dialogs.
func WithDialogs(d Dialogs) Option {
	return func(o *controllerOptions) { o.dialogs = d }
}

// WithPlayer replaces the sound player built from the configuration.
func WithPlayer(p *sound.Player) Option {
	return func(o *controllerOptions) { o.player = p }
}

// New builds the scene described by cfg. The window is not opened until Run.
func New(cfg *config.Config, log *logging.Logger, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if log == nil {
		log = logging.Discard()
	}

	o := controllerOptions{
		clock:   time.Now,
		dialogs: zenityDialogs{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.player == nil {
		o.player = sound.NewPlayer(cfg.Sound.Options(), log.Named("sound"))
	}

	w, h := float64(cfg.Window.Width), float64(cfg.Window.Height)
	pc := cfg.Particles

	c := &Controller{
		cfg:     cfg,
		log:     log,
		pointer: particles.NewPointer(pc.PointerRadius),
		overlay: ConstellationLayer{constellation.NewOverlay(w, h, pc.Primary, pc.Accent, o.rng)},
		field:   &FieldLayer{Field: particles.NewField(w, h, pc.Field(), o.rng)},
		sound:   o.player,
		dialogs: o.dialogs,
		started: o.clock(),
		hud:     cfg.Window.HUD,
	}

	driver, err := NewDriver(cfg.Window.Width, cfg.Window.Height, c.pointer,
		[]Layer{c.overlay, c.field},
		WithClock(o.clock),
		WithLogger(log.Named("driver")),
		WithBackground(cfg.Window.Background),
	)
	if err != nil {
		return nil, err
	}
	c.driver = driver
	return c, nil
}

// Run opens the window and blocks until the user quits, ctx is canceled or
// Dispose is called.
func (c *Controller) Run(ctx context.Context) error {
	ebiten.SetWindowSize(c.cfg.Window.Width, c.cfg.Window.Height)
	ebiten.SetWindowTitle(c.cfg.Window.Title)
	if c.cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	stop := context.AfterFunc(ctx, c.Dispose)
	defer stop()
	defer c.sound.Close()

	c.log.Info("starting %dx%d with %d particles", c.cfg.Window.Width, c.cfg.Window.Height, c.cfg.Particles.Count)
	if err := ebiten.RunGame(c); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run: %w", err)
	}
	c.log.Info("stopped after %d frames", c.driver.Frames())
	return nil
}

// RunHeadless draws frames onto a recorder without opening a window, moving
// the pointer along a slow orbit, and returns the summed stats.
func (c *Controller) RunHeadless(frames int) particles.Stats {
	var (
		rec   render.Recorder
		total particles.Stats
	)
	w, h := c.driver.Size()
	cx, cy := float64(w)/2, float64(h)/2
	r := math.Min(cx, cy) / 2

	for i := 0; i < frames && !c.driver.Disposed(); i++ {
		t := float64(i) / 60
		c.driver.OnPointerMove(cx+r*math.Cos(t), cy+r*math.Sin(2*t))
		c.driver.Frame(&rec)
		total.Add(c.field.Last)
	}
	return total
}

// Dispose stops the frame loop. Safe from any goroutine.
func (c *Controller) Dispose() {
	c.driver.Dispose()
}

// Driver exposes the animation driver, mainly for input.
func (c *Controller) Driver() *Driver {
	return c.driver
}

// Field exposes the particle field.
func (c *Controller) Field() *particles.Field {
	return c.field.Field
}

// Overlay exposes the constellation overlay.
func (c *Controller) Overlay() *constellation.Overlay {
	return c.overlay.Overlay
}

func (c *Controller) Update() error {
	wasActive := c.pointer.Active()
	if err := c.driver.Update(); err != nil {
		return err
	}
	if !wasActive && c.pointer.Active() {
		c.sound.Play(sound.Hover)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		c.sound.Play(sound.Click)
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		c.Dispose()
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		c.hud = !c.hud
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		c.requestScreenshot()
	}
	return nil
}

func (c *Controller) Draw(screen *ebiten.Image) {
	c.driver.Draw(screen)

	if c.pendingShot != "" {
		c.saveScreenshot(screen)
	}
	if c.hud {
		ebitenutil.DebugPrintAt(screen, c.status(), 12, 12)
	}
}

func (c *Controller) Layout(outsideWidth, outsideHeight int) (int, int) {
	return c.driver.Layout(outsideWidth, outsideHeight)
}

func (c *Controller) requestScreenshot() {
	suggested := fmt.Sprintf("particles-%s.png", time.Now().Format("20060102-150405"))
	path, err := c.dialogs.SaveScreenshot(suggested)
	if err != nil {
		c.fail(fmt.Errorf("screenshot dialog: %w", err))
		return
	}
	c.pendingShot = path
}

func (c *Controller) saveScreenshot(screen *ebiten.Image) {
	path := c.pendingShot
	c.pendingShot = ""
	if err := savePNG(path, screen); err != nil {
		c.fail(fmt.Errorf("screenshot: %w", err))
		return
	}
	c.log.Info("screenshot saved to %s", path)
	c.sound.Play(sound.Success)
}

func (c *Controller) fail(err error) {
	c.lastErr = err
	c.log.Warn("%v", err)
}

func (c *Controller) status() string {
	w, h := c.driver.Size()
	var b strings.Builder
	fmt.Fprintf(&b, "FPS %.1f  %dx%d  up %s\n", ebiten.ActualFPS(), w, h, formatDuration(time.Since(c.started)))
	fmt.Fprintf(&b, "particles %d  links %d  pointer %d",
		len(c.field.Particles()), c.field.Last.Connections, c.field.Last.PointerLinks)
	if c.sound.Enabled() {
		fmt.Fprintf(&b, "  audio %.3f", c.sound.Level())
	}
	if c.lastErr != nil {
		b.WriteString("\nError: " + c.lastErr.Error())
	}
	return b.String()
}
