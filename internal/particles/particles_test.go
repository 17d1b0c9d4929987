package particles

import (
	"math"
	"math/rand"
	"testing"

	"github.com/iburimskiy/particle-field/internal/render"
)

var (
	primary = render.Color{R: 0, G: 188, B: 212}
	accent  = render.Color{R: 0, G: 229, B: 255}
)

func testConfig() Config {
	return Config{
		Count:             80,
		MaxDistance:       120,
		Speed:             0.5,
		Size:              2,
		ConnectionOpacity: 0.3,
		ParticleOpacity:   0.8,
		Primary:           primary,
		Accent:            accent,
	}
}

func TestParticle_UpdateStaysInBounds(t *testing.T) {
	cfg := testConfig()
	cfg.Speed = 40 // large enough to overshoot walls every few frames
	rng := rand.New(rand.NewSource(1))

	const w, h = 200.0, 100.0
	for i := 0; i < 50; i++ {
		p := newParticle(w, h, &cfg, rng)
		for frame := 0; frame < 200; frame++ {
			p.Update()
			if p.X < 0 || p.X > w || p.Y < 0 || p.Y > h {
				t.Fatalf("particle %d frame %d at (%v, %v), outside %vx%v", i, frame, p.X, p.Y, w, h)
			}
		}
	}
}

func TestParticle_RenderSizeBoundedByPulse(t *testing.T) {
	cfg := testConfig()
	rng := rand.New(rand.NewSource(2))

	for i := 0; i < 20; i++ {
		p := newParticle(800, 600, &cfg, rng)
		for frame := 0; frame < 500; frame++ {
			p.Update()
			if diff := math.Abs(p.RenderSize - p.Size); diff > pulseAmplitude+1e-12 {
				t.Fatalf("render size %v differs from base %v by %v", p.RenderSize, p.Size, diff)
			}
			if diff := math.Abs(p.RenderOpacity - p.Opacity); diff > opacityWobble+1e-12 {
				t.Fatalf("render opacity %v differs from base %v by %v", p.RenderOpacity, p.Opacity, diff)
			}
		}
	}
}

func TestParticle_BounceFlipsAfterIntegration(t *testing.T) {
	cfg := testConfig()
	p := &Particle{X: 799.8, Y: 10, VX: 0.5, VY: -0.25, width: 800, height: 600, cfg: &cfg}

	p.Update()
	if p.X != 800 {
		t.Errorf("X = %v, want clamped to 800", p.X)
	}
	if p.VX != -0.5 {
		t.Errorf("VX = %v, want -0.5 after wall hit", p.VX)
	}
	if p.VY != -0.25 {
		t.Errorf("VY = %v, want unchanged -0.25", p.VY)
	}

	// Landing exactly on the wall is not a crossing.
	q := &Particle{X: 599.5, Y: 599.5, VX: 0, VY: 0.5, width: 800, height: 600, cfg: &cfg}
	q.Update()
	if q.Y != 600 || q.VY != 0.5 {
		t.Errorf("Y=%v VY=%v, want 600 and 0.5", q.Y, q.VY)
	}
}

func TestParticle_AttractNeverExceedsSpeedCap(t *testing.T) {
	cfg := testConfig()
	limit := cfg.Speed * maxSpeedFactor
	ptr := &Pointer{X: 400, Y: 300, Radius: 150}

	for d := 0.0; d < ptr.Radius; d += 7.5 {
		p := &Particle{X: 400 - d, Y: 300, VX: limit, VY: -limit, cfg: &cfg}
		for i := 0; i < 1000; i++ {
			p.Attract(ptr, d)
			if math.Abs(p.VX) > limit || math.Abs(p.VY) > limit {
				t.Fatalf("distance %v: velocity (%v, %v) exceeds %v", d, p.VX, p.VY, limit)
			}
		}
	}
}

func TestParticle_AttractPullsTowardPointer(t *testing.T) {
	cfg := testConfig()
	ptr := &Pointer{X: 100, Y: 100, Radius: 150}
	p := &Particle{X: 50, Y: 150, cfg: &cfg}

	d := distance(p.X, p.Y, ptr.X, ptr.Y)
	p.Attract(ptr, d)

	if p.VX <= 0 || p.VY >= 0 {
		t.Errorf("velocity (%v, %v) does not point up-right toward the pointer", p.VX, p.VY)
	}
	want := (1 - d/ptr.Radius) * attractGain
	if got := math.Hypot(p.VX, p.VY); math.Abs(got-want) > 1e-12 {
		t.Errorf("impulse magnitude = %v, want %v", got, want)
	}
}

func TestParticle_DrawCore(t *testing.T) {
	cfg := testConfig()
	tests := []struct {
		opacity float64
		discs   int
	}{
		{0.4, 1},
		{0.5, 1},
		{0.6, 2},
	}

	for _, tt := range tests {
		p := &Particle{X: 5, Y: 5, RenderSize: 2, RenderOpacity: tt.opacity, Tint: 0.1, cfg: &cfg}
		var rec render.Recorder
		p.Draw(&rec)

		if len(rec.Discs) != tt.discs {
			t.Errorf("opacity %v: %d discs, want %d", tt.opacity, len(rec.Discs), tt.discs)
			continue
		}
		body := rec.Discs[0]
		if body.Paint.Color != primary.Offset(5) {
			t.Errorf("body color = %v, want %v", body.Paint.Color, primary.Offset(5))
		}
		if body.Paint.Glow.Blur != 4 {
			t.Errorf("glow blur = %v, want 4", body.Paint.Glow.Blur)
		}
		if tt.discs == 2 {
			core := rec.Discs[1]
			if core.Paint.Color != accent || math.Abs(core.Paint.Alpha-tt.opacity*coreAlpha) > 1e-12 {
				t.Errorf("core paint = %+v", core.Paint)
			}
			if core.Radius >= body.Radius {
				t.Errorf("core radius %v not smaller than body %v", core.Radius, body.Radius)
			}
		}
	}
}

func TestField_InitializeCountAndBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, k := range []int{0, 1, 80, 250} {
		cfg := testConfig()
		cfg.Count = k
		f := NewField(640, 480, cfg, rng)

		if got := len(f.Particles()); got != k {
			t.Errorf("count %d: got %d particles", k, got)
		}
		for _, p := range f.Particles() {
			if p.X < 0 || p.X >= 640 || p.Y < 0 || p.Y >= 480 {
				t.Errorf("particle starts at (%v, %v), outside 640x480", p.X, p.Y)
			}
			if p.Size < 1 || p.Size >= 1+cfg.Size {
				t.Errorf("size %v outside [1, %v)", p.Size, 1+cfg.Size)
			}
			if math.Abs(p.VX) > cfg.Speed/2 || math.Abs(p.VY) > cfg.Speed/2 {
				t.Errorf("initial velocity (%v, %v) above half speed", p.VX, p.VY)
			}
			if p.BaseX != p.X || p.BaseY != p.Y {
				t.Errorf("base position (%v, %v) != start (%v, %v)", p.BaseX, p.BaseY, p.X, p.Y)
			}
		}
	}
}

func TestField_TickDrawsEachConnectionOnce(t *testing.T) {
	cfg := testConfig()
	cfg.Speed = 0 // static particles so distances are known before the pass
	f := NewField(800, 600, cfg, rand.New(rand.NewSource(4)))
	ptr := NewPointer(150)

	type pair struct{ a, b render.Point }
	want := map[pair]bool{}
	ps := f.Particles()
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			if distance(ps[i].X, ps[i].Y, ps[j].X, ps[j].Y) < cfg.MaxDistance {
				want[pair{render.Point{X: ps[i].X, Y: ps[i].Y}, render.Point{X: ps[j].X, Y: ps[j].Y}}] = true
			}
		}
	}

	var rec render.Recorder
	stats := f.Tick(ptr, &rec)

	got := rec.StrokesWith(primary, 1)
	if len(got) != len(want) || stats.Connections != len(want) {
		t.Fatalf("drew %d connectors (stats %d), want %d", len(got), stats.Connections, len(want))
	}
	seen := map[pair]bool{}
	for _, s := range got {
		k := pair{s.Points[0], s.Points[1]}
		if !want[k] {
			t.Errorf("unexpected connector %v -> %v", k.a, k.b)
		}
		if seen[k] {
			t.Errorf("connector %v -> %v drawn twice", k.a, k.b)
		}
		seen[k] = true
	}
}

func TestField_Scenario800x600(t *testing.T) {
	cfg := testConfig()
	f := NewField(800, 600, cfg, rand.New(rand.NewSource(5)))

	var rec render.Recorder
	stats := f.Tick(NewPointer(150), &rec)

	if limit := 80 * 79 / 2; stats.Connections > limit {
		t.Errorf("connections = %d, want <= %d", stats.Connections, limit)
	}
	for _, s := range rec.StrokesWith(primary, 1) {
		if s.Paint.Alpha <= 0 || s.Paint.Alpha > cfg.ConnectionOpacity {
			t.Errorf("connector alpha %v outside (0, %v]", s.Paint.Alpha, cfg.ConnectionOpacity)
		}
	}
	if len(rec.StrokesWith(primary, 1)) != stats.Connections {
		t.Errorf("stats report %d connections, recorder saw %d", stats.Connections, len(rec.StrokesWith(primary, 1)))
	}
}

func TestField_PointerLeaveSkipsAttraction(t *testing.T) {
	cfg := testConfig()
	f := NewField(800, 600, cfg, rand.New(rand.NewSource(6)))
	ptr := NewPointer(150)
	ptr.MoveTo(400, 300)
	ptr.Leave()

	var rec render.Recorder
	for i := 0; i < 10; i++ {
		stats := f.Tick(ptr, &rec)
		if stats.PointerLinks != 0 {
			t.Fatalf("frame %d: %d pointer links with pointer off-surface", i, stats.PointerLinks)
		}
	}
	if n := len(rec.StrokesWith(accent, pointerWidth)); n != 0 {
		t.Errorf("drew %d pointer links after leave", n)
	}
}

func TestField_PointerLinkAndAttract(t *testing.T) {
	cfg := testConfig()
	cfg.Count = 1
	cfg.Speed = 0.5
	f := NewField(800, 600, cfg, rand.New(rand.NewSource(7)))
	p := f.Particles()[0]
	p.X, p.Y, p.VX, p.VY = 300, 300, 0, 0

	ptr := NewPointer(150)
	ptr.MoveTo(350, 300)

	var rec render.Recorder
	stats := f.Tick(ptr, &rec)

	if stats.PointerLinks != 1 {
		t.Fatalf("pointer links = %d, want 1", stats.PointerLinks)
	}
	links := rec.StrokesWith(accent, pointerWidth)
	if len(links) != 1 {
		t.Fatalf("recorded %d pointer links, want 1", len(links))
	}
	if want := (1 - 50.0/150) * pointerAlpha; math.Abs(links[0].Paint.Alpha-want) > 1e-9 {
		t.Errorf("link alpha = %v, want %v", links[0].Paint.Alpha, want)
	}
	if links[0].Paint.Glow.Blur != pointerGlowBlur {
		t.Errorf("link glow blur = %v, want %v", links[0].Paint.Glow.Blur, pointerGlowBlur)
	}
	if p.VX <= 0 {
		t.Errorf("VX = %v, want positive pull toward pointer", p.VX)
	}
}

func TestField_ResizeRecreates(t *testing.T) {
	cfg := testConfig()
	f := NewField(800, 600, cfg, rand.New(rand.NewSource(8)))
	before := f.Particles()[0]

	f.Resize(400, 300)

	if got := len(f.Particles()); got != cfg.Count {
		t.Fatalf("count after resize = %d, want %d", got, cfg.Count)
	}
	if f.Particles()[0] == before {
		t.Error("resize kept the old particle set")
	}
	for _, p := range f.Particles() {
		if p.X < 0 || p.X > 400 || p.Y < 0 || p.Y > 300 {
			t.Errorf("particle at (%v, %v) outside 400x300", p.X, p.Y)
		}
	}
	if w, h := f.Size(); w != 400 || h != 300 {
		t.Errorf("Size() = %vx%v, want 400x300", w, h)
	}
}

func TestPointer_LeaveAndActive(t *testing.T) {
	p := NewPointer(150)
	if p.Active() {
		t.Error("new pointer should start off-surface")
	}
	p.MoveTo(10, 20)
	if !p.Active() || p.X != 10 || p.Y != 20 {
		t.Errorf("after MoveTo: %+v", p)
	}
	p.Leave()
	if p.Active() || p.X != OffSurface || p.Y != OffSurface {
		t.Errorf("after Leave: %+v", p)
	}
}
