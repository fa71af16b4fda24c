package scene

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/litescript/ls-orrery/internal/catalog"
)

const frame = time.Second / 60

func testOptions(seed int64) Options {
	return Options{
		StarCount:   DefaultStarCount,
		NebulaCount: DefaultNebulaCount,
		CometCount:  DefaultCometCount,
		Rand:        rand.New(rand.NewSource(seed)),
		Tracker:     NewTracker(),
	}
}

func mustBuild(t *testing.T, sys catalog.System, opts Options) *Scene {
	t.Helper()
	s, err := Build(catalog.Load(sys), opts)
	if err != nil {
		t.Fatalf("Build(%v): %v", sys, err)
	}
	return s
}

func TestBuildCounts(t *testing.T) {
	for _, sys := range catalog.Systems() {
		t.Run(sys.String(), func(t *testing.T) {
			s := mustBuild(t, sys, testOptions(1))
			cat := catalog.Load(sys)

			if got := len(s.Stars.Points); got != DefaultStarCount {
				t.Errorf("stars = %d, want %d", got, DefaultStarCount)
			}
			for i, n := range s.Nebula {
				if got := len(n.Points); got != DefaultNebulaCount {
					t.Errorf("nebula[%d] = %d points, want %d", i, got, DefaultNebulaCount)
				}
				if n.Color != cat.Info.NebulaColor[i] {
					t.Errorf("nebula[%d] color = %s, want %s", i, n.Color, cat.Info.NebulaColor[i])
				}
			}
			if got, want := len(s.Meshes), len(cat.Bodies); got != want {
				t.Errorf("meshes = %d, want %d", got, want)
			}
			if got, want := len(s.Orbits), len(cat.Orbiting()); got != want {
				t.Errorf("orbit guides = %d, want %d", got, want)
			}
			if got := len(s.Comets); got != DefaultCometCount {
				t.Errorf("comets = %d, want %d", got, DefaultCometCount)
			}
			if s.Glow.Radius != cat.Info.GlowRadius || s.Glow.Color != cat.Info.GlowColor {
				t.Errorf("glow = %+v, want radius %v color %s", s.Glow, cat.Info.GlowRadius, cat.Info.GlowColor)
			}
		})
	}
}

func TestBuildRejectsInvalidCatalog(t *testing.T) {
	cat := catalog.Load(catalog.Solar)
	cat.Bodies[2].Radius = 0
	if _, err := Build(cat, testOptions(1)); err == nil {
		t.Error("expected error building invalid catalog")
	}
}

func TestStarsInsideCube(t *testing.T) {
	s := mustBuild(t, catalog.Solar, testOptions(2))
	half := starCubeSide / 2
	for i, p := range s.Stars.Points {
		for axis := 0; axis < 3; axis++ {
			if math.Abs(p[axis]) > half {
				t.Fatalf("star %d axis %d = %v outside ±%v", i, axis, p[axis], half)
			}
		}
	}
}

func TestNebulaShellRadii(t *testing.T) {
	s := mustBuild(t, catalog.Proxima, testOptions(3))
	for i, n := range s.Nebula {
		center := nebulaBaseRadius + float64(i)*nebulaShellStep
		for _, p := range n.Points {
			r := p.Len()
			if r < center-nebulaJitter/2-1e-9 || r > center+nebulaJitter/2+1e-9 {
				t.Fatalf("nebula[%d] point radius %v outside [%v, %v]", i, r, center-nebulaJitter/2, center+nebulaJitter/2)
			}
		}
	}
}

func TestOrbitGuidesMatchDistances(t *testing.T) {
	s := mustBuild(t, catalog.Solar, testOptions(4))
	cat := catalog.Load(catalog.Solar)
	for i, b := range cat.Orbiting() {
		ring := s.Orbits[i]
		mid := (ring.Inner + ring.Outer) / 2
		if math.Abs(mid-b.Distance) > 1e-9 {
			t.Errorf("orbit %s mid radius = %v, want %v", b.Name, mid, b.Distance)
		}
	}
}

func TestMeshBackReferences(t *testing.T) {
	s := mustBuild(t, catalog.Mov, testOptions(5))
	for _, m := range s.Meshes {
		if m.Body == nil {
			t.Fatal("mesh without catalog back reference")
		}
		if m.Radius != m.Body.Radius {
			t.Errorf("%s radius = %v, want %v", m.Body.Name, m.Radius, m.Body.Radius)
		}
	}

	tess := s.MeshByName("Tesseract")
	if tess == nil || tess.Shape != catalog.ShapeCube {
		t.Errorf("Tesseract mesh = %+v, want cube", tess)
	}

	for _, m := range s.Pickables() {
		if m.Body.Name == "Gargantua" {
			t.Error("Gargantua should be excluded from pickables")
		}
	}
	if got, want := len(s.Pickables()), len(s.Meshes)-1; got != want {
		t.Errorf("pickables = %d, want %d", got, want)
	}
}

func TestDecorations(t *testing.T) {
	solar := mustBuild(t, catalog.Solar, testOptions(6))
	sat := solar.MeshByName("Saturn")
	if len(sat.Overlays) != 1 || sat.Overlays[0].Kind != catalog.DecorRings {
		t.Errorf("Saturn overlays = %+v, want one ring overlay", sat.Overlays)
	}
	miller := solar.MeshByName("Miller's Planet")
	if len(miller.Overlays) != 1 || miller.Overlays[0].Kind != catalog.DecorWaterShell {
		t.Errorf("Miller's Planet overlays = %+v, want water shell", miller.Overlays)
	}
	if solar.ActiveTimers() != 1 {
		t.Errorf("active timers = %d, want 1 ripple spawner", solar.ActiveTimers())
	}

	mov := mustBuild(t, catalog.Mov, testOptions(6))
	g := mov.MeshByName("Gargantua")
	if len(g.Overlays) != 1 || len(g.Overlays[0].Points) != haloParticles {
		t.Errorf("Gargantua halo = %+v, want %d particles", g.Overlays, haloParticles)
	}
}

func TestCentralBodyStaysAtOrigin(t *testing.T) {
	s := mustBuild(t, catalog.Solar, testOptions(7))
	sun := s.MeshByName("Sun")
	for i := 0; i < 500; i++ {
		if err := s.Step(frame); err != nil {
			t.Fatal(err)
		}
		if sun.Position.Len() != 0 {
			t.Fatalf("frame %d: central body at %v", i, sun.Position)
		}
	}
	if sun.Spin <= 0 {
		t.Errorf("central body should still spin, got %v", sun.Spin)
	}
}

func TestOrbitRadiusHolds(t *testing.T) {
	for _, sys := range catalog.Systems() {
		s := mustBuild(t, sys, testOptions(8))
		for i := 0; i < 300; i++ {
			// Irregular frame times exercise the wall-clock time base.
			dt := frame + time.Duration(i%7)*time.Millisecond
			if err := s.Step(dt); err != nil {
				t.Fatal(err)
			}
			for _, m := range s.Meshes {
				if m.Body.IsCentral() {
					continue
				}
				if m.Position.Y() != 0 {
					t.Fatalf("%s left the orbit plane: y=%v", m.Body.Name, m.Position.Y())
				}
				r := math.Hypot(m.Position.X(), m.Position.Z())
				if math.Abs(r-m.Body.Distance) > 1e-9 {
					t.Fatalf("%s orbit radius = %v, want %v", m.Body.Name, r, m.Body.Distance)
				}
			}
		}
	}
}

func TestOrbitAngleTimeBase(t *testing.T) {
	s := mustBuild(t, catalog.Solar, testOptions(9))
	earth := s.MeshByName("Earth")
	start := earth.OrbitAngle
	spin := earth.Spin

	// One second is 60 reference frames regardless of how it is sliced.
	for i := 0; i < 4; i++ {
		_ = s.Step(250 * time.Millisecond)
	}

	wantAngle := start + earth.Body.OrbitSpeed*ReferenceFPS
	if math.Abs(earth.OrbitAngle-wantAngle) > 1e-9 {
		t.Errorf("orbit angle = %v, want %v", earth.OrbitAngle, wantAngle)
	}
	wantSpin := spin + earth.Body.RotationSpeed*ReferenceFPS
	if math.Abs(earth.Spin-wantSpin) > 1e-9 {
		t.Errorf("spin = %v, want %v", earth.Spin, wantSpin)
	}
}

func TestStepIgnoresNonPositiveDelta(t *testing.T) {
	s := mustBuild(t, catalog.Solar, testOptions(10))
	earth := s.MeshByName("Earth")
	before := earth.OrbitAngle
	_ = s.Step(0)
	_ = s.Step(-time.Second)
	if earth.OrbitAngle != before {
		t.Errorf("orbit angle changed on non-positive dt: %v -> %v", before, earth.OrbitAngle)
	}
}

func TestCometsRecycle(t *testing.T) {
	s := mustBuild(t, catalog.Solar, testOptions(11))
	for i := 0; i < 20000; i++ {
		_ = s.Step(frame)
		for j, c := range s.Comets {
			if c.Position.Len() > cometMaxRadius {
				t.Fatalf("frame %d: comet %d at radius %v beyond %v", i, j, c.Position.Len(), cometMaxRadius)
			}
			if math.Abs(c.Direction.Len()-1) > 1e-9 {
				t.Fatalf("comet %d direction not unit: %v", j, c.Direction.Len())
			}
		}
	}
	respawns := 0
	for _, c := range s.Comets {
		respawns += c.Respawns
	}
	if respawns == 0 {
		t.Error("expected comets to respawn after leaving the shell")
	}
}

func TestRipplesSpawnAndExpire(t *testing.T) {
	s := mustBuild(t, catalog.Solar, testOptions(12))
	miller := s.MeshByName("Miller's Planet")

	_ = s.Step(rippleInterval)
	if len(miller.Ripples) != 1 {
		t.Fatalf("ripples after one interval = %d, want 1", len(miller.Ripples))
	}
	r := miller.Ripples[0]

	// Opacity 0.5 fades by 0.005 per reference frame: gone after 100 frames.
	for i := 0; i < 101; i++ {
		_ = s.Step(frame)
	}
	if !r.expired {
		t.Error("ripple should have expired")
	}
	for _, live := range miller.Ripples {
		if live == r {
			t.Error("expired ripple still attached to mesh")
		}
	}
	if r.Scale <= 1 {
		t.Errorf("ripple scale = %v, want growth above 1", r.Scale)
	}
}

func TestDisposeReleasesEverything(t *testing.T) {
	for _, sys := range catalog.Systems() {
		t.Run(sys.String(), func(t *testing.T) {
			opts := testOptions(13)
			s := mustBuild(t, sys, opts)

			// Spawn a few ripples so transient handles exist too.
			for i := 0; i < 4; i++ {
				_ = s.Step(time.Second)
			}
			if opts.Tracker.Live() == 0 {
				t.Fatal("expected live handles before dispose")
			}

			released := s.Dispose()
			if released == 0 {
				t.Error("Dispose released nothing")
			}
			if live := opts.Tracker.Live(); live != 0 {
				t.Errorf("live handles after dispose = %d: %v", live, opts.Tracker.LiveLabels())
			}
			if s.ActiveTimers() != 0 {
				t.Errorf("active timers after dispose = %d", s.ActiveTimers())
			}
			if again := s.Dispose(); again != 0 {
				t.Errorf("second Dispose released %d", again)
			}
			if err := s.Step(frame); !errors.Is(err, ErrDisposed) {
				t.Errorf("Step after dispose = %v, want ErrDisposed", err)
			}
		})
	}
}

func TestTrackerSharedAcrossScenes(t *testing.T) {
	tracker := NewTracker()
	opts := testOptions(14)
	opts.Tracker = tracker

	a := mustBuild(t, catalog.Solar, opts)
	a.Dispose()
	b := mustBuild(t, catalog.Proxima, opts)

	stats := tracker.Stats()
	if stats.Live == 0 || stats.Released == 0 {
		t.Errorf("stats = %+v, want live handles from b and released from a", stats)
	}
	b.Dispose()
	if tracker.Live() != 0 {
		t.Errorf("leaked %d handles across rebuilds", tracker.Live())
	}
}

func TestBuildDeterministicWithSeed(t *testing.T) {
	a := mustBuild(t, catalog.Solar, testOptions(42))
	b := mustBuild(t, catalog.Solar, testOptions(42))
	if a.Stars.Points[100] != b.Stars.Points[100] {
		t.Error("same seed produced different starfields")
	}
	if a.MeshByName("Mars").OrbitAngle != b.MeshByName("Mars").OrbitAngle {
		t.Error("same seed produced different orbit angles")
	}
}
