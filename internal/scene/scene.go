// Package scene builds and animates the 3D scene graph for a catalog.
package scene

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/litescript/ls-orrery/internal/catalog"
)

// ErrDisposed is returned when operating on a scene after teardown.
var ErrDisposed = errors.New("scene disposed")

// Scene construction constants.
const (
	DefaultStarCount   = 3000
	DefaultNebulaCount = 500
	DefaultCometCount  = 5

	starCubeSide     = 2000.0
	nebulaBaseRadius = 400.0
	nebulaShellStep  = 50.0
	nebulaJitter     = 100.0 // full width, centered

	orbitGuideWidth = 0.1

	cometSpawnMin     = 200.0
	cometSpawnSpan    = 300.0
	cometRespawnSpan  = 100.0
	cometMaxRadius    = 600.0
	cometSpeedMin     = 0.2
	cometSpeedSpan    = 0.4
	cometTailMin      = 20.0
	cometTailSpan     = 30.0
	cometTailSegments = 20

	haloParticles = 400

	rippleInterval = 3 * time.Second
)

// PointCloud is a set of colored points, used for stars, nebula shells and
// particle halos.
type PointCloud struct {
	Points  []mgl64.Vec3
	Color   string
	Opacity float64
	res     resources
}

// Ring is a flat annulus in the XZ plane.
type Ring struct {
	Inner, Outer float64
	Color        string
	Opacity      float64
	res          resources
}

// Glow is the translucent sphere around the central body.
type Glow struct {
	Radius  float64
	Color   string
	Opacity float64
	res     resources
}

// Ripple is an expanding wave ring around a water-shell body.
type Ripple struct {
	Ring
	Tilt    float64 // inclination of the ring plane about the X axis
	Scale   float64
	expired bool
}

// Overlay is a decoration attached to a body mesh.
type Overlay struct {
	Kind catalog.Decoration
	// Ring or shell geometry, relative to the mesh center.
	Inner, Outer float64
	Color        string
	Opacity      float64
	// Halo particles, relative to the mesh center.
	Points []mgl64.Vec3
	res    resources
}

// Mesh is a drawable, pickable body.
type Mesh struct {
	Body       *catalog.Body
	Shape      catalog.Shape
	Radius     float64
	Color      string
	OrbitAngle float64
	Spin       float64
	Position   mgl64.Vec3
	Overlays   []*Overlay
	Ripples    []*Ripple
	res        resources
}

// Pickable reports whether the pointer may select this mesh.
func (m *Mesh) Pickable() bool {
	return m.Body != nil && m.Body.Pickable()
}

// Comet is a decorative particle moving on a straight line.
type Comet struct {
	Position   mgl64.Vec3
	Direction  mgl64.Vec3 // unit length
	Speed      float64    // world units per reference frame
	TailLength float64
	Respawns   int
	head       resources
	tail       resources
}

// Options configures scene construction.
type Options struct {
	StarCount   int
	NebulaCount int
	CometCount  int
	Rand        *rand.Rand
	Tracker     *Tracker
}

// DefaultOptions returns the standard scene configuration with a time-seeded
// random source and a fresh tracker.
func DefaultOptions() Options {
	return Options{
		StarCount:   DefaultStarCount,
		NebulaCount: DefaultNebulaCount,
		CometCount:  DefaultCometCount,
		Rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
		Tracker:     NewTracker(),
	}
}

// Scene is the live scene graph for one catalog. It is not safe for
// concurrent use; all mutation happens on the frame loop.
type Scene struct {
	Catalog catalog.Catalog

	Stars  PointCloud
	Nebula [3]PointCloud
	Glow   Glow
	Orbits []Ring
	Meshes []*Mesh
	Comets []*Comet

	// BackgroundYaw slowly rotates stars and nebula about the vertical axis.
	BackgroundYaw float64
	Elapsed       time.Duration
	Frames        uint64

	rng      *rand.Rand
	tracker  *Tracker
	timers   []*periodic
	disposed bool
}

// Build constructs a scene for the catalog.
func Build(cat catalog.Catalog, opts Options) (*Scene, error) {
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Tracker == nil {
		opts.Tracker = NewTracker()
	}

	s := &Scene{
		Catalog: cat,
		rng:     opts.Rand,
		tracker: opts.Tracker,
	}

	s.buildStars(opts.StarCount)
	s.buildNebula(opts.NebulaCount)
	s.buildGlow()
	s.buildOrbits()
	s.buildMeshes()
	s.buildComets(opts.CometCount)

	return s, nil
}

func (s *Scene) buildStars(n int) {
	pts := make([]mgl64.Vec3, n)
	for i := range pts {
		pts[i] = mgl64.Vec3{
			(s.rng.Float64() - 0.5) * starCubeSide,
			(s.rng.Float64() - 0.5) * starCubeSide,
			(s.rng.Float64() - 0.5) * starCubeSide,
		}
	}
	s.Stars = PointCloud{
		Points:  pts,
		Color:   "#ffffff",
		Opacity: 1,
		res:     allocPair(s.tracker, "stars"),
	}
}

func (s *Scene) buildNebula(n int) {
	for i := range s.Nebula {
		radius := nebulaBaseRadius + float64(i)*nebulaShellStep
		pts := make([]mgl64.Vec3, n)
		for j := range pts {
			r := radius + (s.rng.Float64()-0.5)*nebulaJitter
			pts[j] = randomOnSphere(s.rng, r)
		}
		s.Nebula[i] = PointCloud{
			Points:  pts,
			Color:   s.Catalog.Info.NebulaColor[i],
			Opacity: 0.1,
			res:     allocPair(s.tracker, fmt.Sprintf("nebula-%d", i)),
		}
	}
}

func (s *Scene) buildGlow() {
	s.Glow = Glow{
		Radius:  s.Catalog.Info.GlowRadius,
		Color:   s.Catalog.Info.GlowColor,
		Opacity: 0.3,
		res:     allocPair(s.tracker, "glow"),
	}
}

func (s *Scene) buildOrbits() {
	for _, b := range s.Catalog.Bodies {
		if b.IsCentral() {
			continue
		}
		s.Orbits = append(s.Orbits, Ring{
			Inner:   b.Distance - orbitGuideWidth,
			Outer:   b.Distance + orbitGuideWidth,
			Color:   "#ffffff",
			Opacity: 0.2,
			res:     allocPair(s.tracker, "orbit:"+b.Name),
		})
	}
}

func (s *Scene) buildMeshes() {
	for i := range s.Catalog.Bodies {
		body := &s.Catalog.Bodies[i]
		m := &Mesh{
			Body:   body,
			Shape:  body.Shape,
			Radius: body.Radius,
			Color:  body.Color,
			res:    allocPair(s.tracker, "body:"+body.Name),
		}
		if !body.IsCentral() {
			m.OrbitAngle = s.rng.Float64() * 2 * math.Pi
			m.Position = orbitPosition(m.OrbitAngle, body.Distance)
		}
		s.decorate(m)
		s.Meshes = append(s.Meshes, m)
	}
}

// decorate attaches the one-off embellishments for a body.
func (s *Scene) decorate(m *Mesh) {
	label := m.Body.Name
	switch m.Body.Decoration {
	case catalog.DecorRings:
		m.Overlays = append(m.Overlays, &Overlay{
			Kind:    catalog.DecorRings,
			Inner:   m.Radius * 1.27,
			Outer:   m.Radius * 1.82,
			Color:   "#f0e0b0",
			Opacity: 0.7,
			res:     allocPair(s.tracker, "rings:"+label),
		})

	case catalog.DecorWaterShell:
		m.Overlays = append(m.Overlays, &Overlay{
			Kind:    catalog.DecorWaterShell,
			Inner:   m.Radius,
			Outer:   m.Radius * 1.01,
			Color:   "#0077be",
			Opacity: 0.7,
			res:     allocPair(s.tracker, "water:"+label),
		})
		s.timers = append(s.timers, &periodic{
			every: rippleInterval,
			fire:  func() { s.spawnRipple(m) },
		})

	case catalog.DecorHalo:
		pts := make([]mgl64.Vec3, haloParticles)
		for i := range pts {
			r := m.Radius * (1.4 + s.rng.Float64()*1.2)
			theta := s.rng.Float64() * 2 * math.Pi
			pts[i] = mgl64.Vec3{
				r * math.Cos(theta),
				(s.rng.Float64() - 0.5) * 0.3,
				r * math.Sin(theta),
			}
		}
		m.Overlays = append(m.Overlays, &Overlay{
			Kind:    catalog.DecorHalo,
			Inner:   m.Radius * 1.4,
			Outer:   m.Radius * 2.6,
			Color:   "#ffb347",
			Opacity: 0.8,
			Points:  pts,
			res:     allocPair(s.tracker, "halo:"+label),
		})
	}
}

func (s *Scene) spawnRipple(m *Mesh) {
	m.Ripples = append(m.Ripples, &Ripple{
		Ring: Ring{
			Inner:   m.Radius * 1.02,
			Outer:   m.Radius * 1.04,
			Color:   "#00a0ff",
			Opacity: 0.5,
			res:     allocPair(s.tracker, "ripple:"+m.Body.Name),
		},
		Tilt:  (s.rng.Float64() - 0.5) * math.Pi / 3,
		Scale: 1,
	})
}

func (s *Scene) buildComets(n int) {
	for i := 0; i < n; i++ {
		c := &Comet{
			Position:   randomOnSphere(s.rng, cometSpawnMin+s.rng.Float64()*cometSpawnSpan),
			Direction:  randomDirection(s.rng),
			Speed:      cometSpeedMin + s.rng.Float64()*cometSpeedSpan,
			TailLength: cometTailMin + s.rng.Float64()*cometTailSpan,
			head:       allocPair(s.tracker, fmt.Sprintf("comet-%d", i)),
			tail:       allocPair(s.tracker, fmt.Sprintf("comet-tail-%d", i)),
		}
		s.Comets = append(s.Comets, c)
	}
}

// Pickables returns the meshes the pointer may select.
func (s *Scene) Pickables() []*Mesh {
	var out []*Mesh
	for _, m := range s.Meshes {
		if m.Pickable() {
			out = append(out, m)
		}
	}
	return out
}

// MeshByName finds the mesh for a catalog body.
func (s *Scene) MeshByName(name string) *Mesh {
	for _, m := range s.Meshes {
		if m.Body.Name == name {
			return m
		}
	}
	return nil
}

// ActiveTimers returns how many periodic effects are still scheduled.
func (s *Scene) ActiveTimers() int {
	n := 0
	for _, t := range s.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Disposed reports whether Dispose has run.
func (s *Scene) Disposed() bool {
	return s.disposed
}

// Dispose cancels periodic effects and releases every tracked resource. It is
// safe to call more than once; later calls release nothing.
func (s *Scene) Dispose() int {
	if s.disposed {
		return 0
	}
	s.disposed = true

	for _, t := range s.timers {
		t.cancel()
	}
	s.timers = nil

	n := s.Stars.res.release(s.tracker)
	for i := range s.Nebula {
		n += s.Nebula[i].res.release(s.tracker)
	}
	n += s.Glow.res.release(s.tracker)
	for i := range s.Orbits {
		n += s.Orbits[i].res.release(s.tracker)
	}
	for _, m := range s.Meshes {
		n += m.res.release(s.tracker)
		for _, o := range m.Overlays {
			n += o.res.release(s.tracker)
		}
		for _, r := range m.Ripples {
			n += r.res.release(s.tracker)
		}
		m.Ripples = nil
	}
	for _, c := range s.Comets {
		n += c.head.release(s.tracker)
		n += c.tail.release(s.tracker)
	}
	return n
}

// Tracker returns the resource tracker backing this scene.
func (s *Scene) Tracker() *Tracker {
	return s.tracker
}

func orbitPosition(angle, distance float64) mgl64.Vec3 {
	return mgl64.Vec3{math.Cos(angle) * distance, 0, math.Sin(angle) * distance}
}

// randomOnSphere samples uniformly on a sphere of radius r.
func randomOnSphere(rng *rand.Rand, r float64) mgl64.Vec3 {
	theta := rng.Float64() * 2 * math.Pi
	phi := math.Acos(rng.Float64()*2 - 1)
	return mgl64.Vec3{
		r * math.Sin(phi) * math.Cos(theta),
		r * math.Sin(phi) * math.Sin(theta),
		r * math.Cos(phi),
	}
}

func randomDirection(rng *rand.Rand) mgl64.Vec3 {
	for {
		v := mgl64.Vec3{rng.Float64() - 0.5, rng.Float64() - 0.5, rng.Float64() - 0.5}
		if l := v.Len(); l > 1e-6 {
			return v.Mul(1 / l)
		}
	}
}
