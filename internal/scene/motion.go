package scene

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// ReferenceFPS converts elapsed wall-clock time into reference frames. Catalog
// speeds are expressed in radians per reference frame, so motion looks the
// same at any redraw rate.
const ReferenceFPS = 60.0

const (
	backgroundDrift = 0.0001 // radians per reference frame
	rippleGrowth    = 0.01
	rippleFade      = 0.005
)

// Step advances the scene by dt of wall-clock time.
func (s *Scene) Step(dt time.Duration) error {
	if s.disposed {
		return ErrDisposed
	}
	if dt <= 0 {
		return nil
	}
	frames := dt.Seconds() * ReferenceFPS

	s.Elapsed += dt
	s.Frames++
	s.BackgroundYaw += backgroundDrift * frames

	for _, m := range s.Meshes {
		b := m.Body
		m.Spin += b.RotationSpeed * frames
		if b.IsCentral() {
			m.Position = mgl64.Vec3{}
			continue
		}
		if b.OrbitSpeed > 0 {
			m.OrbitAngle += b.OrbitSpeed * frames
		}
		m.Position = orbitPosition(m.OrbitAngle, b.Distance)
	}

	// Existing ripples age before the spawners run so a new ripple starts at
	// full opacity.
	s.advanceRipples(frames)
	for _, t := range s.timers {
		t.advance(dt)
	}
	s.advanceComets(frames)

	return nil
}

func (s *Scene) advanceRipples(frames float64) {
	for _, m := range s.Meshes {
		if len(m.Ripples) == 0 {
			continue
		}
		kept := m.Ripples[:0]
		for _, r := range m.Ripples {
			r.Scale += rippleGrowth * frames
			r.Opacity -= rippleFade * frames
			if r.Opacity <= 0 {
				r.expired = true
				r.res.release(s.tracker)
				continue
			}
			kept = append(kept, r)
		}
		for i := len(kept); i < len(m.Ripples); i++ {
			m.Ripples[i] = nil
		}
		m.Ripples = kept
	}
}

func (s *Scene) advanceComets(frames float64) {
	for _, c := range s.Comets {
		c.Position = c.Position.Add(c.Direction.Mul(c.Speed * frames))
		if c.Position.Len() > cometMaxRadius {
			c.Position = randomOnSphere(s.rng, cometSpawnMin+s.rng.Float64()*cometRespawnSpan)
			c.Direction = randomDirection(s.rng)
			c.Respawns++
		}
	}
}

// TailEnd returns the far end of a comet's tail, trailing away from its
// direction of travel.
func (c *Comet) TailEnd() mgl64.Vec3 {
	return c.Position.Sub(c.Direction.Mul(c.TailLength))
}
