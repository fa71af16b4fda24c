// Package camera implements an orbit camera that circles the origin.
package camera

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl64"
)

// Config holds camera limits and input mapping.
type Config struct {
	MinZoom   float64 // closest radial distance
	MaxZoom   float64 // farthest radial distance
	StartZoom float64

	StartAzimuth   float64 // radians about +Y, 0 looks down -Z
	StartElevation float64 // polar angle from +Y in (0, π)

	// Radians of rotation per canvas cell of drag.
	Sensitivity float64
	// Radial distance per wheel notch.
	ZoomStep float64
	// Keeps the polar angle inside (0, π) by this margin.
	ElevationMargin float64

	FovYDeg   float64
	Near, Far float64

	// Frame rate the zoom spring is tuned for.
	FPS int
}

// DefaultConfig returns the standard camera: looking at the origin from
// (0, 40, 100), zoom limited to [30, 180].
func DefaultConfig() Config {
	return Config{
		MinZoom:         30,
		MaxZoom:         180,
		StartZoom:       math.Hypot(40, 100),
		StartAzimuth:    0,
		StartElevation:  math.Acos(40 / math.Hypot(40, 100)),
		Sensitivity:     0.05,
		ZoomStep:        5,
		ElevationMargin: 0.05,
		FovYDeg:         75,
		Near:            0.1,
		Far:             4000,
		FPS:             30,
	}
}

// Normalize repairs inconsistent values so the camera invariants always
// hold.
func (c Config) Normalize() Config {
	def := DefaultConfig()
	if c.MinZoom <= 0 {
		c.MinZoom = def.MinZoom
	}
	if c.MaxZoom < c.MinZoom {
		c.MaxZoom = c.MinZoom
	}
	if c.ElevationMargin <= 0 || c.ElevationMargin >= math.Pi/2 {
		c.ElevationMargin = def.ElevationMargin
	}
	if c.FovYDeg <= 0 || c.FovYDeg >= 180 {
		c.FovYDeg = def.FovYDeg
	}
	if c.Near <= 0 {
		c.Near = def.Near
	}
	if c.Far <= c.Near {
		c.Far = c.Near + def.Far
	}
	if c.FPS <= 0 {
		c.FPS = def.FPS
	}
	if c.StartZoom <= 0 {
		c.StartZoom = def.StartZoom
	}
	if c.StartElevation == 0 {
		c.StartElevation = def.StartElevation
	}
	c.StartZoom = mgl64.Clamp(c.StartZoom, c.MinZoom, c.MaxZoom)
	c.StartElevation = mgl64.Clamp(c.StartElevation, c.ElevationMargin, math.Pi-c.ElevationMargin)
	return c
}

// Orbit is a camera positioned on a sphere around the origin and always
// aimed at it. Zoom changes are eased with a critically damped spring.
type Orbit struct {
	cfg Config

	azimuth   float64
	elevation float64 // polar angle from +Y

	radius       float64 // eased
	targetRadius float64
	radiusVel    float64
	spring       harmonica.Spring

	aspect float64
}

// New creates an orbit camera.
func New(cfg Config) *Orbit {
	cfg = cfg.Normalize()
	o := &Orbit{
		cfg:    cfg,
		spring: harmonica.NewSpring(harmonica.FPS(cfg.FPS), 6.0, 1.0),
		aspect: 1,
	}
	o.Reset()
	return o
}

// Config returns the normalized configuration.
func (o *Orbit) Config() Config { return o.cfg }

// Reset restores the starting position and zoom.
func (o *Orbit) Reset() {
	o.azimuth = o.cfg.StartAzimuth
	o.elevation = o.cfg.StartElevation
	o.radius = o.cfg.StartZoom
	o.targetRadius = o.cfg.StartZoom
	o.radiusVel = 0
}

// Drag rotates the camera by a pointer delta measured in canvas cells.
// Dragging right swings the scene right; dragging down tilts it toward the
// viewer.
func (o *Orbit) Drag(dx, dy float64) {
	o.azimuth -= dx * o.cfg.Sensitivity
	o.azimuth = math.Mod(o.azimuth, 2*math.Pi)
	o.elevation = o.clampElevation(o.elevation - dy*o.cfg.Sensitivity)
}

// Rotate changes azimuth and elevation directly, in radians.
func (o *Orbit) Rotate(dAzimuth, dElevation float64) {
	o.azimuth = math.Mod(o.azimuth+dAzimuth, 2*math.Pi)
	o.elevation = o.clampElevation(o.elevation + dElevation)
}

func (o *Orbit) clampElevation(e float64) float64 {
	if math.IsNaN(e) {
		return o.cfg.StartElevation
	}
	return mgl64.Clamp(e, o.cfg.ElevationMargin, math.Pi-o.cfg.ElevationMargin)
}

// Zoom moves the target distance by delta wheel notches. Positive values
// move away from the origin.
func (o *Orbit) Zoom(delta float64) {
	if math.IsNaN(delta) {
		return
	}
	o.targetRadius = mgl64.Clamp(o.targetRadius+delta*o.cfg.ZoomStep, o.cfg.MinZoom, o.cfg.MaxZoom)
}

// Advance steps the zoom easing by one frame.
func (o *Orbit) Advance() {
	o.radius, o.radiusVel = o.spring.Update(o.radius, o.radiusVel, o.targetRadius)
	if o.radius < o.cfg.MinZoom {
		o.radius, o.radiusVel = o.cfg.MinZoom, 0
	} else if o.radius > o.cfg.MaxZoom {
		o.radius, o.radiusVel = o.cfg.MaxZoom, 0
	}
}

// Settle jumps straight to the target zoom.
func (o *Orbit) Settle() {
	o.radius = o.targetRadius
	o.radiusVel = 0
}

// Azimuth returns the azimuth in radians.
func (o *Orbit) Azimuth() float64 { return o.azimuth }

// Elevation returns the polar angle from +Y in radians.
func (o *Orbit) Elevation() float64 { return o.elevation }

// Radius returns the current (eased) distance from the origin.
func (o *Orbit) Radius() float64 { return o.radius }

// TargetRadius returns the distance the zoom is easing toward.
func (o *Orbit) TargetRadius() float64 { return o.targetRadius }

// SetAspect sets the surface aspect ratio (width / height in world units).
func (o *Orbit) SetAspect(aspect float64) {
	if aspect > 0 && !math.IsInf(aspect, 0) {
		o.aspect = aspect
	}
}

// Aspect returns the current aspect ratio.
func (o *Orbit) Aspect() float64 { return o.aspect }

// Position returns the camera position from its spherical coordinates.
func (o *Orbit) Position() mgl64.Vec3 {
	sinE := math.Sin(o.elevation)
	return mgl64.Vec3{
		o.radius * sinE * math.Sin(o.azimuth),
		o.radius * math.Cos(o.elevation),
		o.radius * sinE * math.Cos(o.azimuth),
	}
}

// View returns the view matrix aimed at the origin.
func (o *Orbit) View() mgl64.Mat4 {
	return mgl64.LookAtV(o.Position(), mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
}

// Projection returns the perspective projection matrix.
func (o *Orbit) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(o.cfg.FovYDeg), o.aspect, o.cfg.Near, o.cfg.Far)
}

// ViewProjection returns Projection × View.
func (o *Orbit) ViewProjection() mgl64.Mat4 {
	return o.Projection().Mul4(o.View())
}

// Project maps a world point to normalized device coordinates. ok is false
// when the point is behind the camera.
func (o *Orbit) Project(p mgl64.Vec3) (ndc mgl64.Vec3, ok bool) {
	clip := o.ViewProjection().Mul4x1(p.Vec4(1))
	if clip.W() <= 1e-9 {
		return mgl64.Vec3{}, false
	}
	return clip.Vec3().Mul(1 / clip.W()), true
}

// Unproject returns a world-space ray through a point in normalized device
// coordinates. dir is unit length.
func (o *Orbit) Unproject(ndcX, ndcY float64) (origin, dir mgl64.Vec3) {
	inv := o.ViewProjection().Inv()
	near := inv.Mul4x1(mgl64.Vec4{ndcX, ndcY, -1, 1})
	far := inv.Mul4x1(mgl64.Vec4{ndcX, ndcY, 1, 1})
	nearP := near.Vec3().Mul(1 / near.W())
	farP := far.Vec3().Mul(1 / far.W())
	return o.Position(), farP.Sub(nearP).Normalize()
}
