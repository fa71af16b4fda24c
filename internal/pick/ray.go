// Package pick resolves pointer clicks into catalog bodies by ray casting.
package pick

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/litescript/ls-orrery/internal/camera"
	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/scene"
)

const epsilon = 1e-9

// Ray is a half-line in world space. Dir is unit length.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Hit is the nearest intersection found by Cast.
type Hit struct {
	Mesh     *scene.Mesh
	Distance float64
	Point    mgl64.Vec3
}

// ToNDC converts a canvas cell to normalized device coordinates. The cell
// center is used, and y grows downward on the canvas but upward in NDC.
func ToNDC(x, y, width, height int) (float64, float64) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	nx := (float64(x)+0.5)/float64(width)*2 - 1
	ny := -((float64(y)+0.5)/float64(height)*2 - 1)
	return nx, ny
}

// FromCamera builds the ray from the camera through an NDC point.
func FromCamera(cam *camera.Orbit, ndcX, ndcY float64) Ray {
	origin, dir := cam.Unproject(ndcX, ndcY)
	return Ray{Origin: origin, Dir: dir}
}

// Cast intersects the ray against meshes and returns the nearest hit.
// Meshes that are not pickable are skipped.
func Cast(ray Ray, meshes []*scene.Mesh) (Hit, bool) {
	best := Hit{Distance: math.Inf(1)}
	found := false
	for _, m := range meshes {
		if m == nil || !m.Pickable() {
			continue
		}
		var (
			t  float64
			ok bool
		)
		switch m.Shape {
		case catalog.ShapeCube:
			t, ok = intersectCube(ray, m.Position, m.Radius, m.Spin)
		default:
			t, ok = intersectSphere(ray, m.Position, m.Radius)
		}
		if ok && t < best.Distance {
			best = Hit{Mesh: m, Distance: t, Point: ray.At(t)}
			found = true
		}
	}
	return best, found
}

// intersectSphere returns the nearest positive distance to a sphere.
func intersectSphere(ray Ray, center mgl64.Vec3, radius float64) (float64, bool) {
	oc := ray.Origin.Sub(center)
	b := oc.Dot(ray.Dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t <= epsilon {
		// Origin inside the sphere: take the exit point.
		t = -b + sq
	}
	if t <= epsilon {
		return 0, false
	}
	return t, true
}

// intersectCube tests a cube of half-size halfSize spun by yaw about the
// vertical axis, using the slab method in the cube's local frame.
func intersectCube(ray Ray, center mgl64.Vec3, halfSize, yaw float64) (float64, bool) {
	rot := mgl64.Rotate3DY(-yaw)
	o := rot.Mul3x1(ray.Origin.Sub(center))
	d := rot.Mul3x1(ray.Dir)

	tMin, tMax := math.Inf(-1), math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		if math.Abs(d[axis]) < epsilon {
			if o[axis] < -halfSize || o[axis] > halfSize {
				return 0, false
			}
			continue
		}
		inv := 1 / d[axis]
		t0 := (-halfSize - o[axis]) * inv
		t1 := (halfSize - o[axis]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tMin = math.Max(tMin, t0)
		tMax = math.Min(tMax, t1)
		if tMin > tMax {
			return 0, false
		}
	}
	if tMin > epsilon {
		return tMin, true
	}
	if tMax > epsilon {
		return tMax, true
	}
	return 0, false
}
