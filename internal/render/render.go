package render

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/camera"
	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/scene"
)

// Glyph ramps.
var (
	shadeRamp = []rune("░▒▓█")
	starRamp  = []rune("˙·∗")
)

const (
	ambient      = 0.15
	starColor    = "#8a8a8a"
	orbitColor   = "#4e4e4e"
	labelColor   = "#bcbcbc"
	selectColor  = "#ffffaf"
	cometColor   = "#e0f0ff"
	nebulaAlpha  = 0.45
	shimmerScale = 0.004
	shimmerRate  = 0.4
)

// Options controls what is drawn.
type Options struct {
	Stars    bool
	Labels   bool   // label every pickable body
	Selected string // body name to highlight and label
}

// DefaultOptions draws stars and labels only the selection.
func DefaultOptions() Options {
	return Options{Stars: true}
}

// Renderer draws scenes onto canvases.
type Renderer struct {
	noise *perlin.Perlin
	black colorful.Color
}

// NewRenderer creates a renderer whose star shimmer is seeded by seed.
func NewRenderer(seed int64) *Renderer {
	return &Renderer{
		noise: perlin.NewPerlin(2, 2, 3, seed),
		black: colorful.Color{},
	}
}

// frame holds per-draw projection state.
type frame struct {
	c     *Canvas
	vp    mgl64.Mat4
	eye   mgl64.Vec3
	right mgl64.Vec3
	up    mgl64.Vec3
	back  mgl64.Vec3
}

// project maps a world point to fractional cell coordinates and its distance
// from the eye.
func (f *frame) project(p mgl64.Vec3) (x, y, depth float64, ok bool) {
	clip := f.vp.Mul4x1(p.Vec4(1))
	w := clip.W()
	if w <= 1e-9 {
		return 0, 0, 0, false
	}
	nx, ny, nz := clip.X()/w, clip.Y()/w, clip.Z()/w
	if nz < -1 || nz > 1 {
		return 0, 0, 0, false
	}
	x = (nx + 1) / 2 * float64(f.c.w)
	y = (1 - ny) / 2 * float64(f.c.h)
	return x, y, f.eye.Sub(p).Len(), true
}

func (f *frame) point(p mgl64.Vec3, r rune, color string) {
	x, y, d, ok := f.project(p)
	if !ok {
		return
	}
	f.c.Set(int(math.Floor(x)), int(math.Floor(y)), d, r, color)
}

// Draw clears the canvas and rasterizes the scene through the camera. An
// empty canvas is left untouched.
func (r *Renderer) Draw(c *Canvas, s *scene.Scene, cam *camera.Orbit, opts Options) {
	if c.Empty() || s == nil || cam == nil {
		return
	}
	c.Clear()

	view := cam.View()
	f := &frame{
		c:     c,
		vp:    cam.Projection().Mul4(view),
		eye:   cam.Position(),
		right: mgl64.Vec3{view.At(0, 0), view.At(0, 1), view.At(0, 2)},
		up:    mgl64.Vec3{view.At(1, 0), view.At(1, 1), view.At(1, 2)},
		back:  mgl64.Vec3{view.At(2, 0), view.At(2, 1), view.At(2, 2)},
	}

	if opts.Stars {
		r.drawBackground(f, s)
	}
	r.drawGlow(f, s)
	for _, o := range s.Orbits {
		drawCircle(f, mgl64.Vec3{}, (o.Inner+o.Outer)/2, 0, '·', orbitColor)
	}
	for _, m := range s.Meshes {
		r.drawMesh(f, m, m.Body.Name == opts.Selected)
	}
	r.drawComets(f, s)
	drawLabels(f, s, opts)
}

func (r *Renderer) drawBackground(f *frame, s *scene.Scene) {
	rot := mgl64.Rotate3DY(s.BackgroundYaw)
	t := s.Elapsed.Seconds() * shimmerRate

	for _, p := range s.Stars.Points {
		wp := rot.Mul3x1(p)
		n := r.noise.Noise3D(p.X()*shimmerScale, p.Y()*shimmerScale, p.Z()*shimmerScale+t)
		if n < 0 {
			continue
		}
		idx := int(n * float64(len(starRamp)) * 2)
		if idx >= len(starRamp) {
			idx = len(starRamp) - 1
		}
		f.point(wp, starRamp[idx], starColor)
	}

	for i := range s.Nebula {
		shell := &s.Nebula[i]
		col := r.fade(shell.Color, nebulaAlpha)
		for _, p := range shell.Points {
			f.point(rot.Mul3x1(p), '·', col)
		}
	}
}

func (r *Renderer) drawGlow(f *frame, s *scene.Scene) {
	g := s.Glow
	if g.Radius <= 0 {
		return
	}
	col := r.fade(g.Color, g.Opacity+0.2)
	cx, cy, rx, ry, d, ok := f.disk(mgl64.Vec3{}, g.Radius)
	if !ok {
		return
	}
	// Behind every surface point of the central body.
	depth := d + g.Radius
	fillEllipse(f.c, cx, cy, rx, ry, func(x, y int, u, v float64) {
		f.c.Set(x, y, depth, '░', col)
	})
}

// disk returns the projected center, radii in cells and center depth of a
// sphere.
func (f *frame) disk(center mgl64.Vec3, radius float64) (cx, cy, rx, ry, depth float64, ok bool) {
	cx, cy, depth, ok = f.project(center)
	if !ok {
		return
	}
	x1, _, _, ok1 := f.project(center.Add(f.right.Mul(radius)))
	_, y2, _, ok2 := f.project(center.Add(f.up.Mul(radius)))
	if !ok1 || !ok2 {
		return 0, 0, 0, 0, 0, false
	}
	return cx, cy, math.Abs(x1 - cx), math.Abs(y2 - cy), depth, true
}

// fillEllipse visits every cell whose center lies inside the ellipse,
// passing the normalized offsets u (right) and v (down).
func fillEllipse(c *Canvas, cx, cy, rx, ry float64, visit func(x, y int, u, v float64)) {
	if rx < 0.5 || ry < 0.5 {
		visit(int(math.Floor(cx)), int(math.Floor(cy)), 0, 0)
		return
	}
	x0 := int(math.Max(0, math.Floor(cx-rx)))
	x1 := int(math.Min(float64(c.w-1), math.Ceil(cx+rx)))
	y0 := int(math.Max(0, math.Floor(cy-ry)))
	y1 := int(math.Min(float64(c.h-1), math.Ceil(cy+ry)))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			u := (float64(x) + 0.5 - cx) / rx
			v := (float64(y) + 0.5 - cy) / ry
			if u*u+v*v <= 1 {
				visit(x, y, u, v)
			}
		}
	}
}

func (r *Renderer) drawMesh(f *frame, m *scene.Mesh, selected bool) {
	base, err := colorful.Hex(m.Color)
	if err != nil {
		base = colorful.Color{R: 1, G: 1, B: 1}
	}
	for _, o := range m.Overlays {
		if o.Kind == catalog.DecorWaterShell {
			if water, err := colorful.Hex(o.Color); err == nil {
				base = base.BlendLab(water, o.Opacity*0.4).Clamped()
			}
		}
	}

	if m.Shape == catalog.ShapeCube {
		r.drawCube(f, m, base)
	} else {
		r.drawSphere(f, m, base, selected)
	}

	for _, o := range m.Overlays {
		switch o.Kind {
		case catalog.DecorRings:
			col := r.fade(o.Color, o.Opacity)
			for i := 0; i <= 3; i++ {
				rad := o.Inner + (o.Outer-o.Inner)*float64(i)/3
				drawCircle(f, m.Position, rad, 0, '∙', col)
			}
		case catalog.DecorHalo:
			col := r.fade(o.Color, o.Opacity)
			rot := mgl64.Rotate3DY(m.Spin)
			for _, p := range o.Points {
				f.point(m.Position.Add(rot.Mul3x1(p)), '∙', col)
			}
		}
	}
	for _, rp := range m.Ripples {
		col := r.fade(rp.Color, rp.Opacity*2)
		drawCircle(f, m.Position, rp.Outer*rp.Scale, rp.Tilt, '˚', col)
	}
}

func (r *Renderer) drawSphere(f *frame, m *scene.Mesh, base colorful.Color, selected bool) {
	cx, cy, rx, ry, _, ok := f.disk(m.Position, m.Radius)
	if !ok {
		return
	}
	emissive := m.Body.IsCentral()
	fillEllipse(f.c, cx, cy, rx, ry, func(x, y int, u, v float64) {
		nz := math.Sqrt(math.Max(0, 1-u*u-v*v))
		n := f.right.Mul(u).Add(f.up.Mul(-v)).Add(f.back.Mul(nz))
		surface := m.Position.Add(n.Mul(m.Radius))

		var k float64
		if emissive {
			k = 0.6 + 0.4*nz
		} else {
			toLight := surface.Mul(-1)
			if toLight.Len() > 1e-9 {
				toLight = toLight.Normalize()
			}
			k = ambient + (1-ambient)*math.Max(0, n.Dot(toLight))
		}
		idx := int(k * float64(len(shadeRamp)))
		if idx >= len(shadeRamp) {
			idx = len(shadeRamp) - 1
		}
		col := r.black.BlendLab(base, k).Clamped().Hex()
		if f.c.Set(x, y, f.eye.Sub(surface).Len(), shadeRamp[idx], col) && selected {
			f.c.cells[y*f.c.w+x].Bold = true
		}
	})
}

func (r *Renderer) drawCube(f *frame, m *scene.Mesh, base colorful.Color) {
	rot := mgl64.Rotate3DY(m.Spin)
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, sx := range []float64{-1, 1} {
		for _, sy := range []float64{-1, 1} {
			for _, sz := range []float64{-1, 1} {
				corner := m.Position.Add(rot.Mul3x1(mgl64.Vec3{sx, sy, sz}.Mul(m.Radius)))
				x, y, _, ok := f.project(corner)
				if !ok {
					return
				}
				minX, maxX = math.Min(minX, x), math.Max(maxX, x)
				minY, maxY = math.Min(minY, y), math.Max(maxY, y)
			}
		}
	}
	depth := f.eye.Sub(m.Position).Len() - m.Radius
	col := base.Hex()
	edge := r.black.BlendLab(base, 0.6).Clamped().Hex()
	x0, x1 := int(math.Floor(minX)), int(math.Floor(maxX))
	y0, y1 := int(math.Floor(minY)), int(math.Floor(maxY))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if x == x0 || x == x1 || y == y0 || y == y1 {
				f.c.Set(x, y, depth, '▓', edge)
			} else {
				f.c.Set(x, y, depth, '█', col)
			}
		}
	}
}

// drawCircle samples a horizontal circle around center, inclined by tilt
// radians about the X axis.
func drawCircle(f *frame, center mgl64.Vec3, radius, tilt float64, r rune, color string) {
	if radius <= 0 {
		return
	}
	steps := int(radius * 6)
	if steps < 24 {
		steps = 24
	}
	if steps > 720 {
		steps = 720
	}
	incl := mgl64.Rotate3DX(tilt)
	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		p := mgl64.Vec3{radius * math.Cos(theta), 0, radius * math.Sin(theta)}
		f.point(center.Add(incl.Mul3x1(p)), r, color)
	}
}

func (r *Renderer) drawComets(f *frame, s *scene.Scene) {
	head, _ := colorful.Hex(cometColor)
	const segments = 12
	for _, c := range s.Comets {
		end := c.TailEnd()
		for i := segments; i >= 1; i-- {
			t := float64(i) / segments
			p := c.Position.Add(end.Sub(c.Position).Mul(t))
			f.point(p, '·', head.BlendLab(r.black, t*0.8).Clamped().Hex())
		}
		f.point(c.Position, '✦', cometColor)
	}
}

func drawLabels(f *frame, s *scene.Scene, opts Options) {
	for _, m := range s.Meshes {
		sel := m.Body.Name == opts.Selected
		if !sel && !(opts.Labels && m.Pickable()) {
			continue
		}
		cx, cy, rx, _, _, ok := f.disk(m.Position, m.Radius)
		if !ok {
			continue
		}
		text, col := m.Body.Name, labelColor
		if sel {
			text, col = "◄ "+text, selectColor
		}
		f.c.Text(int(math.Floor(cx+rx))+2, int(math.Floor(cy)), text, col, sel)
	}
}

// fade blends a hex color toward black, keeping alpha of it.
func (r *Renderer) fade(hex string, alpha float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	return r.black.BlendLab(c, mgl64.Clamp(alpha, 0, 1)).Clamped().Hex()
}
