// Package catalog holds the static body tables for each celestial system.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownSystem is returned when a system name cannot be parsed.
var ErrUnknownSystem = errors.New("unknown system")

// System identifies one of the celestial systems that can be displayed.
type System int

const (
	Solar System = iota
	Proxima
	Mov
)

// String returns the system name.
func (s System) String() string {
	switch s {
	case Solar:
		return "solar"
	case Proxima:
		return "proxima"
	case Mov:
		return "mov"
	default:
		return "unknown"
	}
}

// ParseSystem parses a system name.
func ParseSystem(s string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "solar", "sol":
		return Solar, nil
	case "proxima":
		return Proxima, nil
	case "mov", "movie":
		return Mov, nil
	default:
		return Solar, fmt.Errorf("%w: %q", ErrUnknownSystem, s)
	}
}

// Systems returns every system in switch order.
func Systems() []System {
	return []System{Solar, Proxima, Mov}
}

// Shape is the mesh used for a body.
type Shape int

const (
	ShapeSphere Shape = iota
	ShapeCube
)

// Decoration is a one-off visual embellishment attached to a body.
type Decoration int

const (
	DecorNone       Decoration = iota
	DecorRings                 // flat ring disk (Saturn)
	DecorWaterShell            // translucent ocean shell with wave ripples
	DecorHalo                  // particle accretion halo
)

// Body is an immutable catalog entry.
type Body struct {
	Name          string
	Radius        float64
	Distance      float64 // 0 marks the central body
	Color         string  // #rrggbb
	RotationSpeed float64 // radians per reference frame
	OrbitSpeed    float64 // radians per reference frame
	Description   string
	Facts         []string
	ShowVideo     bool

	Shape      Shape
	Decoration Decoration
	NoPick     bool // excluded from picking
}

// IsCentral reports whether the body sits at the origin.
func (b Body) IsCentral() bool {
	return b.Distance == 0
}

// Pickable reports whether the body can be selected with the pointer.
func (b Body) Pickable() bool {
	return !b.NoPick
}

// SystemInfo holds per-system presentation data.
type SystemInfo struct {
	Title       string
	About       string
	GlowColor   string
	GlowRadius  float64
	NebulaColor [3]string
	VideoTitle  string
	VideoURL    string
}

// Catalog is the list of bodies for one system.
type Catalog struct {
	System System
	Info   SystemInfo
	Bodies []Body
}

// Load returns a fresh copy of the catalog for a system.
func Load(s System) Catalog {
	var (
		info   SystemInfo
		bodies []Body
	)
	switch s {
	case Proxima:
		info, bodies = proximaInfo, proximaBodies
	case Mov:
		info, bodies = movInfo, movBodies
	default:
		s = Solar
		info, bodies = solarInfo, solarBodies
	}

	out := make([]Body, len(bodies))
	for i, b := range bodies {
		b.Facts = append([]string(nil), b.Facts...)
		out[i] = b
	}
	return Catalog{System: s, Info: info, Bodies: out}
}

// Find returns a body by name.
func (c Catalog) Find(name string) (Body, bool) {
	for _, b := range c.Bodies {
		if b.Name == name {
			return b, true
		}
	}
	return Body{}, false
}

// Central returns the central body.
func (c Catalog) Central() (Body, bool) {
	for _, b := range c.Bodies {
		if b.IsCentral() {
			return b, true
		}
	}
	return Body{}, false
}

// Orbiting returns all non-central bodies in catalog order.
func (c Catalog) Orbiting() []Body {
	var out []Body
	for _, b := range c.Bodies {
		if !b.IsCentral() {
			out = append(out, b)
		}
	}
	return out
}

// Validate checks the catalog tables for consistency.
func (c Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Bodies))
	central := 0
	for i, b := range c.Bodies {
		if b.Name == "" {
			return fmt.Errorf("%s body %d: empty name", c.System, i)
		}
		if seen[b.Name] {
			return fmt.Errorf("%s: duplicate body %q", c.System, b.Name)
		}
		seen[b.Name] = true
		if b.Radius <= 0 {
			return fmt.Errorf("%s/%s: radius must be positive, got %v", c.System, b.Name, b.Radius)
		}
		if b.Distance < 0 {
			return fmt.Errorf("%s/%s: negative distance %v", c.System, b.Name, b.Distance)
		}
		if b.OrbitSpeed < 0 {
			return fmt.Errorf("%s/%s: negative orbit speed %v", c.System, b.Name, b.OrbitSpeed)
		}
		if _, err := colorful.Hex(b.Color); err != nil {
			return fmt.Errorf("%s/%s: bad color %q: %w", c.System, b.Name, b.Color, err)
		}
		if b.IsCentral() {
			central++
		}
	}
	if central != 1 {
		return fmt.Errorf("%s: expected exactly one central body, got %d", c.System, central)
	}
	return nil
}
