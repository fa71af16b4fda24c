// Package render rasterizes a scene into a grid of colored terminal cells.
package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CellAspect is the width/height ratio of one terminal cell. Cells are
// roughly twice as tall as they are wide.
const CellAspect = 0.5

// Default fractions of the terminal given to the canvas.
const (
	DefaultWidthFraction  = 0.8
	DefaultHeightFraction = 0.6
)

// Cell is one character of the canvas.
type Cell struct {
	Rune  rune
	Color string // #rrggbb, empty for the terminal default
	Bold  bool
	Depth float64
}

func blank() Cell {
	return Cell{Rune: ' ', Depth: math.Inf(1)}
}

// Canvas is a depth-tested character grid.
type Canvas struct {
	w, h  int
	cells []Cell
}

// NewCanvas creates a cleared canvas. Non-positive sizes yield an empty
// canvas that ignores all drawing.
func NewCanvas(w, h int) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &Canvas{w: w, h: h, cells: make([]Cell, w*h)}
	c.Clear()
	return c
}

// SurfaceSize returns the canvas size for a terminal of termW × termH
// cells. Fractions outside (0, 1] fall back to the defaults.
func SurfaceSize(termW, termH int, fw, fh float64) (int, int) {
	if fw <= 0 || fw > 1 {
		fw = DefaultWidthFraction
	}
	if fh <= 0 || fh > 1 {
		fh = DefaultHeightFraction
	}
	if termW <= 0 || termH <= 0 {
		return 0, 0
	}
	return int(float64(termW) * fw), int(float64(termH) * fh)
}

// Aspect returns the world-space aspect ratio of a w × h cell surface.
func Aspect(w, h int) float64 {
	if w <= 0 || h <= 0 {
		return 1
	}
	return float64(w) * CellAspect / float64(h)
}

// Width returns the canvas width in cells.
func (c *Canvas) Width() int { return c.w }

// Height returns the canvas height in cells.
func (c *Canvas) Height() int { return c.h }

// Empty reports whether the canvas has no drawable area.
func (c *Canvas) Empty() bool { return c.w == 0 || c.h == 0 }

// Clear resets every cell to a blank at infinite depth.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = blank()
	}
}

// At returns the cell at (x, y). Out-of-range coordinates return a blank.
func (c *Canvas) At(x, y int) Cell {
	if !c.inside(x, y) {
		return blank()
	}
	return c.cells[y*c.w+x]
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.w && y < c.h
}

// Set writes a cell if it is nearer than what is already there.
func (c *Canvas) Set(x, y int, depth float64, r rune, color string) bool {
	if !c.inside(x, y) {
		return false
	}
	i := y*c.w + x
	if depth >= c.cells[i].Depth {
		return false
	}
	c.cells[i] = Cell{Rune: r, Color: color, Depth: depth}
	return true
}

// Text writes s starting at (x, y) on top of everything else. Characters
// past the right edge are dropped.
func (c *Canvas) Text(x, y int, s, color string, bold bool) {
	if y < 0 || y >= c.h {
		return
	}
	for _, r := range s {
		if x >= c.w {
			return
		}
		if x >= 0 {
			c.cells[y*c.w+x] = Cell{Rune: r, Color: color, Bold: bold, Depth: math.Inf(-1)}
		}
		x++
	}
}

// Plain returns the canvas as uncolored text, one line per row.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			b.WriteRune(c.cells[y*c.w+x].Rune)
		}
		if y < c.h-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

// String renders the canvas with lipgloss colors. Runs of cells sharing a
// style are rendered together.
func (c *Canvas) String() string {
	if c.Empty() {
		return ""
	}
	styles := make(map[styleKey]lipgloss.Style)
	styleFor := func(k styleKey) lipgloss.Style {
		if s, ok := styles[k]; ok {
			return s
		}
		s := lipgloss.NewStyle().Foreground(lipgloss.Color(k.color)).Bold(k.bold)
		styles[k] = s
		return s
	}

	var b strings.Builder
	var run strings.Builder
	for y := 0; y < c.h; y++ {
		var cur styleKey
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur.color == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(styleFor(cur).Render(run.String()))
			}
			run.Reset()
		}
		for x := 0; x < c.w; x++ {
			cell := c.cells[y*c.w+x]
			k := styleKey{color: cell.Color, bold: cell.Bold}
			if cell.Rune == ' ' {
				k = styleKey{}
			}
			if k != cur {
				flush()
				cur = k
			}
			run.WriteRune(cell.Rune)
		}
		flush()
		if y < c.h-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

type styleKey struct {
	color string
	bold  bool
}
