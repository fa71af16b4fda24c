// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/render"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/version"
)

// Layout constants.
const (
	headerLines   = 3 // title, tabs, blank
	hudLines      = 1
	footerLines   = 2 // help, status flash
	minWidth      = 40
	minHeight     = 12
	maxFrameDelta = 250 * time.Millisecond
	frameHistory  = 60
	orbitStep     = 0.08 // radians per arrow key press
	flashDuration = 3 * time.Second
)

// Msg types for Bubble Tea
type (
	// AnimTickMsg drives the frame clock.
	AnimTickMsg time.Time
)

// Options configures the root model.
type Options struct {
	FrameInterval time.Duration
	SurfaceWidth  float64 // fraction of terminal columns for the canvas
	SurfaceHeight float64 // fraction of terminal rows for the canvas
	Labels        bool
	Stars         bool
	Seed          int64
	Logger        *logging.Logger
}

// DefaultOptions returns the standard presentation settings.
func DefaultOptions() Options {
	return Options{
		FrameInterval: time.Second / 30,
		SurfaceWidth:  render.DefaultWidthFraction,
		SurfaceHeight: render.DefaultHeightFraction,
		Stars:         true,
	}
}

// flash is a short-lived status line shared by every copy of the model, so
// session listeners can set it.
type flash struct {
	text  string
	until time.Time
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	session  *state.Session
	renderer *render.Renderer
	log      *logging.Logger
	opts     Options

	// UI state
	width     int
	height    int
	ready     bool
	animTick  int
	lastFrame time.Time
	canvas    *render.Canvas

	labels    bool
	stars     bool
	showAbout bool
	showStats bool

	frameMs []float64
	status  *flash
}

// New creates a new root UI model around a session. The model registers
// listeners on the session for its status line.
func New(session *state.Session, opts Options) Model {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultOptions().FrameInterval
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	m := Model{
		session:  session,
		renderer: render.NewRenderer(opts.Seed),
		log:      log.With("ui"),
		opts:     opts,
		canvas:   render.NewCanvas(0, 0),
		labels:   opts.Labels,
		stars:    opts.Stars,
		status:   &flash{},
	}

	st := m.status
	session.OnSelectionChange(func(b *catalog.Body) {
		if b == nil {
			st.set("Selection cleared")
			return
		}
		st.set("Selected " + b.Name)
	})
	session.OnVideoVisibilityChange(func(visible bool) {
		if visible {
			st.set("Video opened")
		} else {
			st.set("Video closed")
		}
	})
	return m
}

func (f *flash) set(text string) {
	f.text = text
	f.until = time.Now().Add(flashDuration)
}

func (f *flash) current(now time.Time) string {
	if now.After(f.until) {
		return ""
	}
	return f.text
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return animTickCmd(m.opts.FrameInterval)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.refit()

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd(m.opts.FrameInterval))
		m.advance(time.Time(msg))
	}

	return m, tea.Batch(cmds...)
}

// refit sizes the canvas from the terminal and the configured fractions,
// leaving room for the header, HUD and footer.
func (m *Model) refit() {
	w, h := render.SurfaceSize(m.width, m.height, m.opts.SurfaceWidth, m.opts.SurfaceHeight)
	if room := m.height - headerLines - hudLines - footerLines; h > room {
		h = room
	}
	if m.width < minWidth || m.height < minHeight {
		w, h = 0, 0
	}
	m.canvas = render.NewCanvas(w, h)
	m.session.Resize(w, h)
	m.log.Debug("resize %dx%d -> canvas %dx%d", m.width, m.height, w, h)
}

// advance steps the session by the measured time since the previous frame.
func (m *Model) advance(now time.Time) {
	m.animTick++
	dt := m.opts.FrameInterval
	if !m.lastFrame.IsZero() {
		dt = now.Sub(m.lastFrame)
	}
	m.lastFrame = now
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}
	if err := m.session.Tick(dt); err != nil {
		m.log.Warn("tick: %v", err)
		return
	}
	m.frameMs = append(m.frameMs, float64(dt)/float64(time.Millisecond))
	if len(m.frameMs) > frameHistory {
		m.frameMs = m.frameMs[1:]
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	s := m.session
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit

	case "1":
		m.switchTo(catalog.Solar)
	case "2":
		m.switchTo(catalog.Proxima)
	case "3":
		m.switchTo(catalog.Mov)
	case "tab":
		// Cycle through systems
		systems := catalog.Systems()
		m.switchTo(systems[(int(s.System())+1)%len(systems)])

	case "left":
		s.Orbit(-orbitStep, 0)
	case "right":
		s.Orbit(orbitStep, 0)
	case "up":
		s.Orbit(0, -orbitStep)
	case "down":
		s.Orbit(0, orbitStep)
	case "+", "=":
		s.Wheel(-1)
	case "-", "_":
		s.Wheel(1)
	case "r":
		s.ResetCamera()

	case "n":
		s.SelectNext()
	case "N":
		s.SelectPrev()
	case "v":
		s.ToggleVideo()
	case "esc":
		if s.Selection().ShowVideo {
			s.CloseVideo()
		} else {
			s.ClearSelection()
		}

	case "l":
		m.labels = !m.labels
	case "t":
		m.stars = !m.stars
	case "a":
		m.showAbout = !m.showAbout
	case "s":
		m.showStats = !m.showStats
	}
	return nil
}

func (m *Model) switchTo(sys catalog.System) {
	if err := m.session.SwitchSystem(sys); err != nil {
		m.log.Error("switch to %s: %v", sys, err)
		m.status.set("Switch failed: " + err.Error())
		return
	}
	m.status.set("Switched to " + sys.String())
}

// canvasTop is the terminal row of the first canvas row.
func (m Model) canvasTop() int {
	return lipgloss.Height(m.renderHeader(m.session.Snapshot()))
}

// handleMouse maps terminal coordinates onto the canvas and feeds the
// session's pointer gesture. A release off the canvas abandons the gesture.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	x, y := msg.X, msg.Y-m.canvasTop()
	inside := x >= 0 && y >= 0 && x < m.canvas.Width() && y < m.canvas.Height()

	switch {
	case msg.Button == tea.MouseButtonWheelUp && inside:
		m.session.Wheel(-1)
	case msg.Button == tea.MouseButtonWheelDown && inside:
		m.session.Wheel(1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if inside {
			m.session.Press(x, y)
		}
	case msg.Action == tea.MouseActionMotion:
		m.session.Move(x, y)
	case msg.Action == tea.MouseActionRelease:
		if inside {
			m.session.Release(x, y)
		} else {
			m.session.CancelGesture()
		}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.width < minWidth || m.height < minHeight {
		return "Terminal too small for the orrery view"
	}

	snap := m.session.Snapshot()
	m.renderer.Draw(m.canvas, m.session.Scene(), m.session.Camera(), render.Options{
		Stars:    m.stars,
		Labels:   m.labels,
		Selected: selectedName(snap.Selection),
	})

	header := m.renderHeader(snap)
	footer := m.renderFooter()
	// Rows left for the canvas and side panel. The frame never exceeds the
	// terminal, so the canvas stays at canvasTop.
	room := m.height - lipgloss.Height(header) - hudLines - lipgloss.Height(footer)

	body := m.canvas.String()
	if side := m.renderSidePanel(snap); side != "" {
		sideW := m.width - m.canvas.Width() - 2
		if sideW >= 24 {
			side = clipLines(lipgloss.NewStyle().Width(sideW).Render(side), room)
			if side != "" {
				body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", side)
			}
		} else if side = clipLines(side, room-m.canvas.Height()); side != "" {
			body = lipgloss.JoinVertical(lipgloss.Left, body, side)
		}
	}

	return header + "\n" + body + "\n" + m.renderHUD(snap) + "\n" + footer
}

// clipLines keeps at most n lines of s, marking a cut with an ellipsis.
func clipLines(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	lines = append(lines[:n-1], dimStyle.Render("  …"))
	return strings.Join(lines, "\n")
}

func selectedName(sel state.SelectionState) string {
	if sel.Selected == nil {
		return ""
	}
	return sel.Selected.Name
}

func (m Model) renderHeader(snap state.Snapshot) string {
	var b strings.Builder

	title := "  " + version.Name + " · " + snap.Info.Title
	runes := []rune(title)
	for col, r := range runes {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(gradientColor(col, 0, len(runes), 1)))
		b.WriteString(style.Render(string(r)))
	}
	b.WriteString("\n")
	b.WriteString(m.renderTabs(snap.System))
	b.WriteString("\n")
	return b.String()
}

// gradientColor returns a hex color for a position in the title gradient.
// Blue (#3B82F6) -> Purple (#8B5CF6) -> Magenta (#D946EF), dimming by row.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(max(width, 1))
	yRatio := float64(row) / float64(max(height, 1))

	var r, g, b float64
	if xRatio < 0.5 {
		t := xRatio / 0.5
		r, g, b = 59+t*(139-59), 130+t*(92-130), 246
	} else {
		t := (xRatio - 0.5) / 0.5
		r, g, b = 139+t*(217-139), 92+t*(70-92), 246+t*(239-246)
	}

	f := 1.0 - yRatio*0.5
	return fmt.Sprintf("#%02X%02X%02X", clampByte(r*f), clampByte(g*f), clampByte(b*f))
}

func clampByte(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return int(v)
	}
}

func (m Model) renderTabs(active catalog.System) string {
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, sys := range catalog.Systems() {
		tab := fmt.Sprintf("[%d] %s", i+1, tabTitle(sys))
		if sys == active {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func tabTitle(sys catalog.System) string {
	switch sys {
	case catalog.Proxima:
		return "Proxima"
	case catalog.Mov:
		return "Mov"
	default:
		return "Solar"
	}
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	// Animated spinner frames
	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	help := dimStyle.Render("drag: orbit | wheel/+/-: zoom | click/n/N: select | v: video | esc: close | l: labels | t: stars | a: about | s: stats | r: reset | q: quit")
	footer := "  " + accentStyle.Render(spinner) + "  " + help

	if msg := m.status.current(time.Now()); msg != "" {
		footer += "\n  " + dimStyle.Render(msg)
	}
	return footer
}

// Canvas returns the canvas drawn by the last View call.
func (m Model) Canvas() *render.Canvas {
	return m.canvas
}

// Labels reports whether all bodies are labeled.
func (m Model) Labels() bool { return m.labels }

// Stars reports whether the background is drawn.
func (m Model) Stars() bool { return m.stars }

func animTickCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}
