package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/litescript/ls-orrery/internal/state"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	factStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("249"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	videoStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#E84A27")).
			Padding(0, 1)
)

// renderSidePanel stacks the facts, video, about and stats panels that are
// currently visible.
func (m Model) renderSidePanel(snap state.Snapshot) string {
	width := m.width - m.canvas.Width() - 2
	if width < 24 {
		width = m.width - 2
	}

	var parts []string
	if p := renderFacts(snap.Selection, width); p != "" {
		parts = append(parts, p)
	}
	if snap.Selection.ShowVideo {
		parts = append(parts, renderVideo(snap, width))
	}
	if m.showAbout {
		parts = append(parts, renderAbout(snap, width))
	}
	if m.showStats {
		parts = append(parts, m.renderStats(snap))
	}
	return strings.Join(parts, "\n\n")
}

// renderFacts shows the selected body's name, description and facts.
func renderFacts(sel state.SelectionState, width int) string {
	b := sel.Selected
	if b == nil {
		return ""
	}
	wrap := lipgloss.NewStyle().Width(width)

	var out strings.Builder
	out.WriteString(headerStyle.Render("◆ " + b.Name))
	out.WriteString("\n")
	out.WriteString(wrap.Render(valueStyle.Render(b.Description)))
	for _, f := range b.Facts {
		out.WriteString("\n")
		out.WriteString(wrap.Render(factStyle.Render("• " + f)))
	}
	return out.String()
}

// renderVideo is the embedded video overlay. A terminal cannot play the
// clip, so the panel names it and links to it.
func renderVideo(snap state.Snapshot, width int) string {
	title := snap.Info.VideoTitle
	if title == "" {
		title = snap.Selection.Selected.Name
	}
	content := headerStyle.Render("▶ "+title) + "\n" +
		valueStyle.Render(snap.Info.VideoURL) + "\n" +
		dimStyle.Render("v: hide | esc: close")
	return videoStyle.Width(max(width-2, 10)).Render(content)
}

func renderAbout(snap state.Snapshot, width int) string {
	wrap := lipgloss.NewStyle().Width(width)
	return headerStyle.Render("About "+snap.Info.Title) + "\n" + wrap.Render(factStyle.Render(snap.Info.About))
}

// renderStats plots recent frame times.
func (m Model) renderStats(snap state.Snapshot) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Stats"))
	b.WriteString("\n")
	if len(m.frameMs) > 1 {
		chart := asciigraph.Plot(m.frameMs, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("frame ms"))
		b.WriteString(graphStyle.Render(chart))
		b.WriteString("\n")
	}
	b.WriteString(labelStyle.Render("Elapsed "))
	b.WriteString(valueStyle.Render(snap.Elapsed.Round(100 * time.Millisecond).String()))
	b.WriteString(labelStyle.Render("  Handles "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d", snap.LiveHandles)))
	return b.String()
}

// renderHUD is the one-line camera and display summary under the canvas.
func (m Model) renderHUD(snap state.Snapshot) string {
	onOff := func(v bool) string {
		if v {
			return "on"
		}
		return "off"
	}

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("System:"))
	b.WriteString(valueStyle.Render(snap.System.String()))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Zoom:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.0f", snap.Zoom)))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Az:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.0f°", math.Mod(snap.Azimuth*180/math.Pi+360, 360))))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("El:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.0f°", 90-snap.Elevation*180/math.Pi)))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Labels:"))
	b.WriteString(valueStyle.Render(onOff(m.labels)))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Stars:"))
	b.WriteString(valueStyle.Render(onOff(m.stars)))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Bodies:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d", len(snap.Bodies))))
	return b.String()
}
