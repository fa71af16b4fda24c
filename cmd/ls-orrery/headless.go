package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/render"
	"github.com/litescript/ls-orrery/internal/state"
)

// writeCatalog prints a summary table of every system.
func writeCatalog(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, sys := range catalog.Systems() {
		cat := catalog.Load(sys)
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s\t%s\n", strings.ToUpper(sys.String()), cat.Info.Title)
		fmt.Fprintln(tw, "BODY\tRADIUS\tDISTANCE\tORBIT\tNOTES")
		for _, b := range cat.Bodies {
			fmt.Fprintf(tw, "%s\t%.1f\t%.0f\t%.4f\t%s\n", b.Name, b.Radius, b.Distance, b.OrbitSpeed, notes(b))
		}
	}
	return tw.Flush()
}

func notes(b catalog.Body) string {
	var n []string
	if b.IsCentral() {
		n = append(n, "central")
	}
	if !b.Pickable() {
		n = append(n, "not selectable")
	}
	if b.ShowVideo {
		n = append(n, "video")
	}
	switch b.Decoration {
	case catalog.DecorRings:
		n = append(n, "rings")
	case catalog.DecorWaterShell:
		n = append(n, "ocean")
	case catalog.DecorHalo:
		n = append(n, "halo")
	}
	if b.Shape == catalog.ShapeCube {
		n = append(n, "cube")
	}
	return strings.Join(n, ", ")
}

type frameOptions struct {
	cols, rows int
	after      time.Duration
	color      bool
}

// writeFrame builds the configured system, advances it and prints one frame.
func writeFrame(w io.Writer, cfg config.Config, logger *logging.Logger, opts frameOptions) error {
	session, err := state.New(cfg.Session(logger))
	if err != nil {
		return err
	}
	defer session.Close()

	session.Resize(opts.cols, opts.rows)
	step := cfg.FrameInterval()
	for elapsed := time.Duration(0); elapsed < opts.after; elapsed += step {
		if err := session.Tick(step); err != nil {
			return err
		}
	}

	canvas := render.NewCanvas(opts.cols, opts.rows)
	render.NewRenderer(cfg.Seed).Draw(canvas, session.Scene(), session.Camera(), render.Options{
		Stars:  cfg.Stars > 0,
		Labels: cfg.Labels,
	})

	out := canvas.Plain()
	if opts.color {
		out = canvas.String()
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// parseSize parses COLSxROWS.
func parseSize(s string) (int, int, error) {
	c, r, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("frame size %q: want COLSxROWS", s)
	}
	cols, err := strconv.Atoi(strings.TrimSpace(c))
	if err != nil || cols <= 0 {
		return 0, 0, fmt.Errorf("frame size %q: bad column count", s)
	}
	rows, err := strconv.Atoi(strings.TrimSpace(r))
	if err != nil || rows <= 0 {
		return 0, 0, fmt.Errorf("frame size %q: bad row count", s)
	}
	return cols, rows, nil
}
