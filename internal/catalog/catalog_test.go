package catalog

import (
	"errors"
	"testing"
)

func TestParseSystem(t *testing.T) {
	tests := []struct {
		in      string
		want    System
		wantErr bool
	}{
		{"solar", Solar, false},
		{"SOLAR", Solar, false},
		{" proxima ", Proxima, false},
		{"mov", Mov, false},
		{"movie", Mov, false},
		{"andromeda", Solar, true},
		{"", Solar, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSystem(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownSystem) {
					t.Errorf("ParseSystem(%q) error = %v, want ErrUnknownSystem", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSystem(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseSystem(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSystemStringRoundTrip(t *testing.T) {
	for _, s := range Systems() {
		got, err := ParseSystem(s.String())
		if err != nil || got != s {
			t.Errorf("ParseSystem(%q) = %v, %v", s.String(), got, err)
		}
	}
}

func TestAllCatalogsValidate(t *testing.T) {
	for _, s := range Systems() {
		c := Load(s)
		if c.System != s {
			t.Errorf("Load(%v).System = %v", s, c.System)
		}
		if err := c.Validate(); err != nil {
			t.Errorf("Load(%v).Validate() = %v", s, err)
		}
	}
}

func TestLoadReturnsCopy(t *testing.T) {
	c := Load(Solar)
	c.Bodies[0].Name = "Changed"
	c.Bodies[1].Facts[0] = "changed"

	fresh := Load(Solar)
	if fresh.Bodies[0].Name != "Sun" {
		t.Errorf("mutating a loaded catalog leaked into the table: %q", fresh.Bodies[0].Name)
	}
	if fresh.Bodies[1].Facts[0] == "changed" {
		t.Error("mutating facts leaked into the table")
	}
}

func TestCentralAndOrbiting(t *testing.T) {
	tests := []struct {
		sys      System
		central  string
		orbiting int
	}{
		{Solar, "Sun", 9},
		{Proxima, "Proxima Centauri", 3},
		{Mov, "Gargantua", 5},
	}

	for _, tt := range tests {
		t.Run(tt.sys.String(), func(t *testing.T) {
			c := Load(tt.sys)
			b, ok := c.Central()
			if !ok || b.Name != tt.central {
				t.Errorf("Central() = %q, %v, want %q", b.Name, ok, tt.central)
			}
			if got := len(c.Orbiting()); got != tt.orbiting {
				t.Errorf("len(Orbiting()) = %d, want %d", got, tt.orbiting)
			}
			for _, o := range c.Orbiting() {
				if o.IsCentral() {
					t.Errorf("Orbiting() returned central body %q", o.Name)
				}
			}
		})
	}
}

func TestVideoBodies(t *testing.T) {
	for _, s := range []System{Solar, Mov} {
		c := Load(s)
		b, ok := c.Find("Miller's Planet")
		if !ok {
			t.Fatalf("%v: Miller's Planet missing", s)
		}
		if !b.ShowVideo {
			t.Errorf("%v: Miller's Planet should carry ShowVideo", s)
		}
		if c.Info.VideoURL == "" {
			t.Errorf("%v: system with a video body has no VideoURL", s)
		}
		for _, other := range c.Bodies {
			if other.Name != "Miller's Planet" && other.ShowVideo {
				t.Errorf("%v: unexpected ShowVideo on %q", s, other.Name)
			}
		}
	}
}

func TestSpecialBodies(t *testing.T) {
	mov := Load(Mov)
	g, _ := mov.Find("Gargantua")
	if g.Pickable() {
		t.Error("Gargantua should not be pickable")
	}
	if g.Decoration != DecorHalo {
		t.Errorf("Gargantua decoration = %v, want DecorHalo", g.Decoration)
	}
	tess, _ := mov.Find("Tesseract")
	if tess.Shape != ShapeCube {
		t.Errorf("Tesseract shape = %v, want ShapeCube", tess.Shape)
	}

	solar := Load(Solar)
	sat, _ := solar.Find("Saturn")
	if sat.Decoration != DecorRings {
		t.Errorf("Saturn decoration = %v, want DecorRings", sat.Decoration)
	}
	sun, _ := solar.Find("Sun")
	if !sun.Pickable() {
		t.Error("Sun should be pickable")
	}
}

func TestValidateRejects(t *testing.T) {
	base := func() Catalog {
		return Catalog{System: Solar, Bodies: []Body{
			{Name: "Star", Radius: 1, Color: "#ffffff"},
			{Name: "Rock", Radius: 1, Distance: 5, Color: "#808080", OrbitSpeed: 0.01},
		}}
	}

	tests := []struct {
		name   string
		mutate func(c *Catalog)
	}{
		{"empty name", func(c *Catalog) { c.Bodies[1].Name = "" }},
		{"duplicate", func(c *Catalog) { c.Bodies[1].Name = "Star" }},
		{"zero radius", func(c *Catalog) { c.Bodies[1].Radius = 0 }},
		{"negative distance", func(c *Catalog) { c.Bodies[1].Distance = -1 }},
		{"negative orbit speed", func(c *Catalog) { c.Bodies[1].OrbitSpeed = -1 }},
		{"bad color", func(c *Catalog) { c.Bodies[1].Color = "blue" }},
		{"two centrals", func(c *Catalog) { c.Bodies[1].Distance = 0 }},
		{"no central", func(c *Catalog) { c.Bodies[0].Distance = 3 }},
	}

	if err := func() error { c := base(); return c.Validate() }(); err != nil {
		t.Fatalf("base catalog should validate: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
