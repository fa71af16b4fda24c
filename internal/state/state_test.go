package state

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/pick"
	"github.com/litescript/ls-orrery/internal/scene"
)

const (
	testW = 400
	testH = 120
)

func newTestSession(t *testing.T, sys catalog.System) *Session {
	t.Helper()
	cfg := DefaultConfig()
	cfg.System = sys
	cfg.StarCount = 0
	cfg.Seed = 42
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(s.Close)
	s.Resize(testW, testH)
	return s
}

// cellFor finds a canvas cell whose pick ray hits the named body.
func cellFor(t *testing.T, s *Session, name string) (int, int) {
	t.Helper()
	meshes := s.Scene().Pickables()
	for y := 0; y < testH; y++ {
		for x := 0; x < testW; x++ {
			nx, ny := pick.ToNDC(x, y, testW, testH)
			hit, ok := pick.Cast(pick.FromCamera(s.Camera(), nx, ny), meshes)
			if ok && hit.Mesh.Body.Name == name {
				return x, y
			}
		}
	}
	t.Fatalf("no cell picks %q", name)
	return 0, 0
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t, catalog.Proxima)

	if s.System() != catalog.Proxima {
		t.Errorf("System = %v, want proxima", s.System())
	}
	if sel := s.Selection(); sel.Selected != nil || sel.ShowVideo {
		t.Errorf("initial selection = %+v, want empty", sel)
	}
	if s.Tracker().Live() == 0 {
		t.Error("scene should hold live handles")
	}
	if w, h := s.Surface(); w != testW || h != testH {
		t.Errorf("Surface = %dx%d, want %dx%d", w, h, testW, testH)
	}
}

func TestClickSelectsAndMissClears(t *testing.T) {
	s := newTestSession(t, catalog.Solar)

	x, y := cellFor(t, s, "Sun")
	s.Click(x, y)
	sel := s.Selection()
	if sel.Selected == nil || sel.Selected.Name != "Sun" {
		t.Fatalf("selected = %v, want Sun", sel.Selected)
	}
	if sel.ShowVideo {
		t.Error("Sun has no video")
	}

	// The top-left ray points above the orbital plane.
	s.Click(0, 0)
	if sel := s.Selection(); sel.Selected != nil || sel.ShowVideo {
		t.Errorf("miss should clear selection, got %+v", sel)
	}
}

func TestClickMillersPlanetShowsVideo(t *testing.T) {
	s := newTestSession(t, catalog.Solar)

	var videoCalls []bool
	s.OnVideoVisibilityChange(func(v bool) { videoCalls = append(videoCalls, v) })

	x, y := cellFor(t, s, "Miller's Planet")
	s.Click(x, y)
	if sel := s.Selection(); !sel.ShowVideo || sel.Selected.Name != "Miller's Planet" {
		t.Fatalf("selection = %+v, want Miller's Planet with video", sel)
	}

	ex, ey := cellFor(t, s, "Earth")
	s.Click(ex, ey)
	if sel := s.Selection(); sel.ShowVideo {
		t.Error("selecting another body should hide the video")
	}
	if len(videoCalls) != 2 || !videoCalls[0] || videoCalls[1] {
		t.Errorf("video callbacks = %v, want [true false]", videoCalls)
	}
}

func TestSwitchSystemBuildFailureKeepsScene(t *testing.T) {
	s := newTestSession(t, catalog.Solar)
	s.Select("Earth")
	s.loadCatalog = func(sys catalog.System) catalog.Catalog {
		cat := catalog.Load(sys)
		if sys == catalog.Mov {
			cat.Bodies = append(cat.Bodies, cat.Bodies[0])
		}
		return cat
	}

	active := s.Scene()
	live := s.Tracker().Live()
	if err := s.SwitchSystem(catalog.Mov); err == nil {
		t.Fatal("SwitchSystem with an invalid catalog should fail")
	}

	if s.Scene() != active || active.Disposed() {
		t.Error("active scene should be kept when the new one cannot be built")
	}
	if s.System() != catalog.Solar {
		t.Errorf("System = %v, want solar", s.System())
	}
	if got := s.Tracker().Live(); got != live {
		t.Errorf("live handles = %d, want %d", got, live)
	}
	if sel := s.Selection(); sel.Selected == nil || sel.Selected.Name != "Earth" {
		t.Errorf("selection = %v, want Earth", sel.Selected)
	}
	if err := s.Tick(16 * time.Millisecond); err != nil {
		t.Errorf("Tick after failed switch: %v", err)
	}
	if err := s.SwitchSystem(catalog.Proxima); err != nil {
		t.Errorf("later switch: %v", err)
	}
}

func TestCancelGestureSuppressesClick(t *testing.T) {
	s := newTestSession(t, catalog.Solar)
	x, y := cellFor(t, s, "Sun")

	s.Press(x, y)
	s.CancelGesture()
	if s.Release(x, y) {
		t.Error("release after cancel should not click")
	}
	if sel := s.Selection(); sel.Selected != nil {
		t.Errorf("selected = %v, want none", sel.Selected.Name)
	}
}

func TestGestureDragKeepsSelection(t *testing.T) {
	s := newTestSession(t, catalog.Solar)
	s.Select("Sun")
	az := s.Camera().Azimuth()

	s.Press(10, 10)
	s.Move(20, 10)
	s.Move(30, 12)
	if s.Release(30, 12) {
		t.Error("drag reported as click")
	}
	if sel := s.Selection(); sel.Selected == nil || sel.Selected.Name != "Sun" {
		t.Errorf("drag changed selection to %v", sel.Selected)
	}
	if s.Camera().Azimuth() == az {
		t.Error("drag should orbit the camera")
	}
}

func TestGestureClick(t *testing.T) {
	s := newTestSession(t, catalog.Solar)
	x, y := cellFor(t, s, "Sun")

	s.Press(x, y)
	s.Move(x, y)
	if !s.Release(x, y) {
		t.Fatal("stationary press/release should click")
	}
	if sel := s.Selection(); sel.Selected == nil || sel.Selected.Name != "Sun" {
		t.Errorf("selected = %v, want Sun", sel.Selected)
	}
}

func TestSelectVideoRules(t *testing.T) {
	s := newTestSession(t, catalog.Solar)

	tests := []struct {
		name      string
		action    func()
		wantBody  string
		wantVideo bool
	}{
		{"select miller", func() { s.Select("Miller's Planet") }, "Miller's Planet", true},
		{"close video keeps selection", s.CloseVideo, "Miller's Planet", false},
		{"toggle reopens", s.ToggleVideo, "Miller's Planet", true},
		{"select earth", func() { s.Select("Earth") }, "Earth", false},
		{"toggle without video is ignored", s.ToggleVideo, "Earth", false},
		{"clear", s.ClearSelection, "", false},
		{"close video with nothing selected", s.CloseVideo, "", false},
	}
	for _, tt := range tests {
		tt.action()
		sel := s.Selection()
		if got := name(sel.Selected); got != tt.wantBody {
			t.Errorf("%s: selected = %q, want %q", tt.name, got, tt.wantBody)
		}
		if sel.ShowVideo != tt.wantVideo {
			t.Errorf("%s: ShowVideo = %v, want %v", tt.name, sel.ShowVideo, tt.wantVideo)
		}
	}
}

func TestSelectRejectsUnknownAndUnpickable(t *testing.T) {
	s := newTestSession(t, catalog.Mov)
	if s.Select("Gargantua") {
		t.Error("Gargantua should not be selectable")
	}
	if s.Select("Earth") {
		t.Error("Earth is not in the mov system")
	}
	if !s.Select("Tesseract") {
		t.Error("Tesseract should be selectable")
	}
}

func TestSelectCycle(t *testing.T) {
	s := newTestSession(t, catalog.Proxima)

	s.SelectNext()
	if got := name(s.Selection().Selected); got != "Proxima Centauri" {
		t.Errorf("first next = %q, want Proxima Centauri", got)
	}
	s.SelectPrev()
	s.SelectPrev()
	if got := name(s.Selection().Selected); got != "Proxima c" {
		t.Errorf("after two prev = %q, want Proxima c", got)
	}

	s.ClearSelection()
	s.SelectPrev()
	if got := name(s.Selection().Selected); got != "Proxima d" {
		t.Errorf("prev from none = %q, want last body", got)
	}
}

func TestSwitchSystem(t *testing.T) {
	s := newTestSession(t, catalog.Solar)
	s.Select("Miller's Planet")
	for i := 0; i < 300; i++ {
		if err := s.Tick(16 * time.Millisecond); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}

	var gotSel []*catalog.Body
	var gotVideo []bool
	s.OnSelectionChange(func(b *catalog.Body) { gotSel = append(gotSel, b) })
	s.OnVideoVisibilityChange(func(v bool) { gotVideo = append(gotVideo, v) })

	old := s.Scene()
	if err := s.SwitchSystem(catalog.Mov); err != nil {
		t.Fatalf("SwitchSystem: %v", err)
	}

	if !old.Disposed() || old.ActiveTimers() != 0 {
		t.Error("old scene should be disposed with timers cancelled")
	}
	if sel := s.Selection(); sel.Selected != nil || sel.ShowVideo {
		t.Errorf("selection after switch = %+v, want empty", sel)
	}
	if len(gotSel) != 1 || gotSel[0] != nil {
		t.Errorf("selection callbacks = %v, want [nil]", gotSel)
	}
	if len(gotVideo) != 1 || gotVideo[0] {
		t.Errorf("video callbacks = %v, want [false]", gotVideo)
	}

	fresh, err := scene.Build(catalog.Load(catalog.Mov), scene.Options{
		NebulaCount: scene.DefaultNebulaCount,
		CometCount:  scene.DefaultCometCount,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer fresh.Dispose()
	if got, want := s.Tracker().Live(), fresh.Tracker().Live(); got != want {
		t.Errorf("live handles = %d, want %d (only the new scene)", got, want)
	}
	if s.System() != catalog.Mov {
		t.Errorf("System = %v, want mov", s.System())
	}
}

func TestListenerMayReenter(t *testing.T) {
	s := newTestSession(t, catalog.Solar)
	var seen string
	s.OnSelectionChange(func(*catalog.Body) { seen = name(s.Selection().Selected) })
	s.Select("Mars")
	if seen != "Mars" {
		t.Errorf("listener saw %q, want Mars", seen)
	}
}

func TestCallbacksOnlyOnChange(t *testing.T) {
	s := newTestSession(t, catalog.Solar)
	calls := 0
	s.OnSelectionChange(func(*catalog.Body) { calls++ })
	s.Select("Venus")
	s.Select("Venus")
	s.ClearSelection()
	s.ClearSelection()
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestClose(t *testing.T) {
	s := newTestSession(t, catalog.Solar)
	calls := 0
	s.OnSelectionChange(func(*catalog.Body) { calls++ })

	s.Close()
	s.Close()

	if s.Tracker().Live() != 0 {
		t.Errorf("live handles after close = %d, want 0", s.Tracker().Live())
	}
	if !s.Closed() {
		t.Error("Closed should be true")
	}
	if err := s.Tick(time.Second); !errors.Is(err, ErrClosed) {
		t.Errorf("Tick err = %v, want ErrClosed", err)
	}
	if err := s.SwitchSystem(catalog.Mov); !errors.Is(err, ErrClosed) {
		t.Errorf("SwitchSystem err = %v, want ErrClosed", err)
	}
	if s.Select("Earth") {
		t.Error("Select should fail after close")
	}
	s.Click(testW/2, testH/2)
	if calls != 0 {
		t.Errorf("listener called %d times after close", calls)
	}
}

func TestWheelAndTickClampZoom(t *testing.T) {
	s := newTestSession(t, catalog.Solar)
	cfg := s.Camera().Config()

	for i := 0; i < 100; i++ {
		s.Wheel(-3)
		_ = s.Tick(16 * time.Millisecond)
		if r := s.Camera().Radius(); r < cfg.MinZoom-1e-9 || r > cfg.MaxZoom+1e-9 {
			t.Fatalf("radius %v outside [%v, %v]", r, cfg.MinZoom, cfg.MaxZoom)
		}
	}
	if math.Abs(s.Camera().Radius()-cfg.MinZoom) > 0.5 {
		t.Errorf("radius = %v, want near %v", s.Camera().Radius(), cfg.MinZoom)
	}
}

func TestEventsAndSnapshot(t *testing.T) {
	s := newTestSession(t, catalog.Solar)
	s.Select("Miller's Planet")
	s.CloseVideo()
	if err := s.SwitchSystem(catalog.Proxima); err != nil {
		t.Fatal(err)
	}

	wantTypes := []EventType{EventSelect, EventVideoOpen, EventVideoClose, EventDeselect, EventSwitch}
	events := s.RecentEvents(10)
	if len(events) != len(wantTypes) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(wantTypes), events)
	}
	for i, e := range events {
		if e.Type != wantTypes[i] {
			t.Errorf("event %d = %s, want %s", i, e.Type, wantTypes[i])
		}
	}
	if last := s.RecentEvents(1); len(last) != 1 || last[0].System != "proxima" {
		t.Errorf("last event = %+v, want switch recorded under proxima", last)
	}

	snap := s.Snapshot()
	if snap.System != catalog.Proxima || len(snap.Bodies) != 4 {
		t.Errorf("snapshot = %v with %d bodies, want proxima with 4", snap.System, len(snap.Bodies))
	}
	if snap.Info.Title == "" {
		t.Error("snapshot should carry system info")
	}
	if snap.LiveHandles != s.Tracker().Live() {
		t.Errorf("LiveHandles = %d, want %d", snap.LiveHandles, s.Tracker().Live())
	}
}

func TestEventRingBuffer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StarCount = 0
	cfg.MaxEvents = 3
	s, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	for _, b := range []string{"Mercury", "Venus", "Earth", "Mars"} {
		s.Select(b)
	}
	events := s.RecentEvents(10)
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[0].Body != "Venus" || events[2].Body != "Mars" {
		t.Errorf("events = %+v, want Venus..Mars in order", events)
	}
}
