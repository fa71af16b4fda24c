// Package state owns the interactive session: the active system, its scene
// and camera, and what the user has selected.
package state

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/litescript/ls-orrery/internal/camera"
	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/pick"
	"github.com/litescript/ls-orrery/internal/render"
	"github.com/litescript/ls-orrery/internal/scene"
)

// ErrClosed is returned by operations on a closed session.
var ErrClosed = errors.New("session closed")

// EventType represents the type of session event.
type EventType string

const (
	EventSwitch     EventType = "SWITCH"
	EventSelect     EventType = "SELECT"
	EventDeselect   EventType = "DESELECT"
	EventVideoOpen  EventType = "VIDEO_OPEN"
	EventVideoClose EventType = "VIDEO_CLOSE"
)

// Event records a user-visible state change.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	System    string    `json:"system"`
	Body      string    `json:"body,omitempty"`
}

// SelectionState is what the user has picked and whether its video overlay
// is showing. ShowVideo implies Selected is non-nil and has ShowVideo set.
type SelectionState struct {
	Selected  *catalog.Body
	ShowVideo bool
}

// Config holds configuration for a session.
type Config struct {
	System         catalog.System
	Camera         camera.Config
	ClickThreshold int
	StarCount      int
	Seed           int64 // 0 seeds from the clock
	MaxEvents      int
	Logger         *logging.Logger
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		System:         catalog.Solar,
		Camera:         camera.DefaultConfig(),
		ClickThreshold: pick.DefaultClickThreshold,
		StarCount:      scene.DefaultStarCount,
		MaxEvents:      50,
	}
}

// Session handles all interactive state with thread-safe access. Listeners
// run after the lock is released and may call back into the session.
type Session struct {
	mu sync.RWMutex

	cfg         Config
	log         *logging.Logger
	rng         *rand.Rand
	tracker     *scene.Tracker
	loadCatalog func(catalog.System) catalog.Catalog

	system  catalog.System
	scene   *scene.Scene
	cam     *camera.Orbit
	pointer *pick.Pointer

	surfaceW, surfaceH int

	sel SelectionState

	onSelect []func(*catalog.Body)
	onVideo  []func(bool)

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	closed bool
}

// notice is a pending listener call collected under the lock.
type notice struct {
	selChanged   bool
	selected     *catalog.Body
	videoChanged bool
	video        bool
}

// New creates a session and builds the scene for cfg.System.
func New(cfg Config) (*Session, error) {
	if cfg.MaxEvents <= 0 {
		cfg.MaxEvents = 50
	}
	if cfg.StarCount < 0 {
		cfg.StarCount = 0
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}

	s := &Session{
		cfg:         cfg,
		log:         log.With("state"),
		rng:         rand.New(rand.NewSource(seed)),
		tracker:     scene.NewTracker(),
		loadCatalog: catalog.Load,
		cam:         camera.New(cfg.Camera),
		pointer:     pick.NewPointer(cfg.ClickThreshold),
		maxEvents:   cfg.MaxEvents,
		events:      make([]Event, 0, cfg.MaxEvents),
	}
	sc, err := s.build(cfg.System)
	if err != nil {
		return nil, err
	}
	s.install(cfg.System, sc)
	return s, nil
}

// build creates the scene for sys without touching the active one.
// Callers hold the lock or own s exclusively.
func (s *Session) build(sys catalog.System) (*scene.Scene, error) {
	sc, err := scene.Build(s.loadCatalog(sys), scene.Options{
		StarCount:   s.cfg.StarCount,
		NebulaCount: scene.DefaultNebulaCount,
		CometCount:  scene.DefaultCometCount,
		Rand:        s.rng,
		Tracker:     s.tracker,
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", sys, err)
	}
	return sc, nil
}

// install makes sc the active scene for sys.
func (s *Session) install(sys catalog.System, sc *scene.Scene) {
	s.system = sys
	s.scene = sc
	st := s.tracker.Stats()
	s.log.Info("built %s: %d meshes, %d live handles", sys, len(sc.Meshes), st.Live)
}

// System returns the active system.
func (s *Session) System() catalog.System {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.system
}

// Scene returns the active scene. The frame loop is its only mutator.
func (s *Session) Scene() *scene.Scene {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scene
}

// Camera returns the camera.
func (s *Session) Camera() *camera.Orbit {
	return s.cam
}

// Tracker returns the resource tracker shared by every scene of the session.
func (s *Session) Tracker() *scene.Tracker {
	return s.tracker
}

// Selection returns a copy of the selection state.
func (s *Session) Selection() SelectionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectionCopy()
}

func (s *Session) selectionCopy() SelectionState {
	out := s.sel
	if out.Selected != nil {
		b := *out.Selected
		out.Selected = &b
	}
	return out
}

// Closed reports whether Close has run.
func (s *Session) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// Resize sets the canvas size in cells and refits the camera aspect.
func (s *Session) Resize(w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	s.surfaceW, s.surfaceH = w, h
	s.cam.SetAspect(render.Aspect(w, h))
}

// Surface returns the canvas size in cells.
func (s *Session) Surface() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.surfaceW, s.surfaceH
}

// Tick advances the scene and the camera easing by dt.
func (s *Session) Tick(dt time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.cam.Advance()
	return s.scene.Step(dt)
}

// Wheel zooms by delta notches. Positive values zoom out.
func (s *Session) Wheel(delta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.cam.Zoom(delta)
}

// Orbit rotates the camera by a keyboard step in radians.
func (s *Session) Orbit(dAzimuth, dElevation float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.cam.Rotate(dAzimuth, dElevation)
}

// ResetCamera restores the starting viewpoint.
func (s *Session) ResetCamera() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam.Reset()
}

// Press begins a pointer gesture at a canvas cell.
func (s *Session) Press(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pointer.Press(x, y)
}

// Move feeds pointer motion. Once the gesture is a drag the camera orbits
// and the selection is left alone.
func (s *Session) Move(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if dx, dy, drag := s.pointer.Move(x, y); drag {
		s.cam.Drag(float64(dx), float64(dy))
	}
}

// Release ends a pointer gesture. A gesture that never became a drag is a
// click at (x, y). It reports whether a click happened.
func (s *Session) Release(x, y int) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	if dx, dy, drag := s.pointer.Move(x, y); drag {
		s.cam.Drag(float64(dx), float64(dy))
	}
	click := s.pointer.Release(x, y)
	var n notice
	if click {
		n = s.clickLocked(x, y)
	}
	s.mu.Unlock()
	s.notify(n)
	return click
}

// CancelGesture drops the pointer gesture in progress without a click.
func (s *Session) CancelGesture() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pointer.Cancel()
}

// Click picks the body under a canvas cell. A hit selects it and shows its
// video if it has one; a miss clears the selection and hides the video.
func (s *Session) Click(x, y int) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	n := s.clickLocked(x, y)
	s.mu.Unlock()
	s.notify(n)
}

func (s *Session) clickLocked(x, y int) notice {
	if s.surfaceW <= 0 || s.surfaceH <= 0 {
		return notice{}
	}
	nx, ny := pick.ToNDC(x, y, s.surfaceW, s.surfaceH)
	hit, ok := pick.Cast(pick.FromCamera(s.cam, nx, ny), s.scene.Pickables())
	if !ok {
		s.log.Debug("click (%d,%d) missed", x, y)
		return s.setSelectionLocked(nil)
	}
	s.log.Debug("click (%d,%d) hit %s at %.1f", x, y, hit.Mesh.Body.Name, hit.Distance)
	return s.setSelectionLocked(hit.Mesh.Body)
}

// setSelectionLocked applies a new selection. The video overlay follows the
// body's ShowVideo flag.
func (s *Session) setSelectionLocked(b *catalog.Body) notice {
	var n notice
	prev := s.sel
	s.sel = SelectionState{Selected: b, ShowVideo: b != nil && b.ShowVideo}

	if name(prev.Selected) != name(b) {
		n.selChanged = true
		n.selected = s.sel.Selected
		if b == nil {
			s.addEvent(EventDeselect, name(prev.Selected))
		} else {
			s.addEvent(EventSelect, b.Name)
		}
		s.log.Info("selection: %q -> %q", name(prev.Selected), name(b))
	}
	if prev.ShowVideo != s.sel.ShowVideo {
		n.videoChanged = true
		n.video = s.sel.ShowVideo
		s.addVideoEvent(s.sel.ShowVideo, name(b))
	}
	if n.selected != nil {
		c := *n.selected
		n.selected = &c
	}
	return n
}

func (s *Session) addVideoEvent(open bool, body string) {
	if open {
		s.addEvent(EventVideoOpen, body)
	} else {
		s.addEvent(EventVideoClose, body)
	}
}

func name(b *catalog.Body) string {
	if b == nil {
		return ""
	}
	return b.Name
}

// Select picks a body by name, as if it had been clicked. It reports
// whether a pickable body of that name exists in the active system.
func (s *Session) Select(bodyName string) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	m := s.scene.MeshByName(bodyName)
	if m == nil || !m.Pickable() {
		s.mu.Unlock()
		return false
	}
	n := s.setSelectionLocked(m.Body)
	s.mu.Unlock()
	s.notify(n)
	return true
}

// SelectNext moves the selection to the next pickable body, wrapping.
func (s *Session) SelectNext() { s.cycle(1) }

// SelectPrev moves the selection to the previous pickable body, wrapping.
func (s *Session) SelectPrev() { s.cycle(-1) }

func (s *Session) cycle(step int) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	meshes := s.scene.Pickables()
	if len(meshes) == 0 {
		s.mu.Unlock()
		return
	}
	idx := -1
	for i, m := range meshes {
		if m.Body.Name == name(s.sel.Selected) {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && step > 0:
		idx = 0
	case idx < 0:
		idx = len(meshes) - 1
	default:
		idx = (idx + step + len(meshes)) % len(meshes)
	}
	n := s.setSelectionLocked(meshes[idx].Body)
	s.mu.Unlock()
	s.notify(n)
}

// ClearSelection deselects and hides the video overlay.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	n := s.setSelectionLocked(nil)
	s.mu.Unlock()
	s.notify(n)
}

// CloseVideo hides the video overlay and keeps the selection.
func (s *Session) CloseVideo() {
	s.setVideo(false)
}

// ToggleVideo shows or hides the video overlay. Showing only works when the
// selected body has a video.
func (s *Session) ToggleVideo() {
	s.mu.RLock()
	show := !s.sel.ShowVideo
	s.mu.RUnlock()
	s.setVideo(show)
}

func (s *Session) setVideo(show bool) {
	s.mu.Lock()
	if s.closed || s.sel.ShowVideo == show {
		s.mu.Unlock()
		return
	}
	if show && (s.sel.Selected == nil || !s.sel.Selected.ShowVideo) {
		s.mu.Unlock()
		return
	}
	s.sel.ShowVideo = show
	s.addVideoEvent(show, name(s.sel.Selected))
	s.mu.Unlock()
	s.notify(notice{videoChanged: true, video: show})
}

// SwitchSystem builds the scene for sys, tears down the active scene, and
// clears the selection and video overlay. Switching to the active system
// rebuilds it. If the new scene cannot be built the active one is kept
// untouched.
func (s *Session) SwitchSystem(sys catalog.System) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	sc, err := s.build(sys)
	if err != nil {
		s.log.Error("switch %s -> %s failed: %v", s.system, sys, err)
		s.mu.Unlock()
		return err
	}
	released := s.scene.Dispose()
	s.log.Info("switch %s -> %s: released %d handles", s.system, sys, released)

	n := s.setSelectionLocked(nil)
	s.pointer.Cancel()
	s.install(sys, sc)
	s.addEvent(EventSwitch, "")
	s.mu.Unlock()
	s.notify(n)
	return nil
}

// OnSelectionChange registers a listener called with a copy of the newly
// selected body, or nil when the selection is cleared.
func (s *Session) OnSelectionChange(fn func(*catalog.Body)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || fn == nil {
		return
	}
	s.onSelect = append(s.onSelect, fn)
}

// OnVideoVisibilityChange registers a listener called when the video overlay
// is shown or hidden.
func (s *Session) OnVideoVisibilityChange(fn func(bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || fn == nil {
		return
	}
	s.onVideo = append(s.onVideo, fn)
}

func (s *Session) notify(n notice) {
	if !n.selChanged && !n.videoChanged {
		return
	}
	s.mu.RLock()
	onSelect := append([]func(*catalog.Body){}, s.onSelect...)
	onVideo := append([]func(bool){}, s.onVideo...)
	s.mu.RUnlock()

	if n.selChanged {
		for _, fn := range onSelect {
			fn(n.selected)
		}
	}
	if n.videoChanged {
		for _, fn := range onVideo {
			fn(n.video)
		}
	}
}

// Close disposes the scene, drops listeners and makes every later call a
// no-op. It is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	released := s.scene.Dispose()
	s.onSelect = nil
	s.onVideo = nil
	s.sel = SelectionState{}
	s.pointer.Cancel()
	s.log.Info("closed: released %d handles, %d live", released, s.tracker.Live())
}

// addEvent adds an event to the ring buffer.
func (s *Session) addEvent(t EventType, body string) {
	e := Event{Type: t, Timestamp: time.Now(), System: s.system.String(), Body: body}
	if len(s.events) < s.maxEvents {
		s.events = append(s.events, e)
	} else {
		s.events[s.eventWriteAt] = e
		s.eventWriteAt = (s.eventWriteAt + 1) % s.maxEvents
	}
}

// getEventsOrdered returns events in chronological order.
func (s *Session) getEventsOrdered() []Event {
	if len(s.events) == 0 {
		return nil
	}
	if len(s.events) < s.maxEvents {
		result := make([]Event, len(s.events))
		copy(result, s.events)
		return result
	}
	result := make([]Event, s.maxEvents)
	for i := 0; i < s.maxEvents; i++ {
		result[i] = s.events[(s.eventWriteAt+i)%s.maxEvents]
	}
	return result
}

// RecentEvents returns the last n events.
func (s *Session) RecentEvents(n int) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// Snapshot represents an immutable snapshot of session state.
type Snapshot struct {
	System      catalog.System
	Info        catalog.SystemInfo
	Selection   SelectionState
	Bodies      []string // pickable body names in scene order
	Elapsed     time.Duration
	Zoom        float64
	Azimuth     float64
	Elevation   float64
	LiveHandles int
	Events      []Event
	Closed      bool
}

// Snapshot returns a consistent snapshot of session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var bodies []string
	for _, m := range s.scene.Pickables() {
		bodies = append(bodies, m.Body.Name)
	}
	return Snapshot{
		System:      s.system,
		Info:        s.scene.Catalog.Info,
		Selection:   s.selectionCopy(),
		Bodies:      bodies,
		Elapsed:     s.scene.Elapsed,
		Zoom:        s.cam.Radius(),
		Azimuth:     s.cam.Azimuth(),
		Elevation:   s.cam.Elevation(),
		LiveHandles: s.tracker.Live(),
		Events:      s.getEventsOrdered(),
		Closed:      s.closed,
	}
}
