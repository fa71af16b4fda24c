package scene

import "sync"

// Kind categorizes a tracked render resource.
type Kind int

const (
	KindGeometry Kind = iota
	KindMaterial
)

func (k Kind) String() string {
	switch k {
	case KindGeometry:
		return "geometry"
	case KindMaterial:
		return "material"
	default:
		return "unknown"
	}
}

// Handle identifies one allocated resource.
type Handle struct {
	id    int
	kind  Kind
	label string
}

// Label returns the debugging label the handle was created with.
func (h Handle) Label() string { return h.label }

// Kind returns the resource kind.
func (h Handle) Kind() Kind { return h.kind }

// TrackerStats summarizes tracker activity.
type TrackerStats struct {
	Created  int
	Released int
	Live     int
}

// Tracker records every geometry and material a scene allocates so that
// teardown can release all of them. A tracker may outlive several scenes.
type Tracker struct {
	mu       sync.Mutex
	next     int
	live     map[int]Handle
	created  int
	released int
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{live: make(map[int]Handle)}
}

// Alloc registers a new resource.
func (t *Tracker) Alloc(kind Kind, label string) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.next++
	h := Handle{id: t.next, kind: kind, label: label}
	t.live[h.id] = h
	t.created++
	return h
}

// Release frees a resource. Releasing an unknown or already released handle
// returns false.
func (t *Tracker) Release(h Handle) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.live[h.id]; !ok {
		return false
	}
	delete(t.live, h.id)
	t.released++
	return true
}

// Live returns the number of outstanding handles.
func (t *Tracker) Live() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}

// Stats returns a snapshot of tracker counters.
func (t *Tracker) Stats() TrackerStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return TrackerStats{Created: t.created, Released: t.released, Live: len(t.live)}
}

// LiveLabels lists labels of outstanding handles, useful when hunting leaks.
func (t *Tracker) LiveLabels() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]string, 0, len(t.live))
	for _, h := range t.live {
		out = append(out, h.kind.String()+":"+h.label)
	}
	return out
}

// resources pairs the geometry and material behind one drawable.
type resources struct {
	geom, mat Handle
}

func allocPair(t *Tracker, label string) resources {
	return resources{
		geom: t.Alloc(KindGeometry, label),
		mat:  t.Alloc(KindMaterial, label),
	}
}

func (r resources) release(t *Tracker) int {
	n := 0
	if t.Release(r.geom) {
		n++
	}
	if t.Release(r.mat) {
		n++
	}
	return n
}
