package scene

import "time"

// periodic is a frame-driven repeating effect owned by a scene. It only
// fires from Scene.Step.
type periodic struct {
	every     time.Duration
	acc       time.Duration
	fire      func()
	cancelled bool
}

func (p *periodic) advance(dt time.Duration) {
	if p.cancelled || p.every <= 0 {
		return
	}
	p.acc += dt
	for p.acc >= p.every && !p.cancelled {
		p.acc -= p.every
		p.fire()
	}
}

func (p *periodic) cancel() {
	p.cancelled = true
	p.fire = nil
}
